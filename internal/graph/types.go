// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package graph

import (
	"strings"
)

// Agent is a posting identity on Moltbook. The identity key is the lowercase
// display name; Submolts preserves first-seen order so a serialized graph
// round-trips deterministically.
type Agent struct {
	Name      string   `json:"name"`
	PostCount int      `json:"post_count"`
	Submolts  []string `json:"submolts"`

	submoltSet map[string]struct{}
}

// HasSubmolt reports whether the agent has posted in the named submolt.
func (a *Agent) HasSubmolt(name string) bool {
	_, ok := a.submoltSet[name]
	return ok
}

// SubmoltSet returns the agent's submolt identities as a set.
func (a *Agent) SubmoltSet() map[string]struct{} {
	return a.submoltSet
}

func (a *Agent) addSubmolt(name string) {
	if _, ok := a.submoltSet[name]; ok {
		return
	}
	a.submoltSet[name] = struct{}{}
	a.Submolts = append(a.Submolts, name)
}

// Submolt is a Moltbook sub-community. Agents preserves the order in which
// distinct posters were first observed.
type Submolt struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Subscribers int      `json:"subscribers"`
	Agents      []string `json:"agents"`

	agentSet map[string]struct{}
}

// HasAgent reports whether the named agent has posted in this submolt.
func (s *Submolt) HasAgent(name string) bool {
	_, ok := s.agentSet[name]
	return ok
}

// AgentSet returns the submolt's poster identities as a set.
func (s *Submolt) AgentSet() map[string]struct{} {
	return s.agentSet
}

func (s *Submolt) addAgent(name string) {
	if _, ok := s.agentSet[name]; ok {
		return
	}
	s.agentSet[name] = struct{}{}
	s.Agents = append(s.Agents, name)
}

// Topic is a normalized keyword extracted from post titles. Posts is the
// insertion-ordered, unbounded sample list; callers slice as needed.
type Topic struct {
	Keyword string      `json:"keyword"`
	Count   int         `json:"count"`
	Posts   []TopicPost `json:"posts"`
}

// TopicPost is one sample post attached to a topic.
type TopicPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Submolt string `json:"submolt,omitempty"`
}

// PostedInEdge records one post by an agent in a submolt. Edges are never
// deduplicated: a post yields exactly one edge when both identities resolve.
type PostedInEdge struct {
	Agent   string `json:"agent"`
	Submolt string `json:"submolt"`
	PostID  string `json:"post_id"`
	Created string `json:"created"`
}

// MentionedEdge records one @handle occurrence in a post title. The target
// need not have ever posted; it exists as a zero-post agent node.
type MentionedEdge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	PostID  string `json:"post_id"`
	Submolt string `json:"submolt,omitempty"`
}

// Nodes groups the three node kinds of a graph document.
type Nodes struct {
	Agents   []*Agent   `json:"agents"`
	Submolts []*Submolt `json:"submolts"`
	Topics   []*Topic   `json:"topics"`
}

// Edges groups the two edge kinds of a graph document.
type Edges struct {
	PostedIn  []PostedInEdge  `json:"posted_in"`
	Mentioned []MentionedEdge `json:"mentioned"`
}

// Stats carries node and edge counts for the stats block of the serialized
// document and for cheap dashboard summaries.
type Stats struct {
	Agents    int `json:"agents"`
	Submolts  int `json:"submolts"`
	Topics    int `json:"topics"`
	PostedIn  int `json:"posted_in"`
	Mentioned int `json:"mentioned"`
}

// Graph is one complete relationship graph built from a single snapshot.
// It is immutable after Build returns; every query operation is read-only.
//
// The exported fields form the serializable graph document. The unexported
// indexes are derived and must be rebuilt (Reindex) after deserialization.
type Graph struct {
	Timestamp string `json:"timestamp"`
	Nodes     Nodes  `json:"nodes"`
	Edges     Edges  `json:"edges"`
	Stats     Stats  `json:"stats"`

	agentIndex   map[string]*Agent
	submoltIndex map[string]*Submolt
	topicIndex   map[string]*Topic

	// mentionsOut[from][to] and mentionsIn[to][from] count Mentioned edges.
	mentionsOut map[string]map[string]int
	mentionsIn  map[string]map[string]int
}

// New returns an empty graph for the given snapshot timestamp.
func New(timestamp string) *Graph {
	return &Graph{
		Timestamp:    timestamp,
		agentIndex:   make(map[string]*Agent),
		submoltIndex: make(map[string]*Submolt),
		topicIndex:   make(map[string]*Topic),
		mentionsOut:  make(map[string]map[string]int),
		mentionsIn:   make(map[string]map[string]int),
	}
}

// NormalizeKey lowercases and trims an identity for case-insensitive lookup.
// All node identities are normalized exactly once, at ingestion; queries
// normalize through the same function.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Agent returns the agent node for a (case-insensitive) name.
func (g *Graph) Agent(name string) (*Agent, bool) {
	a, ok := g.agentIndex[NormalizeKey(name)]
	return a, ok
}

// Submolt returns the submolt node for a (case-insensitive) name.
func (g *Graph) Submolt(name string) (*Submolt, bool) {
	s, ok := g.submoltIndex[NormalizeKey(name)]
	return s, ok
}

// Topic returns the topic node for a keyword.
func (g *Graph) Topic(keyword string) (*Topic, bool) {
	t, ok := g.topicIndex[NormalizeKey(keyword)]
	return t, ok
}

// MentionsFrom returns per-target counts of Mentioned edges originating at
// the named agent. The returned map must not be modified.
func (g *Graph) MentionsFrom(name string) map[string]int {
	return g.mentionsOut[NormalizeKey(name)]
}

// MentionsTo returns per-source counts of Mentioned edges pointing at the
// named agent. The returned map must not be modified.
func (g *Graph) MentionsTo(name string) map[string]int {
	return g.mentionsIn[NormalizeKey(name)]
}

// ensureAgent returns the agent node for an already-normalized identity,
// creating it with zero posts on first sight.
func (g *Graph) ensureAgent(name string) *Agent {
	if a, ok := g.agentIndex[name]; ok {
		return a
	}
	a := &Agent{
		Name:       name,
		Submolts:   []string{},
		submoltSet: make(map[string]struct{}),
	}
	g.agentIndex[name] = a
	g.Nodes.Agents = append(g.Nodes.Agents, a)
	return a
}

// ensureSubmolt returns the submolt node for an already-normalized identity.
// Creation is first-writer-wins: the builder processes the top-level listing
// before any post, so listing metadata takes precedence over post-inferred
// metadata.
func (g *Graph) ensureSubmolt(name, displayName string, subscribers int) *Submolt {
	if s, ok := g.submoltIndex[name]; ok {
		return s
	}
	if displayName == "" {
		displayName = name
	}
	s := &Submolt{
		Name:        name,
		DisplayName: displayName,
		Subscribers: subscribers,
		Agents:      []string{},
		agentSet:    make(map[string]struct{}),
	}
	g.submoltIndex[name] = s
	g.Nodes.Submolts = append(g.Nodes.Submolts, s)
	return s
}

// ensureTopic returns the topic node for a normalized keyword.
func (g *Graph) ensureTopic(keyword string) *Topic {
	if t, ok := g.topicIndex[keyword]; ok {
		return t
	}
	t := &Topic{
		Keyword: keyword,
		Posts:   []TopicPost{},
	}
	g.topicIndex[keyword] = t
	g.Nodes.Topics = append(g.Nodes.Topics, t)
	return t
}

// addPostedIn appends a PostedIn edge. Identities must already exist.
func (g *Graph) addPostedIn(agent, submolt, postID, created string) {
	g.Edges.PostedIn = append(g.Edges.PostedIn, PostedInEdge{
		Agent:   agent,
		Submolt: submolt,
		PostID:  postID,
		Created: created,
	})
}

// addMention appends a Mentioned edge and updates both adjacency indexes.
func (g *Graph) addMention(from, to, postID, submolt string) {
	g.Edges.Mentioned = append(g.Edges.Mentioned, MentionedEdge{
		From:    from,
		To:      to,
		PostID:  postID,
		Submolt: submolt,
	})
	if g.mentionsOut[from] == nil {
		g.mentionsOut[from] = make(map[string]int)
	}
	g.mentionsOut[from][to]++
	if g.mentionsIn[to] == nil {
		g.mentionsIn[to] = make(map[string]int)
	}
	g.mentionsIn[to][from]++
}

// finalize recomputes the stats block. Called once at the end of a build.
func (g *Graph) finalize() {
	g.Stats = Stats{
		Agents:    len(g.Nodes.Agents),
		Submolts:  len(g.Nodes.Submolts),
		Topics:    len(g.Nodes.Topics),
		PostedIn:  len(g.Edges.PostedIn),
		Mentioned: len(g.Edges.Mentioned),
	}
}

// Reindex rebuilds every derived index from the exported document fields.
// It must be called after deserializing a graph (the cache load path); a
// graph produced by Build is already indexed.
func (g *Graph) Reindex() {
	g.agentIndex = make(map[string]*Agent, len(g.Nodes.Agents))
	for _, a := range g.Nodes.Agents {
		a.submoltSet = make(map[string]struct{}, len(a.Submolts))
		for _, s := range a.Submolts {
			a.submoltSet[s] = struct{}{}
		}
		g.agentIndex[a.Name] = a
	}

	g.submoltIndex = make(map[string]*Submolt, len(g.Nodes.Submolts))
	for _, s := range g.Nodes.Submolts {
		s.agentSet = make(map[string]struct{}, len(s.Agents))
		for _, a := range s.Agents {
			s.agentSet[a] = struct{}{}
		}
		g.submoltIndex[s.Name] = s
	}

	g.topicIndex = make(map[string]*Topic, len(g.Nodes.Topics))
	for _, t := range g.Nodes.Topics {
		g.topicIndex[t.Keyword] = t
	}

	g.mentionsOut = make(map[string]map[string]int)
	g.mentionsIn = make(map[string]map[string]int)
	for _, e := range g.Edges.Mentioned {
		if g.mentionsOut[e.From] == nil {
			g.mentionsOut[e.From] = make(map[string]int)
		}
		g.mentionsOut[e.From][e.To]++
		if g.mentionsIn[e.To] == nil {
			g.mentionsIn[e.To] = make(map[string]int)
		}
		g.mentionsIn[e.To][e.From]++
	}
}
