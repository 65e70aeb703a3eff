// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package graph

import (
	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/models"
)

// Builder turns one snapshot into one relationship graph. Builds are pure:
// identical snapshot input yields identical node and edge counts, so callers
// may rebuild at any time without coordination.
type Builder struct {
	logger zerolog.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{
		logger: logger.With().Str("component", "graph_builder").Logger(),
	}
}

// Build constructs the full graph for a snapshot.
//
// Processing order is fixed so output is deterministic: the top-level submolt
// listing first (listing metadata wins over anything a post carries), then
// posts in input order. A post with an unresolvable author is skipped
// entirely, including its topics.
func (b *Builder) Build(snap *models.Snapshot) *Graph {
	g := New(snap.Timestamp)

	for _, ref := range snap.Submolts {
		id, ok := ResolveIdentity(ref.Name)
		if !ok {
			continue
		}
		g.ensureSubmolt(id, ref.DisplayName, ref.Subscribers)
	}

	skipped := 0
	for i := range snap.Posts {
		if !b.addPost(g, &snap.Posts[i]) {
			skipped++
		}
	}

	g.finalize()

	b.logger.Info().
		Str("snapshot", snap.Timestamp).
		Int("posts", len(snap.Posts)).
		Int("skipped", skipped).
		Int("agents", g.Stats.Agents).
		Int("submolts", g.Stats.Submolts).
		Int("topics", g.Stats.Topics).
		Int("posted_in", g.Stats.PostedIn).
		Int("mentioned", g.Stats.Mentioned).
		Msg("Graph built")

	return g
}

// addPost folds one post into the graph. Returns false when the post was
// skipped for lacking a resolvable author.
func (b *Builder) addPost(g *Graph, p *models.Post) bool {
	author, ok := resolveAuthor(p)
	if !ok {
		b.logger.Debug().Str("post_id", p.ID.String()).Msg("Skipping post without resolvable author")
		return false
	}

	submoltID := ""
	if ref, ok := resolveSubmolt(p); ok {
		submoltID = ref.Name
		g.ensureSubmolt(ref.Name, ref.DisplayName, ref.Subscribers)
	}

	agent := g.ensureAgent(author)
	agent.PostCount++
	if submoltID != "" {
		agent.addSubmolt(submoltID)
		sub, _ := g.Submolt(submoltID)
		sub.addAgent(author)
		g.addPostedIn(author, submoltID, p.ID.String(), p.Created)
	}

	for _, target := range ExtractMentions(p.Title) {
		g.ensureAgent(target)
		g.addMention(author, target, p.ID.String(), submoltID)
	}

	for _, keyword := range ExtractTopics(p.Title) {
		topic := g.ensureTopic(keyword)
		topic.Count++
		topic.Posts = append(topic.Posts, TopicPost{
			ID:      p.ID.String(),
			Title:   p.Title,
			Author:  author,
			Submolt: submoltID,
		})
	}

	return true
}
