// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package rank answers the ranking and recommendation queries over a built
// graph. Every operation is read-only and pure; unknown identities yield a
// structured not-found result rather than an error.
package rank

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/similarity"
)

const (
	// relatedCap bounds related-agents results.
	relatedCap = 20
	// DefaultLimit applies when a caller passes limit <= 0.
	DefaultLimit = 20
	// sampleTitles bounds how many titles a trending topic surfaces.
	sampleTitles = 3
)

// Engine computes rankings over one graph at a time. It holds no state
// between calls; a single instance serves all requests.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a ranking engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "rank_engine").Logger(),
	}
}

// RelatedAgents returns every agent sharing at least one community with the
// query agent or connected to it by a Mentioned edge in either direction.
// Score = 2 x shared communities + 3 x each mention of the query agent by the
// peer + 3 x each mention of the peer by the query agent. Results are sorted
// by score descending, capped at 20; ties keep discovery order.
func (e *Engine) RelatedAgents(g *graph.Graph, name string) RelatedAgentsResult {
	id := graph.NormalizeKey(name)
	self, ok := g.Agent(id)
	if !ok {
		return RelatedAgentsResult{Agent: id}
	}

	mentionedBy := g.MentionsTo(id)
	mentioned := g.MentionsFrom(id)

	var related []RelatedAgent
	for _, other := range g.Nodes.Agents {
		if other.Name == id {
			continue
		}

		var shared []string
		for _, sub := range self.Submolts {
			if other.HasSubmolt(sub) {
				shared = append(shared, sub)
			}
		}
		by := mentionedBy[other.Name]
		to := mentioned[other.Name]
		if len(shared) == 0 && by == 0 && to == 0 {
			continue
		}

		related = append(related, RelatedAgent{
			Name:           other.Name,
			SharedSubmolts: shared,
			MentionedBy:    by,
			Mentioned:      to,
			Score:          float64(2*len(shared) + 3*by + 3*to),
		})
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Score > related[j].Score
	})
	if len(related) > relatedCap {
		related = related[:relatedCap]
	}

	return RelatedAgentsResult{Agent: id, Found: true, Related: related}
}

// MostConnected ranks all agents by
// 2 x postCount + 3 x submoltCount + 2 x incoming mentions + outgoing
// mentions, descending, truncated to limit.
func (e *Engine) MostConnected(g *graph.Graph, limit int) []ConnectedAgent {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]ConnectedAgent, 0, len(g.Nodes.Agents))
	for _, a := range g.Nodes.Agents {
		in := countMentions(g.MentionsTo(a.Name))
		out := countMentions(g.MentionsFrom(a.Name))
		ranked = append(ranked, ConnectedAgent{
			Name:         a.Name,
			PostCount:    a.PostCount,
			SubmoltCount: len(a.Submolts),
			InMentions:   in,
			OutMentions:  out,
			Score:        float64(2*a.PostCount + 3*len(a.Submolts) + 2*in + out),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TrendingTopics ranks topics by occurrence count descending, truncated to
// limit, each with up to three sample titles in insertion order.
func (e *Engine) TrendingTopics(g *graph.Graph, limit int) []TrendingTopic {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]TrendingTopic, 0, len(g.Nodes.Topics))
	for _, t := range g.Nodes.Topics {
		titles := make([]string, 0, sampleTitles)
		for _, p := range t.Posts {
			if len(titles) == sampleTitles {
				break
			}
			titles = append(titles, p.Title)
		}
		ranked = append(ranked, TrendingTopic{
			Keyword:      t.Keyword,
			Count:        t.Count,
			SampleTitles: titles,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FollowRecommendations suggests agents the query agent is not yet
// mention-connected to (either direction) but shares at least one community
// with. Score = 3 x shared communities + 2 x candidate postCount + candidate
// submoltCount, descending, truncated to limit.
func (e *Engine) FollowRecommendations(g *graph.Graph, name string, limit int) RecommendationsResult {
	id := graph.NormalizeKey(name)
	self, ok := g.Agent(id)
	if !ok {
		return RecommendationsResult{Agent: id}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	mentionedBy := g.MentionsTo(id)
	mentioned := g.MentionsFrom(id)

	var recs []Recommendation
	for _, other := range g.Nodes.Agents {
		if other.Name == id {
			continue
		}
		if mentionedBy[other.Name] > 0 || mentioned[other.Name] > 0 {
			continue
		}

		var shared []string
		for _, sub := range self.Submolts {
			if other.HasSubmolt(sub) {
				shared = append(shared, sub)
			}
		}
		if len(shared) == 0 {
			continue
		}

		recs = append(recs, Recommendation{
			Name:           other.Name,
			SharedSubmolts: shared,
			Score:          float64(3*len(shared) + 2*other.PostCount + len(other.Submolts)),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	return RecommendationsResult{Agent: id, Found: true, Recommendations: recs}
}

// SimilarAgents ranks agents by
// 0.7 x Jaccard(community sets) + 0.3 x (min(postCounts) / max(postCounts)),
// descending, truncated to limit. Candidates with zero community overlap are
// excluded regardless of post-count ratio.
func (e *Engine) SimilarAgents(g *graph.Graph, name string, limit int) SimilarAgentsResult {
	id := graph.NormalizeKey(name)
	self, ok := g.Agent(id)
	if !ok {
		return SimilarAgentsResult{Agent: id}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var similar []SimilarAgent
	for _, other := range g.Nodes.Agents {
		if other.Name == id {
			continue
		}

		jac := similarity.Jaccard(self.SubmoltSet(), other.SubmoltSet())
		if jac == 0 {
			continue
		}
		ratio := postRatio(self.PostCount, other.PostCount)

		similar = append(similar, SimilarAgent{
			Name:          other.Name,
			Jaccard:       jac,
			PostRatio:     ratio,
			CombinedScore: 0.7*jac + 0.3*ratio,
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].CombinedScore > similar[j].CombinedScore
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}

	return SimilarAgentsResult{Agent: id, Found: true, Similar: similar}
}

func countMentions(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// postRatio is min/max of the two post counts, 0 when both are zero.
func postRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) / float64(hi)
}
