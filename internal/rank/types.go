// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package rank

// RelatedAgent is one entry in a related-agents result.
type RelatedAgent struct {
	Name string `json:"name"`
	// SharedSubmolts lists the communities both agents post in, in the
	// query agent's first-seen order.
	SharedSubmolts []string `json:"shared_submolts,omitempty"`
	// MentionedBy counts mentions of the query agent by this agent;
	// Mentioned counts the reverse direction.
	MentionedBy int     `json:"mentioned_by"`
	Mentioned   int     `json:"mentioned"`
	Score       float64 `json:"score"`
}

// RelatedAgentsResult is the full answer to a related-agents query. Found is
// false when the queried agent is not in the graph; Related is empty then.
type RelatedAgentsResult struct {
	Agent   string         `json:"agent"`
	Found   bool           `json:"found"`
	Related []RelatedAgent `json:"related"`
}

// ConnectedAgent is one entry in a most-connected ranking.
type ConnectedAgent struct {
	Name         string  `json:"name"`
	PostCount    int     `json:"post_count"`
	SubmoltCount int     `json:"submolt_count"`
	InMentions   int     `json:"in_mentions"`
	OutMentions  int     `json:"out_mentions"`
	Score        float64 `json:"score"`
}

// TrendingTopic is one entry in a trending-topics ranking. SampleTitles holds
// up to three titles in the order the topic accumulated them.
type TrendingTopic struct {
	Keyword      string   `json:"keyword"`
	Count        int      `json:"count"`
	SampleTitles []string `json:"sample_titles"`
}

// Recommendation is one follow suggestion.
type Recommendation struct {
	Name           string   `json:"name"`
	SharedSubmolts []string `json:"shared_submolts"`
	Score          float64  `json:"score"`
}

// RecommendationsResult is the full answer to a follow-recommendations query.
type RecommendationsResult struct {
	Agent           string           `json:"agent"`
	Found           bool             `json:"found"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SimilarAgent is one entry in a similar-agents result.
type SimilarAgent struct {
	Name          string  `json:"name"`
	Jaccard       float64 `json:"jaccard"`
	PostRatio     float64 `json:"post_ratio"`
	CombinedScore float64 `json:"combined_score"`
}

// SimilarAgentsResult is the full answer to a similar-agents query.
type SimilarAgentsResult struct {
	Agent   string         `json:"agent"`
	Found   bool           `json:"found"`
	Similar []SimilarAgent `json:"similar"`
}
