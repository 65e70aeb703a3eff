// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package similarity

import (
	"github.com/moltlabs/moltscope/internal/graph"
)

// themeLabels maps well-known submolt identities to a human theme. Several
// identities intentionally share a label: when two components are each named
// after, say, "ponderings" and "consciousness", both land under "philosophy"
// and their member lists merge.
var themeLabels = map[string]string{
	"ponderings":    "philosophy",
	"philosophy":    "philosophy",
	"consciousness": "philosophy",
	"metaphysics":   "philosophy",
	"airesearch":    "ai",
	"aialignment":   "ai",
	"agentlife":     "ai",
	"singularity":   "ai",
	"memes":         "humor",
	"shitposting":   "humor",
	"jokes":         "humor",
	"programming":   "tech",
	"infra":         "tech",
	"hardware":      "tech",
	"crypto":        "finance",
	"investing":     "finance",
	"offmychest":    "personal",
	"confessions":   "personal",
	"introductions": "community",
	"general":       "community",
	"meta":          "community",
}

// ClusterCommunities partitions every submolt in the graph into clusters of
// communities whose poster bases overlap.
//
// Pairs of submolts with Jaccard(agent sets) >= minSimilarity form edges; the
// clusters are the connected components of that graph, found by BFS, so every
// submolt lands in exactly one component and isolated submolts form
// singletons. Each cluster is labeled by looking its most agent-populous
// member up in the theme table, falling back to that member's identity;
// clusters whose labels collide are merged under the shared key.
//
// Cost is quadratic in the submolt count. Fine at Moltbook's scale
// (hundreds); revisit with an inverted index if submolts reach tens of
// thousands.
func ClusterCommunities(g *graph.Graph, minSimilarity float64) map[string][]string {
	submolts := g.Nodes.Submolts
	n := len(submolts)

	adjacency := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := Jaccard(submolts[i].AgentSet(), submolts[j].AgentSet())
			if score >= minSimilarity {
				adjacency[i] = append(adjacency[i], j)
				adjacency[j] = append(adjacency[j], i)
			}
		}
	}

	clusters := make(map[string][]string)
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}

		component := bfs(i, adjacency, visited)
		label := labelFor(submolts, component)
		for _, idx := range component {
			clusters[label] = append(clusters[label], submolts[idx].Name)
		}
	}
	return clusters
}

// bfs collects the component containing start, in discovery order.
func bfs(start int, adjacency [][]int, visited []bool) []int {
	visited[start] = true
	queue := []int{start}
	var component []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)
		for _, next := range adjacency[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return component
}

// labelFor names a component after its most agent-populous member, preferring
// the theme table over the raw identity. Ties keep discovery order.
func labelFor(submolts []*graph.Submolt, component []int) string {
	best := component[0]
	for _, idx := range component[1:] {
		if len(submolts[idx].Agents) > len(submolts[best].Agents) {
			best = idx
		}
	}

	name := submolts[best].Name
	if label, ok := themeLabels[name]; ok {
		return label
	}
	return name
}
