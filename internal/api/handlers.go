// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package api exposes the graph query operations as a JSON HTTP API. Every
// endpoint resolves the current graph through the cache, runs one read-only
// query, and wraps the result in the standard response envelope.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/models"
	"github.com/moltlabs/moltscope/internal/rank"
	"github.com/moltlabs/moltscope/internal/similarity"
	"github.com/moltlabs/moltscope/internal/snapshot"
)

// GraphProvider serves the current graph. *graphcache.Cache satisfies it.
type GraphProvider interface {
	GetOrBuild(ctx context.Context) (*graph.Graph, error)
	Current() *graph.Graph
}

// Handler holds the dependencies of all API endpoints.
type Handler struct {
	graphs GraphProvider
	rank   *rank.Engine

	// defaultMinSimilarity is the clustering threshold used when the
	// request does not specify one.
	defaultMinSimilarity float64

	logger zerolog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(graphs GraphProvider, engine *rank.Engine, defaultMinSimilarity float64, logger zerolog.Logger) *Handler {
	return &Handler{
		graphs:               graphs,
		rank:                 engine,
		defaultMinSimilarity: defaultMinSimilarity,
		logger:               logger.With().Str("component", "api").Logger(),
	}
}

// getGraph resolves the current graph, translating failures to an error
// response. The bool reports whether the caller may proceed.
func (h *Handler) getGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, bool) {
	g, err := h.graphs.GetOrBuild(r.Context())
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			respondError(w, http.StatusServiceUnavailable, &models.APIError{
				Code:    ErrCodeSnapshotMissing,
				Message: "no snapshot available yet; the graph cannot be built",
			})
			return nil, false
		}
		h.logger.Error().Err(err).Msg("Failed to resolve graph")
		respondError(w, http.StatusInternalServerError, &models.APIError{
			Code:    ErrCodeInternal,
			Message: "failed to resolve graph",
		})
		return nil, false
	}
	return g, true
}

// agentRequest validates the {name} path parameter plus the shared limit
// query parameter.
type agentRequest struct {
	Agent string `validate:"required,max=100"`
	Limit int    `validate:"min=0,max=100"`
}

func (h *Handler) agentParams(w http.ResponseWriter, r *http.Request) (agentRequest, bool) {
	req := agentRequest{
		Agent: chi.URLParam(r, "name"),
		Limit: getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr)
		return req, false
	}
	return req, true
}

// HandleGraphStats returns node and edge counts for the current graph.
//
// GET /api/v1/graph/stats
func (h *Handler) HandleGraphStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}
	respondSuccess(w, g.Stats, g.Timestamp, start)
}

// HandleGraph returns the full graph document.
//
// GET /api/v1/graph
func (h *Handler) HandleGraph(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}
	respondSuccess(w, g, g.Timestamp, start)
}

// HandleRelatedAgents returns agents related to {name} by shared communities
// or mentions.
//
// GET /api/v1/agents/{name}/related
func (h *Handler) HandleRelatedAgents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.agentParams(w, r)
	if !ok {
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}

	res := h.rank.RelatedAgents(g, req.Agent)
	if !res.Found {
		respondNotFound(w, res, "agent not found in current graph")
		return
	}
	respondSuccess(w, res, g.Timestamp, start)
}

// HandleRecommendations returns follow recommendations for {name}.
//
// GET /api/v1/agents/{name}/recommendations
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.agentParams(w, r)
	if !ok {
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}

	res := h.rank.FollowRecommendations(g, req.Agent, req.Limit)
	if !res.Found {
		respondNotFound(w, res, "agent not found in current graph")
		return
	}
	respondSuccess(w, res, g.Timestamp, start)
}

// HandleSimilarAgents returns agents similar to {name} by community overlap
// and posting volume.
//
// GET /api/v1/agents/{name}/similar
func (h *Handler) HandleSimilarAgents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.agentParams(w, r)
	if !ok {
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}

	res := h.rank.SimilarAgents(g, req.Agent, req.Limit)
	if !res.Found {
		respondNotFound(w, res, "agent not found in current graph")
		return
	}
	respondSuccess(w, res, g.Timestamp, start)
}

// limitRequest validates the shared limit query parameter for list
// endpoints without a path identity.
type limitRequest struct {
	Limit int `validate:"min=0,max=100"`
}

// HandleMostConnected returns the most connected agents.
//
// GET /api/v1/agents/connected
func (h *Handler) HandleMostConnected(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := limitRequest{Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr)
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}
	respondSuccess(w, h.rank.MostConnected(g, req.Limit), g.Timestamp, start)
}

// HandleTrendingTopics returns topics ranked by occurrence count.
//
// GET /api/v1/topics/trending
func (h *Handler) HandleTrendingTopics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := limitRequest{Limit: getIntParam(r, "limit", 0)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr)
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}
	respondSuccess(w, h.rank.TrendingTopics(g, req.Limit), g.Timestamp, start)
}

// clustersRequest validates the clustering threshold override.
type clustersRequest struct {
	MinSimilarity float64 `validate:"gte=0,lte=1"`
}

// HandleSubmoltClusters returns submolts grouped by poster-base overlap.
//
// GET /api/v1/submolts/clusters
func (h *Handler) HandleSubmoltClusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := clustersRequest{
		MinSimilarity: getFloatParam(r, "min_similarity", h.defaultMinSimilarity),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr)
		return
	}
	g, ok := h.getGraph(w, r)
	if !ok {
		return
	}

	clusters := similarity.ClusterCommunities(g, req.MinSimilarity)
	respondSuccess(w, map[string]interface{}{
		"min_similarity": req.MinSimilarity,
		"clusters":       clusters,
	}, g.Timestamp, start)
}

// HandleHealth reports liveness plus whether a graph has been served.
//
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}
	if g := h.graphs.Current(); g != nil {
		status["graph_timestamp"] = g.Timestamp
		status["graph_loaded"] = true
	} else {
		status["graph_loaded"] = false
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
