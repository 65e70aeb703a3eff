// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/moltlabs/moltscope/internal/metrics"
	"github.com/moltlabs/moltscope/internal/middleware"
)

// RouterConfig carries the surface-level settings of the HTTP API.
type RouterConfig struct {
	// CORSOrigins lists allowed origins; ["*"] allows any.
	CORSOrigins []string

	// RateLimit is the per-IP request budget per RateWindow; 0 disables
	// rate limiting.
	RateLimit  int
	RateWindow time.Duration
}

// NewRouter assembles the chi router: global middleware, the versioned API
// routes, health, and /metrics.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimit, cfg.RateWindow))
		}
		r.Use(middleware.Prometheus)

		r.Get("/graph", h.HandleGraph)
		r.Get("/graph/stats", h.HandleGraphStats)

		r.Get("/agents/connected", h.HandleMostConnected)
		r.Get("/agents/{name}/related", h.HandleRelatedAgents)
		r.Get("/agents/{name}/recommendations", h.HandleRecommendations)
		r.Get("/agents/{name}/similar", h.HandleSimilarAgents)

		r.Get("/topics/trending", h.HandleTrendingTopics)
		r.Get("/submolts/clusters", h.HandleSubmoltClusters)
	})

	r.Get("/health", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
