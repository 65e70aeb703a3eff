// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package metrics holds the Prometheus instrumentation for Moltscope: API
// endpoint latency and throughput, graph build cost, and cache efficiency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moltscope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moltscope_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moltscope_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Graph build metrics.
	GraphBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moltscope_graph_builds_total",
			Help: "Total number of graph builds from a snapshot",
		},
	)

	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moltscope_graph_build_duration_seconds",
			Help:    "Graph build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moltscope_graph_nodes",
			Help: "Node counts of the most recently built graph",
		},
		[]string{"kind"}, // agent, submolt, topic
	)

	// Cache efficiency metrics.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moltscope_graph_cache_hits_total",
			Help: "Graph requests served without a rebuild",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moltscope_graph_cache_misses_total",
			Help: "Graph requests that triggered a rebuild",
		},
	)
)

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGraphBuild records one completed build and the resulting node counts.
func RecordGraphBuild(duration time.Duration, agents, submolts, topics int) {
	GraphBuildsTotal.Inc()
	GraphBuildDuration.Observe(duration.Seconds())
	GraphNodes.WithLabelValues("agent").Set(float64(agents))
	GraphNodes.WithLabelValues("submolt").Set(float64(submolts))
	GraphNodes.WithLabelValues("topic").Set(float64(topics))
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
