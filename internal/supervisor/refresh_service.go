// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/snapshot"
)

// GraphRefresher is the slice of the graph cache the refresh service needs.
type GraphRefresher interface {
	GetOrBuild(ctx context.Context) (*graph.Graph, error)
}

// RefreshService periodically pokes the graph cache so a moved latest
// pointer is picked up without waiting for an API request. An immediate
// refresh runs at startup to warm the cache.
type RefreshService struct {
	cache    GraphRefresher
	interval time.Duration
	logger   zerolog.Logger
}

// NewRefreshService creates the periodic refresher.
func NewRefreshService(cache GraphRefresher, interval time.Duration, logger zerolog.Logger) *RefreshService {
	return &RefreshService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("component", "graph_refresher").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *RefreshService) refresh(ctx context.Context) {
	g, err := s.cache.GetOrBuild(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		// The scraper has not produced data yet; try again next tick.
		s.logger.Debug().Msg("No snapshot available yet")
	case err != nil:
		s.logger.Error().Err(err).Msg("Graph refresh failed")
	default:
		s.logger.Debug().Str("snapshot", g.Timestamp).Msg("Graph refresh complete")
	}
}

// String names the service in suture logs.
func (s *RefreshService) String() string {
	return "graph-refresher"
}
