// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package main is the entry point for the Moltscope server.
//
// Moltscope ingests Moltbook snapshots produced by the external scraper,
// builds a typed relationship graph (agents, submolts, topics; posted-in and
// mention edges), and serves similarity, clustering, and recommendation
// queries over HTTP.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. BadgerDB graph cache
//  4. Snapshot store, graph builder, ranking engine
//  5. HTTP router (chi)
//  6. Supervision tree (suture): HTTP server + periodic graph refresher
//
// The server shuts down gracefully on SIGINT and SIGTERM: in-flight requests
// drain within the configured timeout, then the cache database is closed.
//
// Example:
//
//	export DATA_DIR=/data/snapshots
//	export CACHE_PATH=/data/graphcache
//	export HTTP_PORT=8080
//	./moltscope
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/moltlabs/moltscope/internal/api"
	"github.com/moltlabs/moltscope/internal/config"
	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/graphcache"
	"github.com/moltlabs/moltscope/internal/logging"
	"github.com/moltlabs/moltscope/internal/rank"
	"github.com/moltlabs/moltscope/internal/snapshot"
	"github.com/moltlabs/moltscope/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Str("cache_path", cfg.Cache.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Moltscope")

	db, err := badger.Open(badger.DefaultOptions(cfg.Cache.Path).WithLogger(nil))
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Cache.Path).Msg("Failed to open graph cache database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing graph cache database")
		}
	}()

	logger := logging.Logger()
	store := snapshot.NewStore(cfg.Data.Dir, logger)
	builder := graph.NewBuilder(logger)
	cache := graphcache.New(db, store, builder, logger)
	engine := rank.NewEngine(logger)

	handler := api.NewHandler(cache, engine, cfg.Cluster.MinSimilarity, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins: cfg.API.CORSOrigins,
		RateLimit:   cfg.API.RateLimit,
		RateWindow:  cfg.API.RateWindow,
	})

	tree := supervisor.NewTree(supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.Add(supervisor.NewHTTPService(router, supervisor.HTTPServiceConfig{
		Addr:            fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger))
	tree.Add(supervisor.NewRefreshService(cache, cfg.Cache.RefreshInterval, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervision tree exited")
	}

	logging.Info().Msg("Moltscope stopped")
}
