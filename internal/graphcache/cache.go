// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package graphcache persists the built relationship graph in BadgerDB,
// keyed by snapshot timestamp, so restarts and repeated queries do not pay
// for a rebuild while the underlying snapshot is unchanged.
package graphcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/metrics"
	"github.com/moltlabs/moltscope/internal/models"
)

const (
	keyGraph     = "graph:current"
	keyTimestamp = "graph:timestamp"
)

// SnapshotSource supplies the latest pointer and snapshot data.
// *snapshot.Store satisfies it.
type SnapshotSource interface {
	Latest(ctx context.Context) (*models.LatestPointer, error)
	Load(ctx context.Context, file string) (*models.Snapshot, error)
}

// GraphBuilder builds a graph from a snapshot. *graph.Builder satisfies it.
type GraphBuilder interface {
	Build(snap *models.Snapshot) *graph.Graph
}

// Cache serves the current graph, rebuilding only when the latest-pointer
// timestamp moves past the persisted one.
//
// Concurrent misses may build redundantly; builds are pure so the last write
// simply wins. At most one graph document is persisted at any time.
type Cache struct {
	db      *badger.DB
	source  SnapshotSource
	builder GraphBuilder
	logger  zerolog.Logger

	mu     sync.RWMutex
	cached *graph.Graph
}

// New creates a graph cache over an open Badger instance.
func New(db *badger.DB, source SnapshotSource, builder GraphBuilder, logger zerolog.Logger) *Cache {
	return &Cache{
		db:      db,
		source:  source,
		builder: builder,
		logger:  logger.With().Str("component", "graph_cache").Logger(),
	}
}

// GetOrBuild returns the graph for the latest snapshot. When the persisted
// graph already matches the latest-pointer timestamp it is returned without
// invoking the builder; otherwise the snapshot is loaded, built, persisted,
// and returned. A missing snapshot or pointer surfaces as
// snapshot.ErrNoSnapshot from the source.
func (c *Cache) GetOrBuild(ctx context.Context) (*graph.Graph, error) {
	ptr, err := c.source.Latest(ctx)
	if err != nil {
		return nil, err
	}

	if g := c.fromMemory(ptr.Timestamp); g != nil {
		metrics.CacheHits.Inc()
		return g, nil
	}
	if g := c.fromDisk(ptr.Timestamp); g != nil {
		metrics.CacheHits.Inc()
		c.remember(g)
		return g, nil
	}
	metrics.CacheMisses.Inc()

	snap, err := c.source.Load(ctx, ptr.File)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g := c.builder.Build(snap)
	metrics.RecordGraphBuild(time.Since(start), g.Stats.Agents, g.Stats.Submolts, g.Stats.Topics)
	if err := c.persist(g); err != nil {
		// The graph is still usable; only warm-start is lost.
		c.logger.Error().Err(err).Str("snapshot", g.Timestamp).Msg("Failed to persist graph")
	}
	c.remember(g)
	return g, nil
}

// Current returns the in-memory graph without any freshness check, or nil
// when nothing has been served yet. Health endpoints use it.
func (c *Cache) Current() *graph.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached
}

func (c *Cache) fromMemory(timestamp string) *graph.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached != nil && c.cached.Timestamp == timestamp {
		return c.cached
	}
	return nil
}

func (c *Cache) remember(g *graph.Graph) {
	c.mu.Lock()
	c.cached = g
	c.mu.Unlock()
}

// fromDisk loads the persisted graph if its timestamp matches. Any read or
// decode failure is treated as a miss.
func (c *Cache) fromDisk(timestamp string) *graph.Graph {
	var doc []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTimestamp))
		if err != nil {
			return err
		}
		var stored string
		if err := item.Value(func(val []byte) error {
			stored = string(val)
			return nil
		}); err != nil {
			return err
		}
		if stored != timestamp {
			return badger.ErrKeyNotFound
		}

		item, err = txn.Get([]byte(keyGraph))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil
	}

	var g graph.Graph
	if err := json.Unmarshal(doc, &g); err != nil {
		c.logger.Warn().Err(err).Msg("Persisted graph document is corrupt, rebuilding")
		return nil
	}
	g.Reindex()

	c.logger.Debug().Str("snapshot", g.Timestamp).Msg("Graph served from persistent cache")
	return &g
}

// persist stores the graph document and its timestamp in one transaction,
// replacing whatever was there before.
func (c *Cache) persist(g *graph.Graph) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyGraph), doc); err != nil {
			return err
		}
		return txn.Set([]byte(keyTimestamp), []byte(g.Timestamp))
	})
	if err != nil {
		return fmt.Errorf("store graph: %w", err)
	}

	c.logger.Info().
		Str("snapshot", g.Timestamp).
		Int("bytes", len(doc)).
		Msg("Graph persisted")
	return nil
}
