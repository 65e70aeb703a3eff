// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/snapshot"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (c *countingRefresher) GetOrBuild(ctx context.Context) (*graph.Graph, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return graph.New("t1"), nil
}

func TestRefreshServiceRunsImmediatelyAndOnTicks(t *testing.T) {
	refresher := &countingRefresher{}
	svc := NewRefreshService(refresher, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want deadline exceeded", err)
	}

	// One immediate refresh plus several ticks.
	if got := refresher.calls.Load(); got < 2 {
		t.Errorf("refresh calls = %d, want at least 2", got)
	}
}

func TestRefreshServiceToleratesMissingSnapshot(t *testing.T) {
	refresher := &countingRefresher{err: snapshot.ErrNoSnapshot}
	svc := NewRefreshService(refresher, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	// Must keep ticking rather than returning the error.
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want deadline exceeded", err)
	}
	if got := refresher.calls.Load(); got < 2 {
		t.Errorf("refresh calls = %d, want service to keep retrying", got)
	}
}

func TestTreeServesAndStops(t *testing.T) {
	tree := NewTree(DefaultTreeConfig())
	refresher := &countingRefresher{}
	tree.Add(NewRefreshService(refresher, time.Hour, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tree.Serve(ctx)
	}()

	// Give the tree a moment to start the service.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervision tree did not stop after cancel")
	}
	if refresher.calls.Load() == 0 {
		t.Error("service never ran under supervision")
	}
}
