// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package graphcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/graph"
	"github.com/moltlabs/moltscope/internal/models"
	"github.com/moltlabs/moltscope/internal/snapshot"
)

// fakeSource serves a fixed pointer and snapshot from memory.
type fakeSource struct {
	ptr  *models.LatestPointer
	snap *models.Snapshot
	err  error
}

func (f *fakeSource) Latest(ctx context.Context) (*models.LatestPointer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ptr, nil
}

func (f *fakeSource) Load(ctx context.Context, file string) (*models.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

// spyBuilder counts Build invocations.
type spyBuilder struct {
	builds  atomic.Int64
	builder *graph.Builder
}

func (s *spyBuilder) Build(snap *models.Snapshot) *graph.Graph {
	s.builds.Add(1)
	return s.builder.Build(snap)
}

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return db
}

func testSnapshot(timestamp string) *models.Snapshot {
	return &models.Snapshot{
		Timestamp: timestamp,
		Posts: []models.Post{
			{
				ID:      "1",
				Title:   "Hello @bob world",
				Author:  &models.AuthorRef{Name: "alice"},
				Submolt: &models.SubmoltRef{Name: "general"},
				Created: "2024-01-01",
			},
		},
	}
}

func newTestCache(t *testing.T, source *fakeSource) (*Cache, *spyBuilder) {
	t.Helper()
	spy := &spyBuilder{builder: graph.NewBuilder(zerolog.Nop())}
	return New(openTestDB(t), source, spy, zerolog.Nop()), spy
}

func TestGetOrBuildCacheFreshness(t *testing.T) {
	source := &fakeSource{
		ptr:  &models.LatestPointer{Timestamp: "t1", File: "snap.json"},
		snap: testSnapshot("t1"),
	}
	cache, spy := newTestCache(t, source)

	g1, err := cache.GetOrBuild(context.Background())
	if err != nil {
		t.Fatalf("first GetOrBuild: %v", err)
	}
	g2, err := cache.GetOrBuild(context.Background())
	if err != nil {
		t.Fatalf("second GetOrBuild: %v", err)
	}

	if got := spy.builds.Load(); got != 1 {
		t.Errorf("builder invoked %d times, want 1", got)
	}
	if g1.Stats != g2.Stats {
		t.Errorf("stats differ between cached reads: %+v vs %+v", g1.Stats, g2.Stats)
	}
}

func TestGetOrBuildRebuildsOnNewTimestamp(t *testing.T) {
	source := &fakeSource{
		ptr:  &models.LatestPointer{Timestamp: "t1", File: "snap.json"},
		snap: testSnapshot("t1"),
	}
	cache, spy := newTestCache(t, source)

	if _, err := cache.GetOrBuild(context.Background()); err != nil {
		t.Fatalf("first GetOrBuild: %v", err)
	}

	source.ptr = &models.LatestPointer{Timestamp: "t2", File: "snap.json"}
	source.snap = testSnapshot("t2")

	g, err := cache.GetOrBuild(context.Background())
	if err != nil {
		t.Fatalf("second GetOrBuild: %v", err)
	}
	if g.Timestamp != "t2" {
		t.Errorf("Timestamp = %q, want t2", g.Timestamp)
	}
	if got := spy.builds.Load(); got != 2 {
		t.Errorf("builder invoked %d times, want 2", got)
	}
}

func TestGetOrBuildSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{
		ptr:  &models.LatestPointer{Timestamp: "t1", File: "snap.json"},
		snap: testSnapshot("t1"),
	}

	open := func() *badger.DB {
		db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
		if err != nil {
			t.Fatalf("open badger: %v", err)
		}
		return db
	}

	db := open()
	spy1 := &spyBuilder{builder: graph.NewBuilder(zerolog.Nop())}
	if _, err := New(db, source, spy1, zerolog.Nop()).GetOrBuild(context.Background()); err != nil {
		t.Fatalf("GetOrBuild before restart: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close badger: %v", err)
	}

	db = open()
	defer db.Close()
	spy2 := &spyBuilder{builder: graph.NewBuilder(zerolog.Nop())}
	g, err := New(db, source, spy2, zerolog.Nop()).GetOrBuild(context.Background())
	if err != nil {
		t.Fatalf("GetOrBuild after restart: %v", err)
	}

	if got := spy2.builds.Load(); got != 0 {
		t.Errorf("builder invoked %d times after restart, want 0", got)
	}
	alice, ok := g.Agent("alice")
	if !ok || alice.PostCount != 1 || !alice.HasSubmolt("general") {
		t.Errorf("reloaded graph lookup failed: %+v (ok=%v)", alice, ok)
	}
}

func TestGetOrBuildPropagatesMissingSnapshot(t *testing.T) {
	cache, spy := newTestCache(t, &fakeSource{err: snapshot.ErrNoSnapshot})

	_, err := cache.GetOrBuild(context.Background())
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Errorf("GetOrBuild error = %v, want ErrNoSnapshot", err)
	}
	if got := spy.builds.Load(); got != 0 {
		t.Errorf("builder invoked %d times, want 0", got)
	}
}

func TestCurrentBeforeFirstBuild(t *testing.T) {
	cache, _ := newTestCache(t, &fakeSource{err: snapshot.ErrNoSnapshot})

	if g := cache.Current(); g != nil {
		t.Errorf("Current() = %+v before any build, want nil", g)
	}
}
