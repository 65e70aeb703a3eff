// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLatestMissingPointer(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())

	_, err := store.Latest(context.Background())
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLatestReadsPointer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LatestFile,
		`{"timestamp": "2026-02-11T06:00:00Z", "file": "snapshot-2026-02-11.json", "stats": {"posts": 42}}`)
	store := NewStore(dir, zerolog.Nop())

	ptr, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if ptr.Timestamp != "2026-02-11T06:00:00Z" {
		t.Errorf("Timestamp = %q", ptr.Timestamp)
	}
	if ptr.File != "snapshot-2026-02-11.json" {
		t.Errorf("File = %q", ptr.File)
	}
}

func TestLatestPointerWithoutFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LatestFile, `{"timestamp": "t1"}`)
	store := NewStore(dir, zerolog.Nop())

	_, err := store.Latest(context.Background())
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "snap.json", `{
		"timestamp": "t1",
		"posts": [{"id": 1, "title": "hi", "author": "alice", "submolt": "general", "created": "2024-01-01"}]
	}`)
	store := NewStore(dir, zerolog.Nop())

	snap, err := store.Load(context.Background(), "snap.json")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if snap.Timestamp != "t1" || len(snap.Posts) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())

	_, err := store.Load(context.Background(), "gone.json")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLoadRejectsEscapingPath(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())

	for _, file := range []string{"../etc/passwd", "/etc/passwd", "a/../../b.json"} {
		if _, err := store.Load(context.Background(), file); err == nil {
			t.Errorf("Load(%q) succeeded, want error", file)
		}
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"timestamp": `)
	store := NewStore(dir, zerolog.Nop())

	if _, err := store.Load(context.Background(), "bad.json"); err == nil {
		t.Error("Load() succeeded on malformed JSON, want error")
	}
}

func TestContextCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LatestFile, `{"timestamp": "t1", "file": "snap.json"}`)
	store := NewStore(dir, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Latest(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Latest() error = %v, want context.Canceled", err)
	}
}
