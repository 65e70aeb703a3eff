// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package snapshot reads scraper output from the data directory: a
// latest.json pointer naming the current snapshot file, plus the snapshot
// files themselves. The scraper writes both atomically; this package only
// reads.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moltlabs/moltscope/internal/models"
)

// LatestFile is the pointer file name inside the data directory.
const LatestFile = "latest.json"

// ErrNoSnapshot indicates that no snapshot is available: the pointer file is
// missing, or the snapshot file it names is missing. Graph construction
// cannot proceed without one.
var ErrNoSnapshot = errors.New("no snapshot available")

// Store reads snapshots from a single data directory.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a snapshot store over the given data directory. The
// directory does not have to exist yet; reads fail with ErrNoSnapshot until
// the scraper populates it.
func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger.With().Str("component", "snapshot_store").Logger(),
	}
}

// Latest reads the latest-pointer record.
func (s *Store) Latest(ctx context.Context) (*models.LatestPointer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, LatestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read latest pointer: %w", err)
	}

	var ptr models.LatestPointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, fmt.Errorf("decode latest pointer: %w", err)
	}
	if ptr.File == "" {
		return nil, fmt.Errorf("latest pointer names no file: %w", ErrNoSnapshot)
	}
	return &ptr, nil
}

// Load reads and decodes the named snapshot file. The name is resolved
// relative to the data directory and must not escape it.
func (s *Store) Load(ctx context.Context, file string) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(file)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("snapshot file %q escapes data directory", file)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn().Str("file", clean).Msg("Pointer names a missing snapshot file")
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot %s: %w", clean, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", clean, err)
	}

	s.logger.Debug().
		Str("file", clean).
		Str("snapshot", snap.Timestamp).
		Int("posts", len(snap.Posts)).
		Msg("Snapshot loaded")

	return &snap, nil
}
