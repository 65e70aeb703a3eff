// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package api

// API error codes returned in the response envelope.
const (
	// ErrCodeValidation marks invalid path or query parameters.
	ErrCodeValidation = "VALIDATION_ERROR"

	// ErrCodeNotFound marks a query for an identity absent from the graph.
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodeSnapshotMissing marks requests that cannot be served because
	// no snapshot exists to build a graph from.
	ErrCodeSnapshotMissing = "SNAPSHOT_MISSING"

	// ErrCodeInternal marks unexpected failures.
	ErrCodeInternal = "INTERNAL_ERROR"
)
