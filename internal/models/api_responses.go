// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint. Status is "success" or "error"; Error is populated only for the
// latter.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"agent": "alice", "found": true, "related": [...]},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// GraphTimestamp identifies the snapshot version the response was computed
// from, so dashboard clients can tell whether two panels were rendered from
// the same graph build.
type Metadata struct {
	Timestamp      time.Time `json:"timestamp"`
	QueryTimeMS    int64     `json:"query_time_ms,omitempty"`
	GraphTimestamp string    `json:"graph_timestamp,omitempty"`
	Cached         bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code plus a human-readable message.
//
// Common codes:
//   - VALIDATION_ERROR: invalid query parameters
//   - NOT_FOUND: named agent or submolt absent from the current graph
//   - SNAPSHOT_MISSING: no snapshot available, graph cannot be built
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
