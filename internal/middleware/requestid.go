// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package middleware holds the HTTP middleware shared by all Moltscope
// endpoints: request identification and Prometheus instrumentation. CORS and
// rate limiting come straight from go-chi and are stacked in the router.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/moltlabs/moltscope/internal/logging"
)

// RequestID tags every request with an X-Request-ID, honoring one supplied
// by an upstream proxy, and stores it in the request context so handler log
// lines can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", id)
		ctx := logging.ContextWithRequestID(r.Context(), id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
