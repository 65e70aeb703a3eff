// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/moltlabs/moltscope/internal/logging"
	"github.com/moltlabs/moltscope/internal/models"
	"github.com/moltlabs/moltscope/internal/validation"
)

// respondJSON writes the response envelope with caching headers and an ETag.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the payload with FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// respondSuccess writes a success envelope stamped with the graph version
// and query duration.
func respondSuccess(w http.ResponseWriter, data interface{}, graphTimestamp string, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:      time.Now(),
			QueryTimeMS:    time.Since(start).Milliseconds(),
			GraphTimestamp: graphTimestamp,
		},
	})
}

// respondNotFound writes a 404 envelope carrying the structured not-found
// result, so clients get the same data shape as a hit.
func respondNotFound(w http.ResponseWriter, data interface{}, message string) {
	respondJSON(w, http.StatusNotFound, &models.APIResponse{
		Status:   "error",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    &models.APIError{Code: ErrCodeNotFound, Message: message},
	})
}

// validateRequest runs struct validation, translating failures to the
// VALIDATION_ERROR envelope shape. Returns nil when valid.
func validateRequest(v interface{}) *models.APIError {
	err := validation.Struct(v)
	if err == nil {
		return nil
	}
	var rve *validation.RequestValidationError
	if errors.As(err, &rve) {
		return rve.ToAPIError()
	}
	return &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
}

// getIntParam reads an integer query parameter, falling back to def on
// absence or parse failure.
func getIntParam(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// getFloatParam reads a float query parameter with a default.
func getFloatParam(r *http.Request, key string, def float64) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return f
}
