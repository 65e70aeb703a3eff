// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package config loads Moltscope configuration with koanf: struct defaults
// first, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/moltlabs/moltscope/internal/validation"
)

// Config is the full Moltscope configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Data    DataConfig    `koanf:"data"`
	Cache   CacheConfig   `koanf:"cache"`
	Cluster ClusterConfig `koanf:"cluster"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
}

// DataConfig locates scraper output.
type DataConfig struct {
	// Dir is the directory holding latest.json and snapshot files.
	Dir string `koanf:"dir" validate:"required"`
}

// CacheConfig holds graph cache settings.
type CacheConfig struct {
	// Path is the BadgerDB directory for the persisted graph.
	Path string `koanf:"path" validate:"required"`

	// RefreshInterval is how often the background service re-checks the
	// latest pointer and rebuilds if it moved.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"min=10s"`
}

// ClusterConfig holds clustering settings.
type ClusterConfig struct {
	// MinSimilarity is the default Jaccard threshold for submolt
	// clustering. Requests may override it per call.
	MinSimilarity float64 `koanf:"min_similarity" validate:"gte=0,lte=1"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	// CORSOrigins lists allowed CORS origins; ["*"] allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-IP request budget per RateWindow. 0 disables.
	RateLimit  int           `koanf:"rate_limit" validate:"min=0"`
	RateWindow time.Duration `koanf:"rate_window" validate:"min=1s"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the baseline applied before file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			Dir: "/data/snapshots",
		},
		Cache: CacheConfig{
			Path:            "/data/graphcache",
			RefreshInterval: 5 * time.Minute,
		},
		Cluster: ClusterConfig{
			MinSimilarity: 0.3,
		},
		API: APIConfig{
			CORSOrigins: []string{"*"},
			RateLimit:   100,
			RateWindow:  time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
