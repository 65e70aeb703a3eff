// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moltscope/config.yaml",
	"/etc/moltscope/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration: struct defaults, then the config file if
// one exists, then environment variables, highest priority last. The result
// is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := normalizeSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings translates flat environment variable names to config paths.
// Variables not listed here are ignored rather than guessed at.
var envMappings = map[string]string{
	"http_host":              "server.host",
	"http_port":              "server.port",
	"read_timeout":           "server.read_timeout",
	"write_timeout":          "server.write_timeout",
	"shutdown_timeout":       "server.shutdown_timeout",
	"data_dir":               "data.dir",
	"cache_path":             "cache.path",
	"refresh_interval":       "cache.refresh_interval",
	"cluster_min_similarity": "cluster.min_similarity",
	"cors_origins":           "api.cors_origins",
	"rate_limit":             "api.rate_limit",
	"rate_window":            "api.rate_window",
	"log_level":              "logging.level",
	"log_format":             "logging.format",
	"log_caller":             "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path, or
// "" to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// sliceConfigPaths are the paths parsed from comma-separated env strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// normalizeSliceFields splits comma-separated strings for known slice paths.
// YAML-sourced values arrive as real slices and pass through untouched.
func normalizeSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		s, ok := val.(string)
		if !ok {
			continue
		}

		parts := strings.Split(s, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		if err := k.Set(path, items); err != nil {
			return fmt.Errorf("normalize %s: %w", path, err)
		}
	}
	return nil
}
