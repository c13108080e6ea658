// Package config resolves Latch's ambient runtime configuration: how many
// parallel workers to allow by default and how to reach the `ai` module's
// backing endpoint. Precedence is CLI flag > environment variable > config
// file > built-in default (SPEC_FULL.md Ambient Stack).
//
// Grounded on the interpreter it evolved from's cmd/msg/main.go flag handling for CLI-level
// config, adding a YAML config file layer on top of it — using
// gopkg.in/yaml.v3 (already present transitively via the pack's testify
// dependency chain) rather than hand-rolling an ini/toml reader, since
// YAML is the format the pack's own tooling already speaks.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the values a run/repl session needs before evaluation starts.
type Config struct {
	MaxWorkers  int    `yaml:"max_workers"`
	AIEndpoint  string `yaml:"ai_endpoint"`
	AIAPIKey    string `yaml:"ai_api_key"`
	AIModel     string `yaml:"ai_model"`
}

// Default returns the built-in fallback configuration.
func Default() Config {
	return Config{MaxWorkers: 32, AIModel: "gpt-4o-mini"}
}

// Load builds a Config by layering, in increasing precedence: built-in
// defaults, an optional YAML file at path (ignored if absent or path is
// empty), then environment variables LATCH_MAX_WORKERS, LATCH_AI_ENDPOINT,
// LATCH_AI_API_KEY, LATCH_AI_MODEL.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if v := os.Getenv("LATCH_MAX_WORKERS"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			cfg.MaxWorkers = n
		}
	}
	if v := os.Getenv("LATCH_AI_ENDPOINT"); v != "" {
		cfg.AIEndpoint = v
	}
	if v := os.Getenv("LATCH_AI_API_KEY"); v != "" {
		cfg.AIAPIKey = v
	}
	if v := os.Getenv("LATCH_AI_MODEL"); v != "" {
		cfg.AIModel = v
	}

	return cfg, nil
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, os.ErrInvalid
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, os.ErrInvalid
	}
	return n, nil
}
