// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"mamrr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Server.URL = "http://127.0.0.1:0"
	cfg.Server.VerifySession = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithLogging forces the log format and level instead of the defaults.
func WithLogging(format, level string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logging.Format = format
		cfg.Logging.Level = level
	}
}
