package testsupport

import (
	"path/filepath"
	"testing"

	"mediasort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfg.Hashing.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the hash worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Hashing.Workers = workers
	}
}

// WithCatalogDisabled turns off catalog persistence on the test config.
func WithCatalogDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.Enabled = false
	}
}
