package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tidy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The target and log directories exist when it returns.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TargetDir = filepath.Join(base, "target")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{builder.cfg.Paths.TargetDir, builder.cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			builder.t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithHistoryBackend selects the history store backend on the test config.
func WithHistoryBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Backend = backend
	}
}

// WithRule appends a custom categorization rule to the test config.
func WithRule(pattern, category string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rules = append(b.cfg.Rules, config.Rule{Pattern: pattern, Category: category})
	}
}

// WithExtension maps an extension to a category on the test config.
func WithExtension(ext, category string) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Extensions == nil {
			b.cfg.Extensions = map[string]string{}
		}
		b.cfg.Extensions[ext] = category
	}
}
