package testsupport

import (
	"path/filepath"
	"testing"

	"fleursexport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It exports a single language with a small limit and applies any provided
// options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Export.Languages = []string{"hi_in"}
	cfgVal.Export.Limit = 2
	cfgVal.Export.OutputRoot = filepath.Join(base, "out")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Cache.Path = filepath.Join(base, "cache", "rows.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLanguages overrides the exported languages.
func WithLanguages(langs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Languages = langs
	}
}

// WithLimit overrides the per-language limit.
func WithLimit(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Limit = limit
	}
}

// WithLocalSource points the config at a local FLEURS mirror.
func WithLocalSource(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.Kind = config.SourceLocal
		b.cfg.Source.LocalDir = dir
	}
}

// WithHFSource points the config at a datasets-server compatible base URL.
func WithHFSource(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.Kind = config.SourceHuggingFace
		b.cfg.Source.BaseURL = baseURL
	}
}

// WithCache enables the fetch cache.
func WithCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
