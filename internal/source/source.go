// Package source builds the dataset adapter selected by configuration.
package source

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fleursexport/internal/config"
	"fleursexport/internal/dataset"
	"fleursexport/internal/dataset/hfrows"
	"fleursexport/internal/dataset/localdir"
)

// NewHFClient returns a datasets-server client for cfg.Source. cache may be nil.
func NewHFClient(cfg *config.Config, cache hfrows.Cache, logger *slog.Logger) (*hfrows.Client, error) {
	timeout := time.Duration(cfg.Source.TimeoutSeconds) * time.Second
	return hfrows.New(hfrows.Config{
		BaseURL:    cfg.Source.BaseURL,
		Dataset:    cfg.Source.Dataset,
		Token:      cfg.Source.Token,
		UserAgent:  cfg.UserAgent(),
		PageSize:   cfg.Source.PageSize,
		HTTPClient: &http.Client{Timeout: timeout},
		Cache:      cache,
		Logger:     logger,
	})
}

// New returns the Builder for cfg.Source.Kind.
func New(cfg *config.Config, cache hfrows.Cache, logger *slog.Logger) (dataset.Builder, error) {
	switch cfg.Source.Kind {
	case config.SourceHuggingFace:
		return NewHFClient(cfg, cache, logger)
	case config.SourceLocal:
		return localdir.New(cfg.Source.LocalDir, logger)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}
}
