package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeExport(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeExport() error {
	var err error
	c.Export.Languages = normalizeLanguages(c.Export.Languages)
	if strings.TrimSpace(c.Export.OutputRoot) == "" {
		c.Export.OutputRoot = defaultOutputRoot
	}
	if c.Export.OutputRoot, err = expandPath(c.Export.OutputRoot); err != nil {
		return fmt.Errorf("export.output_root: %w", err)
	}
	c.Export.Split = strings.ToLower(strings.TrimSpace(c.Export.Split))
	if c.Export.Split == "" {
		c.Export.Split = defaultSplit
	}
	c.Export.AudioFormat = strings.ToLower(strings.TrimSpace(c.Export.AudioFormat))
	if c.Export.AudioFormat == "" {
		c.Export.AudioFormat = defaultAudioFormat
	}
	return nil
}

// normalizeLanguages lowercases and trims codes, accepts BCP 47 style
// separators, and drops blanks while keeping order. Duplicates are kept so
// validation can report them.
func normalizeLanguages(values []string) []string {
	langs := make([]string, 0, len(values))
	for _, lang := range values {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		normalized = strings.ReplaceAll(normalized, "-", "_")
		if normalized == "" {
			continue
		}
		langs = append(langs, normalized)
	}
	return langs
}

// NormalizeLanguages exposes the language list normalization used for
// export.languages so CLI overrides follow the same rules.
func NormalizeLanguages(values []string) []string {
	return normalizeLanguages(values)
}

func (c *Config) normalizeSource() error {
	var err error
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	if c.Source.Kind == "" {
		c.Source.Kind = defaultSourceKind
	}
	c.Source.BaseURL = strings.TrimRight(strings.TrimSpace(c.Source.BaseURL), "/")
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = defaultSourceBaseURL
	}
	c.Source.Dataset = strings.TrimSpace(c.Source.Dataset)
	if c.Source.Dataset == "" {
		c.Source.Dataset = defaultSourceDataset
	}
	c.Source.Token = strings.TrimSpace(c.Source.Token)
	if c.Source.Token == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Source.Token = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Source.Token = strings.TrimSpace(value)
		}
	}
	if c.Source.PageSize <= 0 {
		c.Source.PageSize = defaultSourcePageSize
	}
	if c.Source.PageSize > maxSourcePageSize {
		c.Source.PageSize = maxSourcePageSize
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = defaultSourceTimeout
	}
	if c.Source.LocalDir, err = expandPath(strings.TrimSpace(c.Source.LocalDir)); err != nil {
		return fmt.Errorf("source.local_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath()
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
