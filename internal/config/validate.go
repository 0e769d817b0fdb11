package config

import (
	"errors"
	"fmt"
	"strings"

	"fleursexport/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExport() error {
	if len(c.Export.Languages) == 0 {
		return errors.New("export.languages must list at least one language code")
	}
	seen := make(map[string]struct{}, len(c.Export.Languages))
	for _, code := range c.Export.Languages {
		if err := language.Validate(code); err != nil {
			return fmt.Errorf("export.languages: %w", err)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("export.languages: %q is listed more than once", code)
		}
		seen[code] = struct{}{}
	}
	if c.Export.Limit <= 0 {
		return errors.New("export.limit must be positive")
	}
	if strings.TrimSpace(c.Export.OutputRoot) == "" {
		return errors.New("export.output_root must be set")
	}
	switch c.Export.AudioFormat {
	case AudioFormatWAV, AudioFormatRaw:
	default:
		return fmt.Errorf("export.audio_format: unsupported value %q (want %q or %q)", c.Export.AudioFormat, AudioFormatWAV, AudioFormatRaw)
	}
	return nil
}

func (c *Config) validateSource() error {
	switch c.Source.Kind {
	case SourceHuggingFace:
		if !strings.HasPrefix(c.Source.BaseURL, "http://") && !strings.HasPrefix(c.Source.BaseURL, "https://") {
			return fmt.Errorf("source.base_url must be an http(s) URL, got %q", c.Source.BaseURL)
		}
	case SourceLocal:
		if strings.TrimSpace(c.Source.LocalDir) == "" {
			return errors.New("source.local_dir must be set when source.kind is \"local\"")
		}
	default:
		return fmt.Errorf("source.kind: unsupported value %q (want %q or %q)", c.Source.Kind, SourceHuggingFace, SourceLocal)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
