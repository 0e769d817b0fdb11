// Package config loads, normalizes, and validates fleursexport configuration.
//
// It supplies the default export constants (language list, per-language
// limit, output root), expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as HF_TOKEN. The Config
// type centralizes every knob the CLI and exporter need so the dataset source,
// fetch cache, and output tree are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
