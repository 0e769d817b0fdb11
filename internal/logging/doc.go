// Package logging assembles structured slog loggers and formatting helpers used
// across fleursexport.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so the exporter and dataset adapters
// tag log lines with the run ID, component, and language consistently. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
