// Package main hosts the fleursexport CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, applies per-run flag
// overrides, and drives the exporter against the configured dataset source.
// Supporting commands scaffold and validate configuration, list language
// codes, run preflight checks, and maintain the fetch cache.
package main
