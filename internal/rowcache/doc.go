// Package rowcache stores downloaded dataset pages and audio payloads in a
// local SQLite database so repeated exports skip the network.
//
// # Storage
//
// Entries are blobs keyed by opaque strings chosen by the dataset adapter.
// The database lives at a configurable path (default:
// ~/.cache/fleursexport/rows.db) and uses WAL journaling.
//
// # Usage
//
// The cache is disabled by default. Enable it in config.toml:
//
//	[cache]
//	enabled = true
//	path = "~/.cache/fleursexport/rows.db"
//
// CLI commands for inspection and management:
//
//	fleursexport cache stats            # Entry count and size
//	fleursexport cache prune --older 7d # Drop old entries
//	fleursexport cache clear            # Remove all entries
package rowcache
