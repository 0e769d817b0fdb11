package testsupport

import (
	"testing"

	"fleursexport/internal/config"
	"fleursexport/internal/rowcache"
)

// MustOpenCache opens the row cache at the config's cache path and registers
// cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *rowcache.Store {
	t.Helper()

	store, err := rowcache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("open row cache: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
