package rowcache_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"fleursexport/internal/rowcache"
	"fleursexport/internal/testsupport"
)

func TestPutGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "rows:a"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, "rows:a", []byte("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "rows:a", []byte("second")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	data, ok, err := store.Get(ctx, "rows:a")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(data) != "second" {
		t.Fatalf("unexpected data %q", data)
	}
	if err := store.Put(ctx, "", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestStatsPruneClear(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	store.SetClock(func() time.Time { return now })

	if err := store.Put(ctx, "old", make([]byte, 10)); err != nil {
		t.Fatal(err)
	}
	now = base.Add(48 * time.Hour)
	if err := store.Put(ctx, "new", make([]byte, 5)); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Entries != 2 || stats.Bytes != 15 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.Oldest.Equal(base) || !stats.Newest.Equal(now) {
		t.Fatalf("unexpected range: %v .. %v", stats.Oldest, stats.Newest)
	}

	removed, err := store.Prune(ctx, 24*time.Hour)
	if err != nil || removed != 1 {
		t.Fatalf("Prune removed %d, err %v", removed, err)
	}
	if _, ok, _ := store.Get(ctx, "old"); ok {
		t.Fatal("old entry should be pruned")
	}
	if _, err := store.Prune(ctx, -time.Second); err == nil {
		t.Fatal("expected error for negative age")
	}

	removed, err = store.Clear(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("Clear removed %d, err %v", removed, err)
	}
	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 || !stats.Oldest.IsZero() {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestReopenPersists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := rowcache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := testsupport.MustOpenCache(t, cfg)
	data, ok, err := reopened.Get(context.Background(), "k")
	if err != nil || !ok || string(data) != "v" {
		t.Fatalf("expected persisted entry, got %q ok=%v err=%v", data, ok, err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)
	_ = store.Close()

	db, err := sql.Open("sqlite", cfg.Cache.Path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	_, err = rowcache.Open(cfg.Cache.Path)
	if !errors.Is(err, rowcache.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := rowcache.Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
