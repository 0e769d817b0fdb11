package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDirsCreatesNestedPaths(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "hi_in", "source_audio")
	b := filepath.Join(root, "hi_in", "target_text")

	if err := EnsureDirs(filepath.Join(root, "hi_in"), a, b); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{a, b} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatal(err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestEnsureDirsIsIdempotent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")
	if err := EnsureDirs(dir); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirs(dir, dir); err != nil {
		t.Fatalf("second EnsureDirs failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "b" {
		t.Fatalf("unexpected entries: %v", entries)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("existing content disturbed: %v", err)
	}
}

func TestEnsureDirsRejectsFileCollision(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "occupied")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := EnsureDirs(path)
	if err == nil {
		t.Fatal("expected error for file collision")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the path: %v", err)
	}

	if err := EnsureDirs(filepath.Join(path, "child")); err == nil {
		t.Fatal("expected error when a parent is a file")
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target_0.txt")
	if err := WriteFile(path, []byte("a much longer first transcript")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("short")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "file.txt"), []byte("x"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
