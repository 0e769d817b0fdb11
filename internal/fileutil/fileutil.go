// Package fileutil holds the small filesystem helpers the exporter relies on.
package fileutil

import (
	"fmt"
	"os"
)

// EnsureDirs makes sure every path exists as a directory, creating missing
// parents. Existing directories are left alone; a path occupied by a regular
// file is an error.
func EnsureDirs(paths ...string) error {
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("stat directory %q: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("create directory %q: path exists and is not a directory", dir)
		}
	}
	return nil
}

// WriteFile creates or truncates path with default permissions (0o644) and
// writes data. The handle is closed before returning.
func WriteFile(path string, data []byte) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
