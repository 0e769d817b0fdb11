package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"fleursexport/internal/config"
	"fleursexport/internal/source"
)

// CheckDirectoryAccess verifies that path, or the nearest ancestor that
// exists, is a readable and writable directory. Missing leaf directories are
// fine because the exporter creates them.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	existing, err := nearestExisting(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	info, err := os.Stat(existing)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", existing, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", existing)}
	}
	if err := unix.Access(existing, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", existing, err)}
	}
	if existing != filepath.Clean(path) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created under %s)", path, existing)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSource verifies that the configured dataset source is reachable.
// It uses a 15-second timeout and a single attempt.
func CheckSource(ctx context.Context, cfg *config.Config) Result {
	switch cfg.Source.Kind {
	case config.SourceLocal:
		name := "Local mirror"
		if cfg.Source.LocalDir == "" {
			return Result{Name: name, Detail: "local_dir not configured"}
		}
		info, err := os.Stat(cfg.Source.LocalDir)
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Source.LocalDir, err)}
		}
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", cfg.Source.LocalDir)}
		}
		return Result{Name: name, Passed: true, Detail: cfg.Source.LocalDir}
	case config.SourceHuggingFace:
		name := "Hugging Face dataset"
		client, err := source.NewHFClient(cfg, nil, nil)
		if err != nil {
			return Result{Name: name, Detail: err.Error()}
		}
		checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := client.CheckDataset(checkCtx); err != nil {
			return Result{Name: name, Detail: summarizeSourceError(err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", client.Dataset())}
	default:
		return Result{Name: "Dataset source", Detail: fmt.Sprintf("unsupported kind %q", cfg.Source.Kind)}
	}
}

func nearestExisting(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		_, err := os.Stat(current)
		if err == nil {
			return current, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", err
		}
		current = parent
	}
}

func parentDir(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}

// summarizeSourceError produces a human-readable summary for source check failures.
func summarizeSourceError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (datasets-server unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (datasets-server unreachable)"
	}
	return err.Error()
}
