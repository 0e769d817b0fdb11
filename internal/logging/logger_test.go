package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleursexport/internal/config"
	"fleursexport/internal/logging"
)

func newFileLogger(t *testing.T, format, level string, attrs ...logging.Attr) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "run.log")
	logger, err := logging.New(logging.Options{
		Format:      format,
		Level:       level,
		OutputPaths: []string{logPath},
		Attrs:       attrs,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	exporter := logging.NewComponentLogger(logger, "exporter").With(logging.String(logging.FieldLanguage, "hi_in"))
	exporter.Info("sample exported", logging.Int("index", 3), logging.String("target_text", "नमस्ते दुनिया"))
	exporter.Debug("hidden unless debug")
	exporter.Warn("raw audio", logging.Error(errors.New("headerless")))
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsSubjectAndFields(t *testing.T) {
	logPath := newFileLogger(t, "console", "info", logging.String(logging.FieldRunID, "run-1"))
	content := readLog(t, logPath)

	if !strings.Contains(content, "INFO  exporter · hi_in: sample exported") {
		t.Fatalf("expected subject prefix, got %q", content)
	}
	if !strings.Contains(content, "index=3") {
		t.Fatalf("expected index field, got %q", content)
	}
	if !strings.Contains(content, `target_text="नमस्ते दुनिया"`) {
		t.Fatalf("expected quoted target text, got %q", content)
	}
	if strings.Contains(content, "run_id") {
		t.Fatalf("expected run_id to be omitted from console output, got %q", content)
	}
	if strings.Contains(content, "hidden unless debug") {
		t.Fatalf("expected debug line to be filtered, got %q", content)
	}
	if strings.Contains(content, "\033[") {
		t.Fatalf("expected no ANSI colour in file output, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := newFileLogger(t, "console", "debug")
	content := readLog(t, logPath)
	if !strings.Contains(content, "hidden unless debug") {
		t.Fatalf("expected debug line, got %q", content)
	}
	if !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerEmitsRunID(t *testing.T) {
	logPath := newFileLogger(t, "json", "info", logging.String(logging.FieldRunID, "run-42"))
	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 json lines, got %d: %q", len(lines), lines)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if record["run_id"] != "run-42" {
		t.Fatalf("unexpected run_id: %v", record["run_id"])
	}
	if record["level"] != "info" || record["msg"] != "sample exported" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record[logging.FieldComponent] != "exporter" || record[logging.FieldLanguage] != "hi_in" {
		t.Fatalf("missing component/language: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg, "abc")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "fleursexport-abc.log"))
	if !strings.Contains(content, "hello") {
		t.Fatalf("expected message in run log, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logging.WarnWithContext(logger, "careful", "test_event", logging.String(logging.FieldImpact, "none"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "test_event" {
		t.Fatalf("missing event_type: %v", record)
	}
	if record[logging.FieldImpact] != "none" {
		t.Fatalf("impact overridden: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("missing error_hint: %v", record)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "x")
	logger.Info("nothing")
	if logger.Enabled(t.Context(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
}
