package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected console, got %s", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected stderr, got %s", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "verbose"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}

	cfg = Config{Format: "xml"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}

	cfg = Config{Level: "debug", Format: "json"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log := New(&Config{Level: "debug", Format: "json", Output: path}, "test")

	log.Debug("hello", Fields("key", "value", "count", 3))
	log.Info("world")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["message"] != "hello" {
		t.Errorf("expected message hello, got %v", entry["message"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected field key=value, got %v", entry["key"])
	}
	if entry[FieldComponent] != "test" {
		t.Errorf("expected component=test, got %v", entry[FieldComponent])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log := New(&Config{Level: "warn", Format: "json", Output: path}, "test")

	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "kept") {
		t.Errorf("unexpected line: %s", lines[0])
	}
}

func TestLogger_With(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log := New(&Config{Level: "info", Format: "json", Output: path}, "")

	log.WithComponent("sub").WithFields(map[string]any{"a": 1}).Info("tagged")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry[FieldComponent] != "sub" {
		t.Errorf("expected component=sub, got %v", entry[FieldComponent])
	}
	if entry["a"] != float64(1) {
		t.Errorf("expected a=1, got %v", entry["a"])
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	// Must not panic or emit anything.
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected map: %v", m)
	}
	// Odd trailing value is dropped.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %v", m)
	}
}
