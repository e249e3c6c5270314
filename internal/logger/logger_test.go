package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory not created: %v", err)
	}

	Warn("disk almost full", "free", 10)
	if _, err := os.Stat(filepath.Join(dir, "logs", "weekly.log")); err != nil {
		t.Errorf("log file not written: %v", err)
	}
}

func TestInitWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)
	t.Cleanup(func() { Logger = nil })

	Debug("hidden")
	Info("hidden too")
	Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn output missing: %q", out)
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	Logger = nil
	// must not panic
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}
