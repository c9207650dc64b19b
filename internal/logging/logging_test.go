package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tuispell.log")
	logger, err := NewFile(path, false)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Infow("session finished", "wpm", 42)
	Sync(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"session finished"`) {
		t.Fatalf("expected json entry, got %q", data)
	}
	if !strings.Contains(string(data), `"wpm":42`) {
		t.Fatalf("expected field, got %q", data)
	}
}

func TestNewFileDebugUsesConsoleEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := NewFile(path, true)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Debugw("tick dropped", "gen", 3)
	Sync(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG") || !strings.Contains(string(data), "tick dropped") {
		t.Fatalf("expected debug console entry, got %q", data)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Errorw("ignored")
	Sync(logger)
}
