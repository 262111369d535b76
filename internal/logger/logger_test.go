package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studyboard.log")
	log, err := New(Config{Level: "debug", File: path, JSON: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.WithComponent("store").Infow("state restored", "tasks", 3)
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"component":"store"`) || !strings.Contains(out, `"tasks":3`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNopAndWithErrorNil(t *testing.T) {
	l := Nop()
	if l.WithError(nil) != l {
		t.Fatal("expected WithError(nil) to return the same logger")
	}
	l.Infow("discarded")
}
