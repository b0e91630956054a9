package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("Draw completed", "group_id", "g1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "Draw completed") || !strings.Contains(out, "group_id=g1") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for non-terminal writer: %q", out)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log-*.txt")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if isTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
