package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerRendersComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "scanner").Info("snapshot complete", Int("files", 12))

	line := buf.String()
	if !strings.Contains(line, "[scanner]") {
		t.Fatalf("expected component in output, got %q", line)
	}
	if !strings.Contains(line, "snapshot complete") {
		t.Fatalf("expected message in output, got %q", line)
	}
	if !strings.Contains(line, "files=12") {
		t.Fatalf("expected attr in output, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should have been suppressed: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("move", String("dest", "2021/09-September"), String("name", "IMG 1.JPG"))

	out := buf.String()
	if !strings.Contains(out, `name="IMG 1.JPG"`) {
		t.Fatalf("expected quoted value, got %q", out)
	}
	if !strings.Contains(out, "dest=2021/09-September") {
		t.Fatalf("expected bare value, got %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("unexpected level: %v", got)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
