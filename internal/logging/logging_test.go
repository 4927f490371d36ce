package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("level %d: expected %q, got %q", tc.level, tc.want, got)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", got)
	}
	if got := ParseLevel("WARNING"); got != LevelWarn {
		t.Errorf("expected LevelWarn, got %v", got)
	}
	if got := ParseLevel("garbage"); got != LevelInfo {
		t.Errorf("unknown strings should map to LevelInfo, got %v", got)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("not shown")
	logger.Info("not shown")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("messages below the level leaked: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, Prefix: "fold"})

	logger.Debug("line %d level %d", 3, 1)

	out := buf.String()
	if !strings.Contains(out, "line 3 level 1") {
		t.Errorf("expected formatted message, got %q", out)
	}
	if !strings.Contains(out, "fold:") {
		t.Errorf("expected prefix, got %q", out)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf}).WithComponent("processor")

	logger.Info("hello")

	if !strings.Contains(buf.String(), "component=processor") {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	// Nop has no output writer; logging must not panic or write.
	Nop.Debug("dropped")
	Nop.Error("dropped")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelError, Output: &buf})

	logger.Info("dropped")
	logger.SetLevel(LevelInfo)
	logger.Info("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("level change not applied: %q", out)
	}
}
