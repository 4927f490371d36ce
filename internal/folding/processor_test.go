package folding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SirmoGames/pyqode.core/internal/linestore"
	"github.com/SirmoGames/pyqode.core/internal/logging"
)

// processed builds a store from lines and runs a full fold pass with the
// indent detector.
func processed(t *testing.T, tabWidth int, lines ...string) *linestore.Store {
	t.Helper()
	store := linestore.FromLines(lines, linestore.WithTabWidth(tabWidth))
	proc := NewProcessor(IndentDetector{TabWidth: tabWidth})
	proc.ProcessAll(store)
	return store
}

func levels(s *linestore.Store) []int {
	out := make([]int, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = s.Line(i).FoldLevel()
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProcessAllBasicDocument(t *testing.T) {
	s := processed(t, 4,
		"def f():",
		"    x = 1",
		"    y = 2",
		"z = 3",
	)

	want := []int{0, 1, 1, 0}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}

	if !s.Line(0).IsTrigger() {
		t.Error("line 0 should be a trigger")
	}
	if s.Line(0).Collapsed() {
		t.Error("line 0 should start expanded")
	}
	for i := 1; i < 4; i++ {
		if s.Line(i).IsTrigger() {
			t.Errorf("line %d should not be a trigger", i)
		}
	}
}

func TestBlankLineInheritsLevel(t *testing.T) {
	s := processed(t, 4,
		"def f():",
		"    x = 1",
		"",
		"    y = 2",
		"z = 3",
	)

	want := []int{0, 1, 1, 1, 0}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
}

func TestBlankRunInheritsLevel(t *testing.T) {
	s := processed(t, 4,
		"def f():",
		"    x = 1",
		"",
		"   ",
		"",
		"z = 3",
	)

	want := []int{0, 1, 1, 1, 1, 0}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
}

func TestTriggerRelocatesAcrossBlankRun(t *testing.T) {
	// A blank gap between the trigger candidate and the indented body: the
	// blank is raised to the body's level and the trigger lands on the last
	// non-blank line before the run.
	s := processed(t, 4,
		"def f():",
		"",
		"    x = 1",
		"    y = 2",
		"z = 3",
	)

	want := []int{0, 1, 1, 1, 0}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}

	if !s.Line(0).IsTrigger() {
		t.Error("trigger should sit on line 0, before the blank run")
	}
	for i := 1; i < 5; i++ {
		if s.Line(i).IsTrigger() {
			t.Errorf("line %d should not be a trigger", i)
		}
	}
}

func TestContiguityAfterPass(t *testing.T) {
	// Pathological indentation: levels may never increase by more than one
	// between consecutive non-blank lines after a pass.
	s := processed(t, 4,
		"a",
		"                b",
		"c",
		"        d",
		"",
		"            e",
	)

	prev := -1
	for line := s.First(); line.Valid(); line = line.Next() {
		if line.Blank() {
			continue
		}
		if prev >= 0 && line.FoldLevel()-prev > 1 {
			t.Errorf("line %d: level jumped from %d to %d", line.Number(), prev, line.FoldLevel())
		}
		prev = line.FoldLevel()
	}
}

func TestInconsistentLevelClampedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  logging.LevelDebug,
		Output: &buf,
		Prefix: "fold",
	})

	store := linestore.FromLines([]string{"a", "        b"})
	proc := NewProcessor(IndentDetector{TabWidth: 4}, WithLogger(logger))
	proc.ProcessAll(store)

	if got := store.Line(1).FoldLevel(); got != 1 {
		t.Errorf("expected clamped level 1, got %d", got)
	}

	if !strings.Contains(buf.String(), "inconsistent fold level") {
		t.Errorf("expected a debug log entry, got %q", buf.String())
	}
}

func TestDecreasingJumpPassesThrough(t *testing.T) {
	// Only increases are clamped; a drop of more than one level is kept
	// as detected.
	s := processed(t, 4,
		"a:",
		"    b:",
		"        c",
		"d",
	)

	want := []int{0, 1, 2, 0}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
}

func TestFoldLimit(t *testing.T) {
	store := linestore.FromLines([]string{
		"a:",
		"    b:",
		"        c",
	})
	proc := NewProcessor(IndentDetector{TabWidth: 4}, WithLimit(1))
	proc.ProcessAll(store)

	want := []int{0, 1, 1}
	if got := levels(store); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
}

type negativeDetector struct{}

func (negativeDetector) DetectFoldLevel(prev, cur linestore.Handle) int {
	return -3
}

func TestNegativeDetectorLevelClampedToZero(t *testing.T) {
	store := linestore.FromLines([]string{"a", "b"})
	proc := NewProcessor(negativeDetector{})
	proc.ProcessAll(store)

	want := []int{0, 0}
	if got := levels(store); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
}

func TestTriggerCorrectnessAfterPass(t *testing.T) {
	s := processed(t, 4,
		"def a():",
		"    if x:",
		"        y = 1",
		"    z = 2",
		"w = 3",
	)

	// A line is a trigger iff the next non-blank line's level is strictly
	// greater than its own.
	for line := s.First(); line.Valid(); line = line.Next() {
		next := line.Next()
		for next.Valid() && next.Blank() {
			next = next.Next()
		}
		want := next.Valid() && next.FoldLevel() > line.FoldLevel()
		if got := line.IsTrigger(); got != want {
			t.Errorf("line %d: expected trigger=%v, got %v", line.Number(), want, got)
		}
	}
}

func TestEnterMidTriggerTransfersState(t *testing.T) {
	// Enter pressed at the start of a collapsed trigger line: the blank
	// left above keeps the flags until the pass moves them onto the line
	// that now holds the content.
	store := linestore.FromLines([]string{
		"",
		"def f():",
		"    x = 1",
	})
	store.Line(0).SetTrigger(true)
	store.Line(0).SetCollapsed(true)

	proc := NewProcessor(IndentDetector{TabWidth: 4})
	proc.ProcessAll(store)

	if store.Line(0).IsTrigger() || store.Line(0).Collapsed() {
		t.Error("blank line should have been cleared of trigger state")
	}
	if !store.Line(1).IsTrigger() {
		t.Error("trigger should have moved to the content line")
	}
	if !store.Line(1).Collapsed() {
		t.Error("collapsed state should have moved with the trigger")
	}
}

func TestReprocessAfterEdit(t *testing.T) {
	s := processed(t, 4,
		"def f():",
		"    x = 1",
		"y = 2",
	)

	// Indent the last line; reprocess it against its previous non-blank.
	if err := s.SetText(2, "    y = 2"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	proc := NewProcessor(IndentDetector{TabWidth: 4})
	proc.ProcessLine(s.Line(1), s.Line(2))

	want := []int{0, 1, 1}
	if got := levels(s); !equalInts(got, want) {
		t.Errorf("expected levels %v, got %v", want, got)
	}
	if s.Line(1).IsTrigger() {
		t.Error("line 1 should not become a trigger, levels are equal")
	}
}

func TestProcessLineInvalidCurrent(t *testing.T) {
	s := linestore.FromLines([]string{"a"})
	proc := NewProcessor(IndentDetector{TabWidth: 4})

	// Must not panic.
	proc.ProcessLine(s.First(), s.First().Next())
}
