package bridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	state, err := NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	return state
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"3", "5", -1},
		{"5", "3", 1},
		{"5", "5", 0},
		{"9", "10", -1},   // Shorter means smaller
		{"100", "99", 1},  // Longer means larger
		{"123", "124", -1},
	}
	for _, tt := range tests {
		if got := CompareIDs(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	state := newTestState(t)

	if got := state.ReadCursor(CursorRead); got != "" {
		t.Errorf("ReadCursor() on fresh state = %q, want empty", got)
	}

	if err := state.WriteCursor(CursorRead, "12345"); err != nil {
		t.Fatalf("WriteCursor() error = %v", err)
	}
	if got := state.ReadCursor(CursorRead); got != "12345" {
		t.Errorf("ReadCursor() = %q, want 12345", got)
	}

	// The two cursors are independent.
	if got := state.ReadCursor(CursorInteraction); got != "" {
		t.Errorf("interaction cursor = %q, want empty", got)
	}
}

func TestCursorNeverMovesBackward(t *testing.T) {
	state := newTestState(t)

	if err := state.WriteCursor(CursorRead, "200"); err != nil {
		t.Fatalf("WriteCursor() error = %v", err)
	}
	if err := state.WriteCursor(CursorRead, "150"); err != nil {
		t.Fatalf("WriteCursor() error = %v", err)
	}
	if got := state.ReadCursor(CursorRead); got != "200" {
		t.Errorf("cursor = %q after smaller write, want 200", got)
	}

	if err := state.WriteCursor(CursorRead, "1000"); err != nil {
		t.Fatalf("WriteCursor() error = %v", err)
	}
	if got := state.ReadCursor(CursorRead); got != "1000" {
		t.Errorf("cursor = %q, want 1000", got)
	}
}

func TestWriteCursorEmptyIsNoop(t *testing.T) {
	state := newTestState(t)
	if err := state.WriteCursor(CursorRead, ""); err != nil {
		t.Fatalf("WriteCursor(\"\") error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(state.Dir(), LastReadFile)); !os.IsNotExist(err) {
		t.Error("empty cursor write should not create a file")
	}
}

func TestLastSendRoundTrip(t *testing.T) {
	state := newTestState(t)

	if _, ok := state.LastSend(); ok {
		t.Error("LastSend() on fresh state should report absent")
	}

	sent := time.Date(2025, 8, 1, 12, 0, 0, 500000000, time.UTC)
	if err := state.WriteLastSend(sent); err != nil {
		t.Fatalf("WriteLastSend() error = %v", err)
	}

	got, ok := state.LastSend()
	if !ok {
		t.Fatal("LastSend() should report present after write")
	}
	if diff := got.Sub(sent); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("LastSend() = %v, want within 1ms of %v", got, sent)
	}
}

func TestWriteAtomicLeavesNoTempFiles(t *testing.T) {
	state := newTestState(t)
	if err := state.WriteCursor(CursorRead, "42"); err != nil {
		t.Fatalf("WriteCursor() error = %v", err)
	}

	entries, err := os.ReadDir(state.Dir())
	if err != nil {
		t.Fatalf("reading state dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
