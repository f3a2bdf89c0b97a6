package bridge

import (
	"errors"
	"testing"
	"time"
)

func TestGateRefusesWithinInterval(t *testing.T) {
	state := newTestState(t)
	gate := NewGate(state, 300*time.Second)

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return base }

	// First send allowed with no marker.
	if err := gate.Check(false); err != nil {
		t.Fatalf("Check() with no marker = %v, want nil", err)
	}
	if err := gate.MarkSent(); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}

	// 100s later: refused with ~200s remaining.
	gate.now = func() time.Time { return base.Add(100 * time.Second) }
	err := gate.Check(false)
	if err == nil {
		t.Fatal("Check() 100s into a 300s interval should refuse")
	}
	var rateErr *RateLimitedError
	if !errors.As(err, &rateErr) {
		t.Fatalf("error = %T, want *RateLimitedError", err)
	}
	remaining := rateErr.Remaining.Seconds()
	if remaining < 199 || remaining > 201 {
		t.Errorf("Remaining = %.1fs, want ≈200s", remaining)
	}

	// Force always passes.
	if err := gate.Check(true); err != nil {
		t.Errorf("Check(force) = %v, want nil", err)
	}

	// After the interval elapses, allowed again.
	gate.now = func() time.Time { return base.Add(301 * time.Second) }
	if err := gate.Check(false); err != nil {
		t.Errorf("Check() after interval = %v, want nil", err)
	}
}

func TestGateZeroInterval(t *testing.T) {
	state := newTestState(t)
	gate := NewGate(state, 0)

	if err := gate.MarkSent(); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}
	if err := gate.Check(false); err != nil {
		t.Errorf("Check() with zero interval = %v, want nil", err)
	}
}

func TestGateMarkSentPersists(t *testing.T) {
	state := newTestState(t)
	gate := NewGate(state, time.Minute)

	sent := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	gate.now = func() time.Time { return sent }
	if err := gate.MarkSent(); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}

	// A fresh gate over the same state dir sees the marker.
	fresh := NewGate(state, time.Minute)
	fresh.now = func() time.Time { return sent.Add(10 * time.Second) }
	err := fresh.Check(false)
	var rateErr *RateLimitedError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Check() = %v, want *RateLimitedError", err)
	}
	if got := rateErr.Remaining.Round(time.Second); got != 50*time.Second {
		t.Errorf("Remaining = %v, want 50s", got)
	}
}
