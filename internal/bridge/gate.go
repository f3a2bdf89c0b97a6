package bridge

import (
	"fmt"
	"time"
)

// RateLimitedError reports a refused outbound send and how long to wait.
type RateLimitedError struct {
	Remaining time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: wait %ds before sending another message (use --force to bypass)", int(e.Remaining.Seconds()))
}

// Gate enforces the minimum interval between outbound sends. The last-send
// marker lives in the state directory and is only updated after a send
// actually succeeds, so a failed transport call doesn't burn the window.
type Gate struct {
	state    *State
	interval time.Duration
	now      func() time.Time
}

// NewGate creates a gate with the configured minimum interval.
func NewGate(state *State, interval time.Duration) *Gate {
	return &Gate{state: state, interval: interval, now: time.Now}
}

// Check returns nil when a send is allowed, or a *RateLimitedError carrying
// the remaining wait. force bypasses the interval entirely.
func (g *Gate) Check(force bool) error {
	if force {
		return nil
	}
	last, ok := g.state.LastSend()
	if !ok {
		return nil
	}
	elapsed := g.now().Sub(last)
	if elapsed >= g.interval {
		return nil
	}
	return &RateLimitedError{Remaining: g.interval - elapsed}
}

// MarkSent records a successful send at the current time.
func (g *Gate) MarkSent() error {
	return g.state.WriteLastSend(g.now())
}
