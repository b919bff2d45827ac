package llm

import (
	"context"
	"fmt"
	"time"
)

// Guard tracks consecutive transport failures and opens a cooldown window
// once too many pile up, so a flaky completion service is not hammered in a
// tight loop.
type Guard struct {
	maxFailures   int
	cooldown      time.Duration
	failures      int
	disabledUntil time.Time
	now           func() time.Time
}

func NewGuard(maxFailures int, cooldown time.Duration) Guard {
	return Guard{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
	}
}

func (g *Guard) Allow() bool {
	if g == nil {
		return true
	}
	if g.disabledUntil.IsZero() {
		return true
	}
	return g.now().After(g.disabledUntil)
}

func (g *Guard) RecordFailure() {
	if g == nil || g.maxFailures <= 0 {
		return
	}
	g.failures++
	if g.failures >= g.maxFailures {
		g.disabledUntil = g.now().Add(g.cooldown)
	}
}

func (g *Guard) RecordSuccess() {
	if g == nil {
		return
	}
	g.failures = 0
	g.disabledUntil = time.Time{}
}

func (g *Guard) DisabledUntil() time.Time {
	if g == nil {
		return time.Time{}
	}
	return g.disabledUntil
}

// GuardedClient wraps a Client with a Guard: while the cooldown is open,
// calls fail fast without touching the wire. Not safe for concurrent use;
// the game loop is strictly sequential.
type GuardedClient struct {
	inner Client
	guard Guard
}

func NewGuardedClient(inner Client, maxFailures int, cooldown time.Duration) *GuardedClient {
	return &GuardedClient{
		inner: inner,
		guard: NewGuard(maxFailures, cooldown),
	}
}

func (c *GuardedClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.inner == nil {
		return "", fmt.Errorf("llm client missing")
	}
	if !c.guard.Allow() {
		return "", fmt.Errorf("completion service cooling down until %s", c.guard.DisabledUntil().Format(time.RFC3339))
	}
	text, err := c.inner.Complete(ctx, req)
	if err != nil {
		c.guard.RecordFailure()
		return "", err
	}
	c.guard.RecordSuccess()
	return text, nil
}
