package core

import "time"

// Clock is the time source for stopwatches and frame pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the wall clock and really sleeps.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock is a virtual clock. Time only moves through Advance and Sleep,
// which makes pacing deterministic in tests and headless runs.
// It is not safe for concurrent use.
type ManualClock struct {
	now   time.Time
	slept time.Duration
}

// NewManualClock creates a virtual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the virtual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Sleep advances virtual time by d and records it.
func (c *ManualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.slept += d
	c.now = c.now.Add(d)
}

// Advance moves virtual time forward without counting it as sleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Slept returns the total duration passed to Sleep.
func (c *ManualClock) Slept() time.Duration {
	return c.slept
}
