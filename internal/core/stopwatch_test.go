package core

import (
	"testing"
	"time"
)

func newTestStopwatch() (*Stopwatch, *ManualClock) {
	clock := NewManualClock(time.Unix(1000, 0))
	return NewStopwatch(clock), clock
}

func TestStopwatchInitialState(t *testing.T) {
	sw, clock := newTestStopwatch()
	clock.Advance(time.Second)

	if sw.IsStarted() || sw.IsPaused() {
		t.Error("new stopwatch should be stopped")
	}
	if sw.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0 before Start", sw.Elapsed())
	}
	if sw.State() != StopwatchStopped {
		t.Errorf("State() = %v, expected Stopped", sw.State())
	}
}

func TestStopwatchRunning(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(250 * time.Millisecond)

	if !sw.IsStarted() {
		t.Error("IsStarted() should be true after Start")
	}
	if sw.Elapsed() != 250*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 250ms", sw.Elapsed())
	}
	if sw.Ticks() != 250 {
		t.Errorf("Ticks() = %d, expected 250", sw.Ticks())
	}
}

func TestStopwatchStartResets(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(time.Second)
	sw.Pause()

	sw.Start()
	if sw.IsPaused() {
		t.Error("Start should clear the paused state")
	}
	if sw.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v right after restart, expected 0", sw.Elapsed())
	}
}

func TestStopwatchPauseFreezes(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(100 * time.Millisecond)
	t1 := sw.Elapsed()

	sw.Pause()
	t2 := sw.Elapsed()
	clock.Advance(5 * time.Second)
	t3 := sw.Elapsed()

	if !sw.IsPaused() || !sw.IsStarted() {
		t.Error("paused stopwatch should report started and paused")
	}
	if t2 != t3 {
		t.Errorf("elapsed moved while paused: %v -> %v", t2, t3)
	}
	if t2 != t1 {
		t.Errorf("Pause changed the elapsed value: %v -> %v", t1, t2)
	}
}

func TestStopwatchUnpauseContinues(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(300 * time.Millisecond)
	sw.Pause()
	clock.Advance(10 * time.Second)
	sw.Unpause()

	if sw.IsPaused() {
		t.Error("Unpause should leave the paused state")
	}
	if sw.Elapsed() != 300*time.Millisecond {
		t.Errorf("Elapsed() = %v right after Unpause, expected 300ms", sw.Elapsed())
	}

	clock.Advance(50 * time.Millisecond)
	if sw.Elapsed() != 350*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 350ms excluding the pause", sw.Elapsed())
	}
}

func TestStopwatchImmediatePauseUnpause(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(40 * time.Millisecond)
	before := sw.Elapsed()

	sw.Pause()
	sw.Unpause()

	if after := sw.Elapsed(); after != before {
		t.Errorf("immediate pause/unpause jumped from %v to %v", before, after)
	}
}

func TestStopwatchNoOpTransitions(t *testing.T) {
	sw, clock := newTestStopwatch()

	// Pause and Unpause while stopped do nothing
	sw.Pause()
	if sw.IsPaused() || sw.IsStarted() {
		t.Error("Pause on a stopped stopwatch should be a no-op")
	}
	sw.Unpause()
	if sw.IsStarted() {
		t.Error("Unpause on a stopped stopwatch should be a no-op")
	}

	// Unpause while running does nothing
	sw.Start()
	clock.Advance(20 * time.Millisecond)
	sw.Unpause()
	if sw.Elapsed() != 20*time.Millisecond {
		t.Errorf("Unpause while running changed elapsed to %v", sw.Elapsed())
	}

	// Double pause keeps the first frozen value
	sw.Pause()
	clock.Advance(20 * time.Millisecond)
	sw.Pause()
	if sw.Elapsed() != 20*time.Millisecond {
		t.Errorf("second Pause refroze elapsed at %v", sw.Elapsed())
	}
}

func TestStopwatchStop(t *testing.T) {
	sw, clock := newTestStopwatch()
	sw.Start()
	clock.Advance(time.Second)
	sw.Pause()
	sw.Stop()

	if sw.IsStarted() || sw.IsPaused() {
		t.Error("Stop should clear started and paused")
	}
	if sw.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v after Stop, expected 0", sw.Elapsed())
	}

	sw.Unpause()
	if sw.IsStarted() {
		t.Error("Unpause after Stop should be a no-op")
	}
}

func TestStopwatchStateString(t *testing.T) {
	cases := map[StopwatchState]string{
		StopwatchStopped:   "Stopped",
		StopwatchRunning:   "Running",
		StopwatchPaused:    "Paused",
		StopwatchState(42): "Unknown",
	}
	for state, want := range cases {
		if state.String() != want {
			t.Errorf("%d.String() = %q, expected %q", state, state.String(), want)
		}
	}
}

func TestManualClockSleep(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	clock.Sleep(30 * time.Millisecond)
	clock.Sleep(-5 * time.Millisecond)
	clock.Advance(10 * time.Millisecond)

	if clock.Slept() != 30*time.Millisecond {
		t.Errorf("Slept() = %v, expected 30ms", clock.Slept())
	}
	if got := clock.Now().Sub(time.Unix(0, 0)); got != 40*time.Millisecond {
		t.Errorf("virtual time advanced by %v, expected 40ms", got)
	}
}
