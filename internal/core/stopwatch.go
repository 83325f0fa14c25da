package core

import "time"

// StopwatchState is the lifecycle state of a Stopwatch.
type StopwatchState int

const (
	StopwatchStopped StopwatchState = iota
	StopwatchRunning
	StopwatchPaused
)

// String returns a human-readable name for the state.
func (s StopwatchState) String() string {
	switch s {
	case StopwatchStopped:
		return "Stopped"
	case StopwatchRunning:
		return "Running"
	case StopwatchPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Stopwatch measures elapsed time and can be paused. Paused time is excluded:
// after Unpause the elapsed value continues from where it was frozen.
// Calls that have no meaning in the current state are silently ignored.
type Stopwatch struct {
	clock  Clock
	state  StopwatchState
	start  time.Time     // when counting logically began
	paused time.Duration // frozen elapsed while paused
}

// NewStopwatch creates a stopped stopwatch. A nil clock means SystemClock.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

// Start resets the stopwatch to zero and starts it running.
func (s *Stopwatch) Start() {
	s.state = StopwatchRunning
	s.start = s.clock.Now()
	s.paused = 0
}

// Stop halts the stopwatch. Elapsed reports zero until the next Start.
func (s *Stopwatch) Stop() {
	s.state = StopwatchStopped
	s.paused = 0
}

// Pause freezes the elapsed value. Only has an effect while running.
func (s *Stopwatch) Pause() {
	if s.state != StopwatchRunning {
		return
	}
	s.paused = s.clock.Now().Sub(s.start)
	s.state = StopwatchPaused
}

// Unpause resumes counting from the frozen value. Only has an effect while paused.
func (s *Stopwatch) Unpause() {
	if s.state != StopwatchPaused {
		return
	}
	s.start = s.clock.Now().Add(-s.paused)
	s.paused = 0
	s.state = StopwatchRunning
}

// Elapsed returns the counted time: zero when stopped, the frozen value when
// paused, otherwise the time since the (re-based) start.
func (s *Stopwatch) Elapsed() time.Duration {
	switch s.state {
	case StopwatchRunning:
		return s.clock.Now().Sub(s.start)
	case StopwatchPaused:
		return s.paused
	default:
		return 0
	}
}

// Ticks returns Elapsed in whole milliseconds.
func (s *Stopwatch) Ticks() int64 {
	return s.Elapsed().Milliseconds()
}

// State returns the current lifecycle state.
func (s *Stopwatch) State() StopwatchState {
	return s.state
}

// IsStarted reports whether the stopwatch is running or paused.
func (s *Stopwatch) IsStarted() bool {
	return s.state != StopwatchStopped
}

// IsPaused reports whether the stopwatch is paused.
func (s *Stopwatch) IsPaused() bool {
	return s.state == StopwatchPaused
}
