package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotsim/internal/core"
)

// InputSource supplies the events that arrived since the last drain.
// Drain must not block.
type InputSource interface {
	Drain() []core.InputEvent
}

// InputFunc adapts a function to InputSource.
type InputFunc func() []core.InputEvent

// Drain calls f.
func (f InputFunc) Drain() []core.InputEvent {
	return f()
}

// Renderer draws one frame. It runs on the loop goroutine and must not keep
// references to the world after returning.
type Renderer interface {
	Render(f Frame)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(f Frame)

// Render calls f.
func (f RenderFunc) Render(fr Frame) {
	f(fr)
}

// Frame is the read-only view handed to the renderer once per iteration.
type Frame struct {
	World   *World
	Number  int           // 1-based iteration number
	Paused  bool          // simulation paused, bodies did not move
	Capped  bool          // frame rate cap active
	FPS     int           // target frame rate
	RunTime time.Duration // simulated time so far, pauses excluded
	Moves   []MoveResult  // per-body results, nil when paused
}

// LoopState is the state of the main loop.
type LoopState int

const (
	LoopRunning LoopState = iota
	LoopStopping
)

// RunStats summarizes a finished run.
type RunStats struct {
	Frames    int
	Overruns  int           // iterations whose work exceeded the frame interval
	Elapsed   time.Duration // run time, pauses excluded
	TargetFPS int
}

// Options configure a Loop.
type Options struct {
	FPS      int         // target frame rate; <= 0 disables the cap entirely
	Uncapped bool        // start with the cap switched off
	Clock    core.Clock  // nil means core.SystemClock
	Logger   *log.Logger // nil discards log output
}

// Loop is the frame-rate-capped main loop. Each iteration drains input, moves
// every body once, renders, then sleeps off whatever is left of the frame
// interval. Velocities are applied per iteration, not per unit of time, so
// the simulation speed follows the frame rate.
//
// A Loop is driven by a single goroutine and owns its world while running.
type Loop struct {
	world  *World
	input  InputSource
	render Renderer
	clock  core.Clock
	logger *log.Logger

	fps      int
	interval time.Duration
	capped   bool
	paused   bool
	state    LoopState

	frameWatch *core.Stopwatch // per iteration
	runWatch   *core.Stopwatch // whole run, paused with the simulation
	stats      RunStats
}

// NewLoop creates a loop over world with the given collaborators.
func NewLoop(world *World, input InputSource, render Renderer, opts Options) *Loop {
	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if input == nil {
		input = InputFunc(func() []core.InputEvent { return nil })
	}
	if render == nil {
		render = RenderFunc(func(Frame) {})
	}

	return &Loop{
		world:      world,
		input:      input,
		render:     render,
		clock:      clock,
		logger:     logger,
		fps:        opts.FPS,
		interval:   FrameInterval(opts.FPS),
		capped:     !opts.Uncapped,
		frameWatch: core.NewStopwatch(clock),
		runWatch:   core.NewStopwatch(clock),
		stats:      RunStats{TargetFPS: opts.FPS},
	}
}

// FrameInterval returns the target duration of one iteration, 1000/fps
// whole milliseconds. Zero means no cap.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(1000/fps) * time.Millisecond
}

// PacingDelay returns how long to sleep after an iteration that took elapsed.
// It is never negative: a late frame gets no sleep and no catch-up.
func PacingDelay(elapsed, interval time.Duration) time.Duration {
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

// State returns the loop state.
func (l *Loop) State() LoopState {
	return l.state
}

// Paused reports whether the simulation is paused.
func (l *Loop) Paused() bool {
	return l.paused
}

// Capped reports whether frame pacing is active.
func (l *Loop) Capped() bool {
	return l.capped && l.interval > 0
}

// Stats returns the statistics collected so far.
func (l *Loop) Stats() RunStats {
	s := l.stats
	s.Elapsed = l.runWatch.Elapsed()
	return s
}

// Step runs one iteration and reports whether the loop should continue.
// A quit event ends the loop after the current iteration completes.
func (l *Loop) Step() bool {
	l.frameWatch.Start()
	if !l.runWatch.IsStarted() {
		l.runWatch.Start()
	}

	for _, ev := range l.input.Drain() {
		l.handle(ev)
	}

	var moves []MoveResult
	if !l.paused {
		moves = l.world.Advance()
	}

	l.stats.Frames++
	l.render.Render(Frame{
		World:   l.world,
		Number:  l.stats.Frames,
		Paused:  l.paused,
		Capped:  l.Capped(),
		FPS:     l.fps,
		RunTime: l.runWatch.Elapsed(),
		Moves:   moves,
	})

	elapsed := l.frameWatch.Elapsed()
	if l.interval > 0 && elapsed > l.interval {
		l.stats.Overruns++
		l.logger.Debug("frame overrun", "frame", l.stats.Frames, "elapsed", elapsed, "interval", l.interval)
	}
	if l.Capped() {
		if d := PacingDelay(elapsed, l.interval); d > 0 {
			l.clock.Sleep(d)
		}
	}

	return l.state == LoopRunning
}

// handle applies one input event.
func (l *Loop) handle(ev core.InputEvent) {
	switch ev.Kind {
	case core.InputKeyDown, core.InputKeyUp:
		l.world.ApplyInput(ev)
	case core.InputQuit:
		if l.state == LoopRunning {
			l.logger.Debug("quit requested", "frame", l.stats.Frames+1)
		}
		l.state = LoopStopping
	case core.InputPause:
		l.paused = !l.paused
		if l.paused {
			l.runWatch.Pause()
		} else {
			l.runWatch.Unpause()
		}
		l.logger.Debug("pause toggled", "paused", l.paused)
	case core.InputToggleCap:
		l.capped = !l.capped
		l.logger.Debug("frame cap toggled", "capped", l.capped)
	}
}

// Run steps until a quit event is seen and returns the run statistics.
func (l *Loop) Run() RunStats {
	l.logger.Info("loop started", "world", l.world.Title, "fps", l.fps, "capped", l.Capped())

	for l.Step() {
	}

	stats := l.Stats()
	l.runWatch.Stop()
	l.logger.Info("loop stopped",
		"frames", stats.Frames,
		"overruns", stats.Overruns,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)
	return stats
}
