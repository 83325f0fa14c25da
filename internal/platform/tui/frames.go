// Package tui provides the Bubble Tea integration for dotsim.
// The sim loop runs on its own goroutine; this package feeds it key events
// and carries its rendered frames back to the terminal.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/sim"
)

// FrameMsg carries one rendered frame to the UI.
type FrameMsg string

// LoopDoneMsg is sent once the loop has stopped.
type LoopDoneMsg struct {
	Stats sim.RunStats
}

// frameSink is a one-slot mailbox between the loop and the UI. A frame the
// UI has not picked up yet is replaced by the newer one, so the loop never
// waits on the terminal.
type frameSink struct {
	frames  chan string
	stopped chan struct{}
	once    sync.Once
}

func newFrameSink() *frameSink {
	return &frameSink{
		frames:  make(chan string, 1),
		stopped: make(chan struct{}),
	}
}

// publish hands a frame over, dropping a stale one. Single producer only.
func (s *frameSink) publish(frame string) {
	for {
		select {
		case s.frames <- frame:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

// close signals that no more frames will arrive.
func (s *frameSink) close() {
	s.once.Do(func() { close(s.stopped) })
}

// wait returns a command that delivers the next frame, or nothing once
// the sink is closed.
func (s *frameSink) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.frames:
			return FrameMsg(f)
		case <-s.stopped:
			return nil
		}
	}
}

// frameRenderer renders frames on the loop goroutine. The screen is only
// touched there; the UI goroutine changes the size and reads snapshots.
type frameRenderer struct {
	sink   *frameSink
	screen *core.Screen

	mu       sync.Mutex
	w, h     int
	snapshot string // plain text of the last frame
}

func newFrameRenderer(sink *frameSink, w, h int) *frameRenderer {
	return &frameRenderer{sink: sink, screen: core.NewScreen(w, h), w: w, h: h}
}

// Resize sets the size used from the next frame on.
func (r *frameRenderer) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w, r.h = w, h
}

// Snapshot returns the last frame without colors.
func (r *frameRenderer) Snapshot() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Render implements sim.Renderer.
func (r *frameRenderer) Render(f sim.Frame) {
	r.mu.Lock()
	w, h := r.w, r.h
	r.mu.Unlock()

	if w != r.screen.Width() || h != r.screen.Height() {
		r.screen.Resize(w, h)
	}
	out := RenderFrame(r.screen, f)

	r.mu.Lock()
	r.snapshot = r.screen.String()
	r.mu.Unlock()

	r.sink.publish(out)
}
