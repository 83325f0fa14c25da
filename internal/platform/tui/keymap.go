package tui

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotsim/internal/core"
)

// KeyAction is what a key press means while a scene is playing.
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyMove           // directional key, see the returned Direction
	KeyPause
	KeyToggleCap
	KeyBack // stop the run and return to the menu
	KeyQuit
	KeyScreenshot
)

// KeyMapper translates Bubble Tea key messages to play actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message. Dir is set for KeyMove only.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (KeyAction, core.Direction) {
	switch msg.String() {
	case "ctrl+c", "q":
		return KeyQuit, core.DirNone
	case "esc", "b":
		return KeyBack, core.DirNone
	case "p", " ":
		return KeyPause, core.DirNone
	case "f":
		return KeyToggleCap, core.DirNone
	case "ctrl+s":
		return KeyScreenshot, core.DirNone
	case "up", "w", "k":
		return KeyMove, core.DirUp
	case "down", "s", "j":
		return KeyMove, core.DirDown
	case "left", "a", "h":
		return KeyMove, core.DirLeft
	case "right", "d", "l":
		return KeyMove, core.DirRight
	}
	return KeyNone, core.DirNone
}

// HeldKeys synthesizes key-up events for terminals, which only report
// presses. The first press of a direction emits KeyDown; auto-repeat presses
// refresh the hold; once a direction has not been seen for the release
// window, a KeyUp is emitted. Every KeyDown is matched by exactly one KeyUp.
type HeldKeys struct {
	window time.Duration
	seen   map[core.Direction]time.Time
}

// NewHeldKeys creates a tracker with the given release window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{window: window, seen: make(map[core.Direction]time.Time)}
}

// Press records a press of d at now. Returns the KeyDown event and true if
// d was not already held.
func (h *HeldKeys) Press(d core.Direction, now time.Time) (core.InputEvent, bool) {
	_, held := h.seen[d]
	h.seen[d] = now
	if held {
		return core.InputEvent{}, false
	}
	return core.KeyDown(d), true
}

// Expire returns KeyUp events for every hold not refreshed within the
// window, in direction order.
func (h *HeldKeys) Expire(now time.Time) []core.InputEvent {
	var released []core.Direction
	for d, at := range h.seen {
		if now.Sub(at) >= h.window {
			released = append(released, d)
		}
	}
	return h.release(released)
}

// ReleaseAll returns KeyUp events for every held direction.
func (h *HeldKeys) ReleaseAll() []core.InputEvent {
	all := make([]core.Direction, 0, len(h.seen))
	for d := range h.seen {
		all = append(all, d)
	}
	return h.release(all)
}

// Held reports whether d is currently held.
func (h *HeldKeys) Held(d core.Direction) bool {
	_, ok := h.seen[d]
	return ok
}

func (h *HeldKeys) release(dirs []core.Direction) []core.InputEvent {
	if len(dirs) == 0 {
		return nil
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	events := make([]core.InputEvent, len(dirs))
	for i, d := range dirs {
		delete(h.seen, d)
		events[i] = core.KeyUp(d)
	}
	return events
}

// InputQueue collects events from the UI goroutine for the loop goroutine.
// It implements sim.InputSource.
type InputQueue struct {
	mu      sync.Mutex
	clock   core.Clock
	held    *HeldKeys
	pending []core.InputEvent
}

// NewInputQueue creates a queue whose synthesized key-ups fire after window.
// A nil clock means core.SystemClock.
func NewInputQueue(window time.Duration, clock core.Clock) *InputQueue {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &InputQueue{clock: clock, held: NewHeldKeys(window)}
}

// Press records a directional key press.
func (q *InputQueue) Press(d core.Direction) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ev, ok := q.held.Press(d, q.clock.Now()); ok {
		q.pending = append(q.pending, ev)
	}
}

// Push queues a non-directional event such as Quit or Pause.
// Quit releases every held key first so velocities settle.
func (q *InputQueue) Push(ev core.InputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ev.Kind == core.InputQuit {
		q.pending = append(q.pending, q.held.ReleaseAll()...)
	}
	q.pending = append(q.pending, ev)
}

// Drain returns the queued events plus any key-ups that are due, in order.
func (q *InputQueue) Drain() []core.InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := append(q.pending, q.held.Expire(q.clock.Now())...)
	q.pending = nil
	return events
}
