package core

// Direction is one of the four movement directions.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}

// ParseDirection maps a name such as "left" or "r" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	}
	return DirNone, false
}

// Step is the velocity change applied per axis by one directional key.
type Step struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// unit holds the sign of each direction's contribution per axis.
var unit = [...]struct{ x, y int }{
	DirNone:  {0, 0},
	DirUp:    {0, -1},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirRight: {1, 0},
}

// Delta returns the velocity change for pressing this direction.
func (d Direction) Delta(step Step) (dx, dy int) {
	if d < 0 || int(d) >= len(unit) {
		return 0, 0
	}
	u := unit[d]
	return u.x * step.X, u.y * step.Y
}

// InputKind classifies an input event.
type InputKind int

const (
	InputNone InputKind = iota
	InputKeyDown
	InputKeyUp
	InputQuit
	InputPause     // toggle simulation pause
	InputToggleCap // toggle the frame-rate cap
)

// String returns a human-readable name for the kind.
func (k InputKind) String() string {
	switch k {
	case InputKeyDown:
		return "KeyDown"
	case InputKeyUp:
		return "KeyUp"
	case InputQuit:
		return "Quit"
	case InputPause:
		return "Pause"
	case InputToggleCap:
		return "ToggleCap"
	default:
		return "None"
	}
}

// InputEvent is one event drained from the input collaborator.
type InputEvent struct {
	Kind InputKind
	Dir  Direction // only for KeyDown and KeyUp
}

// KeyDown creates a key-down event for a direction.
func KeyDown(d Direction) InputEvent {
	return InputEvent{Kind: InputKeyDown, Dir: d}
}

// KeyUp creates a key-up event for a direction.
func KeyUp(d Direction) InputEvent {
	return InputEvent{Kind: InputKeyUp, Dir: d}
}

// VelocityDelta returns the velocity change an event causes. Key-up is the
// exact inverse of key-down, so any combination of held keys cancels out once
// every key is released. Non-directional events yield zero.
func VelocityDelta(ev InputEvent, step Step) (dx, dy int) {
	dx, dy = ev.Dir.Delta(step)
	switch ev.Kind {
	case InputKeyDown:
		return dx, dy
	case InputKeyUp:
		return -dx, -dy
	default:
		return 0, 0
	}
}
