package sim

import "github.com/vovakirdan/dotsim/internal/core"

// World is everything a loop simulates: the bounds every body must stay
// inside, the bodies, and static obstacle shapes.
type World struct {
	Title     string
	Bounds    core.Rect
	Bodies    []*Body
	Obstacles []core.Shape
	Player    int       // index of the input-controlled body, -1 for none
	Step      core.Step // velocity change per directional key

	scratch []core.Shape
}

// NewWorld creates an empty world with the given bounds and no player.
func NewWorld(title string, bounds core.Rect, step core.Step) *World {
	return &World{
		Title:  title,
		Bounds: bounds,
		Player: -1,
		Step:   step,
	}
}

// AddBody appends a body and returns it.
func (w *World) AddBody(b *Body) *Body {
	w.Bodies = append(w.Bodies, b)
	return b
}

// AddPlayer appends a body and marks it as input-controlled.
func (w *World) AddPlayer(b *Body) *Body {
	w.Player = len(w.Bodies)
	return w.AddBody(b)
}

// AddObstacle registers a static obstacle.
func (w *World) AddObstacle(s core.Shape) {
	w.Obstacles = append(w.Obstacles, s)
}

// PlayerBody returns the input-controlled body, or nil.
func (w *World) PlayerBody() *Body {
	if w.Player < 0 || w.Player >= len(w.Bodies) {
		return nil
	}
	return w.Bodies[w.Player]
}

// ApplyInput routes a directional event to the player's velocity.
// Returns true if the event changed anything.
func (w *World) ApplyInput(ev core.InputEvent) bool {
	p := w.PlayerBody()
	if p == nil {
		return false
	}
	dx, dy := core.VelocityDelta(ev, w.Step)
	if dx == 0 && dy == 0 {
		return false
	}
	p.AddVelocity(dx, dy)
	return true
}

// ObstaclesFor returns the shapes body i must not overlap: the static
// obstacles plus every other body as it stands right now. The returned slice
// is reused by the next call.
func (w *World) ObstaclesFor(i int) []core.Shape {
	w.scratch = append(w.scratch[:0], w.Obstacles...)
	for j, other := range w.Bodies {
		if j != i {
			w.scratch = append(w.scratch, other.Shape())
		}
	}
	return w.scratch
}

// Advance moves every body once, in order. Bodies later in the list see the
// updated positions of earlier ones.
func (w *World) Advance() []MoveResult {
	results := make([]MoveResult, len(w.Bodies))
	for i, b := range w.Bodies {
		results[i] = b.Move(w.Bounds, w.ObstaclesFor(i))
	}
	return results
}

// Place moves body i to (x, y) if the shape fits inside the bounds without
// overlapping anything. Returns false and leaves the body alone otherwise.
func (w *World) Place(i, x, y int) bool {
	if i < 0 || i >= len(w.Bodies) {
		return false
	}
	b := w.Bodies[i]
	shape := b.form.At(x, y)
	if !w.Bounds.Encloses(shape.Bounds()) || core.CollidesAny(shape, w.ObstaclesFor(i)) {
		return false
	}
	b.place(x, y)
	return true
}
