// Package sim contains the simulation layer on top of core: movable bodies
// with move-then-revert collision response, the world they live in, the
// camera and the frame-rate-capped main loop.
package sim

import "github.com/vovakirdan/dotsim/internal/core"

// Body is a movable object. It owns its shape. The absolute shape is always
// derived from the anchor, so the two can never drift apart.
type Body struct {
	name   string
	x, y   int        // anchor: top-left of the shape's bounding box
	vx, vy int        // displacement per Move
	form   core.Shape // shape template, placement ignored
	shape  core.Shape // form placed at the anchor
}

// MoveResult reports which axes were reverted by the last Move.
type MoveResult struct {
	BlockedX bool
	BlockedY bool
}

// NewBody creates a body with the given shape anchored at (x, y).
func NewBody(name string, form core.Shape, x, y int) *Body {
	b := &Body{name: name, form: form}
	b.place(x, y)
	return b
}

// place sets the anchor and re-derives the shape.
func (b *Body) place(x, y int) {
	b.x, b.y = x, y
	b.shape = b.form.At(x, y)
}

// Name returns the body's name.
func (b *Body) Name() string {
	return b.name
}

// Position returns the anchor position.
func (b *Body) Position() (int, int) {
	return b.x, b.y
}

// SetPosition moves the anchor without any collision test.
// Used to restore a saved position.
func (b *Body) SetPosition(x, y int) {
	b.place(x, y)
}

// Velocity returns the current velocity.
func (b *Body) Velocity() (int, int) {
	return b.vx, b.vy
}

// SetVelocity replaces the velocity.
func (b *Body) SetVelocity(vx, vy int) {
	b.vx, b.vy = vx, vy
}

// AddVelocity adjusts the velocity by a delta.
func (b *Body) AddVelocity(dx, dy int) {
	b.vx += dx
	b.vy += dy
}

// Shape returns the body's shape at its current position.
func (b *Body) Shape() core.Shape {
	return b.shape
}

// Bounds returns the bounding box of the body's shape.
func (b *Body) Bounds() core.Rect {
	return b.shape.Bounds()
}

// Move advances the body by its velocity, one axis at a time: X first, then Y.
// On each axis the displacement is applied and then reverted if the shape
// leaves bounds on that axis or collides with any obstacle. The Y test sees the
// position already committed on X. Motion on a free axis survives a blocked
// one, so bodies slide along walls.
//
// The test only looks at end positions: a body faster than an obstacle is
// thick can pass through it.
func (b *Body) Move(bounds core.Rect, obstacles []core.Shape) MoveResult {
	var res MoveResult

	if b.vx != 0 {
		b.place(b.x+b.vx, b.y)
		box := b.shape.Bounds()
		if box.X < bounds.X || box.Right() > bounds.Right() || core.CollidesAny(b.shape, obstacles) {
			b.place(b.x-b.vx, b.y)
			res.BlockedX = true
		}
	}

	if b.vy != 0 {
		b.place(b.x, b.y+b.vy)
		box := b.shape.Bounds()
		if box.Y < bounds.Y || box.Bottom() > bounds.Bottom() || core.CollidesAny(b.shape, obstacles) {
			b.place(b.x, b.y-b.vy)
			res.BlockedY = true
		}
	}

	return res
}
