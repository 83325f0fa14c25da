package core

import "math"

// Shape is a collision shape: a Rect, a Circle or a Silhouette.
// The set of variants is closed; Collides dispatches on the concrete type.
type Shape interface {
	// Bounds returns the axis-aligned bounding box of the shape.
	Bounds() Rect

	// At returns the same form placed with the top-left corner of its
	// bounding box at (x, y). The receiver is never modified.
	At(x, y int) Shape

	isShape()
}

// Circle is a disc given by its center and radius.
type Circle struct {
	X, Y int // Center
	R    int // Radius
}

// NewCircle creates a circle centered at (x, y).
func NewCircle(x, y, r int) Circle {
	return Circle{X: x, Y: y, R: r}
}

// Bounds returns the square enclosing the circle.
func (c Circle) Bounds() Rect {
	return Rect{X: c.X - c.R, Y: c.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

// At returns the circle with its bounding box anchored at (x, y),
// i.e. centered at (x+R, y+R).
func (c Circle) At(x, y int) Shape {
	return Circle{X: x + c.R, Y: y + c.R, R: c.R}
}

func (Circle) isShape() {}

// Strip is one horizontal band of a silhouette, before placement.
type Strip struct {
	W, H int
}

// Silhouette approximates a non-rectangular outline as an ordered stack of
// horizontal strips. Each strip is centered within Width and the strips are
// stacked downward from the anchor. The absolute boxes are derived from the
// anchor whenever it is set and cannot be edited on their own.
type Silhouette struct {
	x, y   int
	width  int
	strips []Strip
	boxes  []Rect
}

// NewSilhouette builds a silhouette anchored at (x, y). The strips slice is
// shared, not copied, and must not be modified afterwards.
func NewSilhouette(x, y, width int, strips []Strip) Silhouette {
	s := Silhouette{width: width, strips: strips}
	s.place(x, y)
	return s
}

// place recomputes every strip box from the anchor.
func (s *Silhouette) place(x, y int) {
	s.x, s.y = x, y
	s.boxes = make([]Rect, len(s.strips))
	row := 0
	for i, st := range s.strips {
		s.boxes[i] = Rect{
			X: x + (s.width-st.W)/2,
			Y: y + row,
			W: st.W,
			H: st.H,
		}
		row += st.H
	}
}

// Anchor returns the silhouette's reference position.
func (s Silhouette) Anchor() (int, int) {
	return s.x, s.y
}

// Boxes returns the placed strip rectangles. The slice must be treated as read-only.
func (s Silhouette) Boxes() []Rect {
	return s.boxes
}

// Height returns the total height of the stacked strips.
func (s Silhouette) Height() int {
	h := 0
	for _, st := range s.strips {
		h += st.H
	}
	return h
}

// Bounds returns the anchor box spanning the full width and strip height.
func (s Silhouette) Bounds() Rect {
	return Rect{X: s.x, Y: s.y, W: s.width, H: s.Height()}
}

// At returns a copy of the silhouette re-anchored at (x, y).
func (s Silhouette) At(x, y int) Shape {
	moved := Silhouette{width: s.width, strips: s.strips}
	moved.place(x, y)
	return moved
}

func (Silhouette) isShape() {}

// RectsCollide reports whether two rectangles overlap with non-zero area.
// Rectangles that only share an edge do not collide.
func RectsCollide(a, b Rect) bool {
	// No overlap if one rect is completely above, below, left or right of the other
	if a.Bottom() <= b.Y || a.Y >= b.Bottom() {
		return false
	}
	if a.Right() <= b.X || a.X >= b.Right() {
		return false
	}
	return true
}

// RectSetsCollide reports whether any rectangle of a overlaps any rectangle of b.
func RectSetsCollide(a, b []Rect) bool {
	for _, ra := range a {
		for _, rb := range b {
			if RectsCollide(ra, rb) {
				return true
			}
		}
	}
	return false
}

// CirclesCollide reports whether the centers are strictly closer than the
// sum of the radii. Touching circles do not collide.
func CirclesCollide(a, b Circle) bool {
	return distance(a.X, a.Y, b.X, b.Y) < float64(a.R+b.R)
}

// CircleHitsRects reports whether the circle overlaps any of the rectangles.
// The nearest point of each rectangle is found by clamping the center per axis.
func CircleHitsRects(c Circle, rects []Rect) bool {
	for _, r := range rects {
		nx := Clamp(c.X, r.X, r.Right())
		ny := Clamp(c.Y, r.Y, r.Bottom())
		if distance(c.X, c.Y, nx, ny) < float64(c.R) {
			return true
		}
	}
	return false
}

// Collides tests two shapes using the predicate matching their variants.
// Rectangles and silhouettes are both treated as rectangle sets.
func Collides(a, b Shape) bool {
	ca, aIsCircle := a.(Circle)
	cb, bIsCircle := b.(Circle)

	switch {
	case aIsCircle && bIsCircle:
		return CirclesCollide(ca, cb)
	case aIsCircle:
		return CircleHitsRects(ca, boxesOf(b))
	case bIsCircle:
		return CircleHitsRects(cb, boxesOf(a))
	default:
		return RectSetsCollide(boxesOf(a), boxesOf(b))
	}
}

// CollidesAny reports whether s collides with at least one obstacle.
func CollidesAny(s Shape, obstacles []Shape) bool {
	for _, o := range obstacles {
		if Collides(s, o) {
			return true
		}
	}
	return false
}

// boxesOf returns the rectangle set of a non-circle shape.
func boxesOf(s Shape) []Rect {
	switch v := s.(type) {
	case Rect:
		return []Rect{v}
	case Silhouette:
		return v.boxes
	default:
		return nil
	}
}

func distance(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x2-x1), float64(y2-y1))
}
