// Package config provides YAML-based scene definitions and environment-driven
// runtime settings for dotsim.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/dotsim/internal/core"
)

// Shape kinds accepted in scene files.
const (
	KindRect       = "rect"
	KindCircle     = "circle"
	KindSilhouette = "silhouette"
)

var (
	// ErrUnknownKind is returned for a shape kind other than rect, circle or silhouette.
	ErrUnknownKind = errors.New("unknown shape kind")
	// ErrBadSize is returned for non-positive dimensions.
	ErrBadSize = errors.New("size must be positive")
	// ErrOutOfBounds is returned for a body that does not start inside the scene bounds.
	ErrOutOfBounds = errors.New("body outside scene bounds")
	// ErrOverlap is returned for a body that starts inside an obstacle or another body.
	ErrOverlap = errors.New("body overlaps another shape")
)

// SceneConfig describes one playable scene.
type SceneConfig struct {
	Title     string        `yaml:"title"`
	Bounds    Size          `yaml:"bounds"`
	Step      core.Step     `yaml:"step"` // velocity change per key press
	Player    BodyConfig    `yaml:"player"`
	Bodies    []BodyConfig  `yaml:"bodies"`    // non-player bodies
	Obstacles []ShapeConfig `yaml:"obstacles"` // static shapes
}

// Size is a width and height in cells.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// BodyConfig describes a movable body and its starting state.
type BodyConfig struct {
	Name  string      `yaml:"name"`
	Shape ShapeConfig `yaml:"shape"`
	X     int         `yaml:"x"`
	Y     int         `yaml:"y"`
	VX    int         `yaml:"vx"`
	VY    int         `yaml:"vy"`
}

// ShapeConfig describes a shape. X and Y place obstacles; for bodies the
// body position is used instead.
type ShapeConfig struct {
	Kind   string        `yaml:"kind"`
	X      int           `yaml:"x"`
	Y      int           `yaml:"y"`
	W      int           `yaml:"w"` // rect size, silhouette width
	H      int           `yaml:"h"`
	R      int           `yaml:"r"` // circle radius
	Strips []StripConfig `yaml:"strips"`
}

// StripConfig is one horizontal band of a silhouette.
type StripConfig struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Validate checks the shape's dimensions.
func (s ShapeConfig) Validate() error {
	switch s.Kind {
	case KindRect:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("rect %dx%d: %w", s.W, s.H, ErrBadSize)
		}
	case KindCircle:
		if s.R <= 0 {
			return fmt.Errorf("circle radius %d: %w", s.R, ErrBadSize)
		}
	case KindSilhouette:
		if s.W <= 0 || len(s.Strips) == 0 {
			return fmt.Errorf("silhouette width %d with %d strips: %w", s.W, len(s.Strips), ErrBadSize)
		}
		for i, st := range s.Strips {
			if st.W <= 0 || st.H <= 0 || st.W > s.W {
				return fmt.Errorf("strip %d (%dx%d in width %d): %w", i, st.W, st.H, s.W, ErrBadSize)
			}
		}
	default:
		return fmt.Errorf("%q: %w", s.Kind, ErrUnknownKind)
	}
	return nil
}

// Build creates the shape with the top-left of its bounding box at (x, y).
// The shape must have been validated.
func (s ShapeConfig) Build(x, y int) core.Shape {
	switch s.Kind {
	case KindCircle:
		return core.NewCircle(x+s.R, y+s.R, s.R)
	case KindSilhouette:
		strips := make([]core.Strip, len(s.Strips))
		for i, st := range s.Strips {
			strips[i] = core.Strip{W: st.W, H: st.H}
		}
		return core.NewSilhouette(x, y, s.W, strips)
	default:
		return core.NewRect(x, y, s.W, s.H)
	}
}

// Validate checks the body's shape and that it starts inside bounds.
func (b BodyConfig) Validate(bounds core.Rect) error {
	if err := b.Shape.Validate(); err != nil {
		return err
	}
	box := b.Shape.Build(b.X, b.Y).Bounds()
	if !bounds.Encloses(box) {
		return fmt.Errorf("%+v not within %+v: %w", box, bounds, ErrOutOfBounds)
	}
	return nil
}

// WorldBounds returns the scene bounds as a rectangle at the origin.
func (c SceneConfig) WorldBounds() core.Rect {
	return core.NewRect(0, 0, c.Bounds.W, c.Bounds.H)
}

// Validate checks the whole scene and returns the first problem found.
func (c SceneConfig) Validate() error {
	if c.Bounds.W <= 0 || c.Bounds.H <= 0 {
		return fmt.Errorf("bounds %dx%d: %w", c.Bounds.W, c.Bounds.H, ErrBadSize)
	}
	if c.Step.X < 0 || c.Step.Y < 0 {
		return fmt.Errorf("step (%d, %d) must not be negative", c.Step.X, c.Step.Y)
	}

	for i, o := range c.Obstacles {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}

	bounds := c.WorldBounds()
	if err := c.Player.Validate(bounds); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	for i, b := range c.Bodies {
		if err := b.Validate(bounds); err != nil {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, err)
		}
	}
	return c.checkOverlaps()
}

// checkOverlaps rejects bodies that start colliding with a static obstacle
// or an earlier body. Such a body could never move.
func (c SceneConfig) checkOverlaps() error {
	placed := make([]core.Shape, 0, len(c.Obstacles)+len(c.Bodies)+1)
	for _, o := range c.Obstacles {
		placed = append(placed, o.Build(o.X, o.Y))
	}

	bodies := append([]BodyConfig{c.Player}, c.Bodies...)
	for i, b := range bodies {
		shape := b.Shape.Build(b.X, b.Y)
		if core.CollidesAny(shape, placed) {
			name := "player"
			if i > 0 {
				name = fmt.Sprintf("body %d (%s)", i-1, b.Name)
			}
			return fmt.Errorf("%s at (%d, %d): %w", name, b.X, b.Y, ErrOverlap)
		}
		placed = append(placed, shape)
	}
	return nil
}
