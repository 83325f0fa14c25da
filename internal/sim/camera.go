package sim

import "github.com/vovakirdan/dotsim/internal/core"

// Camera is a viewport that follows a target across a level larger than the
// screen.
type Camera struct {
	W, H int
}

// Follow returns the view rectangle centered on target and clamped into level.
// When the level is smaller than the view on an axis, the view is pinned to
// the level origin on that axis.
func (c Camera) Follow(target, level core.Rect) core.Rect {
	cx, cy := target.Center()
	view := core.NewRect(cx-c.W/2, cy-c.H/2, c.W, c.H)

	view.X = core.Clamp(view.X, level.X, core.Max(level.X, level.Right()-c.W))
	view.Y = core.Clamp(view.Y, level.Y, core.Max(level.Y, level.Bottom()-c.H))
	return view
}
