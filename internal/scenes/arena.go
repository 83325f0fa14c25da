package scenes

import (
	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/sim"
)

// ArenaID is the ID of the screen-sized arena.
const ArenaID = "arena"

// Minimum arena size in cells.
const (
	arenaMinW = 20
	arenaMinH = 10
)

// Arena fills the terminal with an open floor and four pillars.
type Arena struct{}

// ID returns "arena".
func (Arena) ID() string { return ArenaID }

// Title returns the display name.
func (Arena) Title() string { return "Arena" }

// Build sizes the world to the screen, leaving one row for the HUD.
func (Arena) Build(rc core.RuntimeConfig) (*sim.World, error) {
	w := core.Max(rc.ScreenW, arenaMinW)
	h := core.Max(rc.ScreenH-1, arenaMinH)

	world := sim.NewWorld("Arena", core.NewRect(0, 0, w, h), core.Step{X: 2, Y: 1})

	pw, ph := core.Max(w/20, 1), core.Max(h/6, 1)
	for _, p := range [][2]int{{w / 4, h / 4}, {3 * w / 4, h / 4}, {w / 4, 3 * h / 4}, {3 * w / 4, 3 * h / 4}} {
		world.AddObstacle(core.NewRect(p[0]-pw/2, p[1]-ph/2, pw, ph))
	}

	world.AddPlayer(sim.NewBody("player", core.NewRect(0, 0, 2, 1), w/2-1, h/2))
	return world, nil
}
