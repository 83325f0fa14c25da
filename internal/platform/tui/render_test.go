package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/sim"
)

func testWorld() *sim.World {
	w := sim.NewWorld("Test", core.NewRect(0, 0, 30, 10), core.Step{X: 1, Y: 1})
	w.AddObstacle(core.NewRect(10, 0, 1, 10))
	w.AddPlayer(sim.NewBody("p", core.NewRect(0, 0, 2, 1), 2, 3))
	w.AddBody(sim.NewBody("ball", core.NewCircle(0, 0, 1), 20, 4))
	return w
}

func TestRenderScreen(t *testing.T) {
	screen := core.NewScreen(10, 5)
	screen.DrawText(0, 0, "Hello")

	result := RenderScreen(screen)
	if result == "" {
		t.Error("RenderScreen returned empty string")
	}
	if !strings.Contains(result, "Hello") {
		t.Error("RenderScreen result should contain 'Hello'")
	}
	if n := strings.Count(result, "\n"); n != 4 {
		t.Errorf("expected 4 newlines for 5 rows, got %d", n)
	}
}

func TestDrawWorld(t *testing.T) {
	w := testWorld()
	screen := core.NewScreen(40, 11)
	view := Viewport(w, screen.Width(), screen.Height())

	if view != core.NewRect(0, 0, 40, 10) {
		t.Fatalf("Viewport = %+v, expected the whole 40x10 area", view)
	}

	DrawWorld(screen, sim.Frame{World: w}, view)

	if c := screen.GetCell(2, 3); c.Rune != glyphBody || c.Color != core.ColorPlayer {
		t.Errorf("player cell = %+v", c)
	}
	if c := screen.GetCell(10, 5); c.Rune != glyphObstacle || c.Color != core.ColorObstacle {
		t.Errorf("obstacle cell = %+v", c)
	}
	// Circle of radius 1 anchored at (20, 4) is centered on (21, 5)
	if c := screen.GetCell(21, 5); c.Rune != glyphBody || c.Color != core.ColorBody {
		t.Errorf("ball center cell = %+v", c)
	}
	if c := screen.GetCell(35, 2); c.Rune != glyphOutside {
		t.Errorf("cell outside the world = %+v, expected the outside glyph", c)
	}
	if c := screen.GetCell(5, 5); c.Rune != ' ' {
		t.Errorf("empty floor cell = %+v", c)
	}
}

func TestDrawWorldMarksBlockedBody(t *testing.T) {
	w := testWorld()
	screen := core.NewScreen(30, 11)
	f := sim.Frame{World: w, Moves: []sim.MoveResult{{BlockedX: true}, {}}}

	DrawWorld(screen, f, core.NewRect(0, 0, 30, 10))

	if c := screen.GetCell(2, 3); c.Color != core.ColorBlocked {
		t.Errorf("blocked player color = %v, expected ColorBlocked", c.Color)
	}
	if c := screen.GetCell(21, 5); c.Color != core.ColorBody {
		t.Errorf("free body color = %v, expected ColorBody", c.Color)
	}
}

func TestViewportFollowsPlayer(t *testing.T) {
	w := sim.NewWorld("Wide", core.NewRect(0, 0, 200, 50), core.Step{X: 1, Y: 1})
	w.AddPlayer(sim.NewBody("p", core.NewRect(0, 0, 2, 2), 150, 30))

	view := Viewport(w, 40, 21)
	if view.W != 40 || view.H != 20 {
		t.Fatalf("view size %dx%d, expected 40x20", view.W, view.H)
	}
	if !view.Encloses(w.PlayerBody().Bounds()) {
		t.Errorf("view %+v does not contain the player", view)
	}

	screen := core.NewScreen(40, 21)
	DrawWorld(screen, sim.Frame{World: w}, view)
	if c := screen.GetCell(150-view.X, 30-view.Y); c.Color != core.ColorPlayer {
		t.Errorf("player not drawn at its view position: %+v", c)
	}
}

func TestHUDText(t *testing.T) {
	w := testWorld()
	w.PlayerBody().SetVelocity(2, -1)

	hud := HUDText(sim.Frame{World: w, Number: 7, Capped: true, FPS: 20, RunTime: 1500 * time.Millisecond})
	for _, want := range []string{"Test", "pos 2,3", "vel +2,-1", "1.5s", "20 fps", "frame 7"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if strings.Contains(hud, "PAUSED") {
		t.Error("HUD shows PAUSED for a running frame")
	}
	// 7 frames in 1.5s
	if !strings.Contains(hud, "avg 4.7 fps") {
		t.Errorf("HUD %q missing the measured average", hud)
	}

	uncapped := HUDText(sim.Frame{World: w, Number: 300, RunTime: 2 * time.Second})
	if !strings.Contains(uncapped, "uncapped") || !strings.Contains(uncapped, "avg 150.0 fps") {
		t.Errorf("uncapped HUD = %q, expected the measured 150 fps", uncapped)
	}

	paused := HUDText(sim.Frame{World: w, Paused: true})
	if !strings.Contains(paused, "PAUSED") || !strings.Contains(paused, "uncapped") {
		t.Errorf("paused uncapped HUD = %q", paused)
	}
	if strings.Contains(paused, "avg") {
		t.Errorf("HUD %q shows an average before any run time", paused)
	}
}

func TestRenderFrameWritesHUDRow(t *testing.T) {
	screen := core.NewScreen(60, 12)
	out := RenderFrame(screen, sim.Frame{World: testWorld(), Number: 1})

	if n := strings.Count(out, "\n"); n != 11 {
		t.Errorf("expected 11 newlines for 12 rows, got %d", n)
	}
	if !strings.Contains(screen.Row(11), "frame 1") {
		t.Errorf("last row = %q, expected the HUD", screen.Row(11))
	}
}
