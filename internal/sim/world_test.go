package sim

import (
	"testing"

	"github.com/vovakirdan/dotsim/internal/core"
)

func TestWorldObstaclesForExcludesSelf(t *testing.T) {
	w := NewWorld("test", testBounds, core.Step{X: 1, Y: 1})
	wall := core.NewRect(50, 0, 5, 60)
	w.AddObstacle(wall)
	a := w.AddPlayer(NewBody("a", core.NewRect(0, 0, 4, 4), 0, 0))
	b := w.AddBody(NewBody("b", core.NewRect(0, 0, 4, 4), 10, 0))

	obs := w.ObstaclesFor(0)
	if len(obs) != 2 {
		t.Fatalf("len(ObstaclesFor(0)) = %d, expected 2", len(obs))
	}
	if obs[0] != core.Shape(wall) || obs[1] != b.Shape() {
		t.Errorf("ObstaclesFor(0) = %+v, expected wall then b", obs)
	}

	obs = w.ObstaclesFor(1)
	if len(obs) != 2 || obs[1] != a.Shape() {
		t.Errorf("ObstaclesFor(1) = %+v, expected wall then a", obs)
	}

	if len(w.Obstacles) != 1 {
		t.Errorf("ObstaclesFor must not grow the static set, got %d", len(w.Obstacles))
	}
}

func TestWorldBodiesBlockEachOther(t *testing.T) {
	w := NewWorld("test", testBounds, core.Step{})
	a := w.AddBody(NewBody("a", core.NewRect(0, 0, 4, 4), 0, 0))
	b := w.AddBody(NewBody("b", core.NewRect(0, 0, 4, 4), 10, 0))
	a.SetVelocity(2, 0)
	b.SetVelocity(-2, 0)

	w.Advance() // a: 2, b: 8
	w.Advance() // a: 4, b: 6 would overlap a at 4..8 -> stays 8
	results := w.Advance()

	ax, _ := a.Position()
	bx, _ := b.Position()
	if ax != 4 || bx != 8 {
		t.Errorf("positions = (%d, %d), expected a at 4 and b at 8", ax, bx)
	}
	if !results[0].BlockedX || !results[1].BlockedX {
		t.Errorf("both bodies should be blocked on X, got %+v", results)
	}
	if core.Collides(a.Shape(), b.Shape()) {
		t.Error("bodies must never end up overlapping")
	}
}

func TestWorldApplyInput(t *testing.T) {
	w := NewWorld("test", testBounds, core.Step{X: 2, Y: 1})

	if w.ApplyInput(core.KeyDown(core.DirRight)) {
		t.Error("ApplyInput without a player should report no change")
	}

	p := w.AddPlayer(NewBody("p", core.NewRect(0, 0, 2, 2), 0, 0))
	w.ApplyInput(core.KeyDown(core.DirRight))
	w.ApplyInput(core.KeyDown(core.DirDown))
	if vx, vy := p.Velocity(); vx != 2 || vy != 1 {
		t.Errorf("Velocity() = (%d, %d), expected (2, 1)", vx, vy)
	}

	w.ApplyInput(core.KeyUp(core.DirRight))
	w.ApplyInput(core.KeyUp(core.DirDown))
	if vx, vy := p.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("Velocity() = (%d, %d) after release, expected (0, 0)", vx, vy)
	}

	if w.ApplyInput(core.InputEvent{Kind: core.InputPause}) {
		t.Error("non-directional events should not change velocity")
	}
}

func TestWorldPlayerBody(t *testing.T) {
	w := NewWorld("test", testBounds, core.Step{})
	if w.PlayerBody() != nil {
		t.Error("empty world should have no player")
	}
	w.AddBody(NewBody("npc", core.NewRect(0, 0, 1, 1), 0, 0))
	p := w.AddPlayer(NewBody("p", core.NewRect(0, 0, 1, 1), 5, 5))
	if w.PlayerBody() != p {
		t.Error("PlayerBody should return the body added with AddPlayer")
	}
}

func TestCameraFollow(t *testing.T) {
	cam := Camera{W: 40, H: 20}
	level := core.NewRect(0, 0, 200, 100)

	tests := []struct {
		name   string
		target core.Rect
		want   core.Rect
	}{
		{"centered", core.NewRect(99, 49, 2, 2), core.NewRect(80, 40, 40, 20)},
		{"clamped top-left", core.NewRect(0, 0, 2, 2), core.NewRect(0, 0, 40, 20)},
		{"clamped bottom-right", core.NewRect(198, 98, 2, 2), core.NewRect(160, 80, 40, 20)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cam.Follow(tc.target, level); got != tc.want {
				t.Errorf("Follow() = %+v, expected %+v", got, tc.want)
			}
		})
	}

	small := core.NewRect(0, 0, 30, 10)
	if got := cam.Follow(core.NewRect(25, 5, 2, 2), small); got.X != 0 || got.Y != 0 {
		t.Errorf("level smaller than view should pin to origin, got %+v", got)
	}
}

func TestWorldPlace(t *testing.T) {
	w := NewWorld("place", core.NewRect(0, 0, 50, 20), core.Step{X: 1, Y: 1})
	w.AddObstacle(core.NewRect(20, 0, 2, 20))
	p := w.AddPlayer(NewBody("p", core.NewRect(0, 0, 4, 2), 1, 1))

	tests := []struct {
		name  string
		x, y  int
		want  bool
		wantX int
	}{
		{"free spot", 10, 5, true, 10},
		{"flush with obstacle", 16, 5, true, 16},
		{"overlaps obstacle", 18, 5, false, 16},
		{"outside bounds", 48, 5, false, 16},
		{"negative", -1, 5, false, 16},
	}
	for _, tc := range tests {
		if got := w.Place(0, tc.x, tc.y); got != tc.want {
			t.Errorf("%s: Place(%d, %d) = %v, expected %v", tc.name, tc.x, tc.y, got, tc.want)
		}
		if x, _ := p.Position(); x != tc.wantX {
			t.Errorf("%s: x = %d, expected %d", tc.name, x, tc.wantX)
		}
	}

	if w.Place(3, 0, 0) {
		t.Error("Place with an invalid index should fail")
	}
}
