package scenes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/dotsim/internal/config"
	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/registry"
)

func TestBuiltinScenesRegistered(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, id := range []string{"wall", "silhouette", "circles", "level", ArenaID} {
		if !registry.Exists(id) {
			t.Errorf("scene %q not registered", id)
			continue
		}
		s, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		w, err := s.Build(core.DefaultConfig())
		if err != nil {
			t.Fatalf("Build(%q) failed: %v", id, err)
		}
		if w.PlayerBody() == nil {
			t.Errorf("scene %q has no player", id)
		}
		for _, b := range w.Bodies {
			if !w.Bounds.Encloses(b.Bounds()) {
				t.Errorf("scene %q: body %s starts outside bounds", id, b.Name())
			}
		}
	}
}

func TestWallSceneLayout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	w, err := New("wall", "").Build(core.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if w.Title != "Wall" || w.Bounds != core.NewRect(0, 0, 80, 24) {
		t.Errorf("world = %q %+v", w.Title, w.Bounds)
	}
	if len(w.Obstacles) != 1 {
		t.Fatalf("len(Obstacles) = %d, expected 1", len(w.Obstacles))
	}
	if w.Step != (core.Step{X: 2, Y: 1}) {
		t.Errorf("Step = %+v", w.Step)
	}

	// Walking right stops flush against the wall at x=40
	p := w.PlayerBody()
	p.SetVelocity(2, 0)
	for i := 0; i < 30; i++ {
		w.Advance()
	}
	if x, _ := p.Position(); x != 36 {
		t.Errorf("x = %d, expected 36 (flush with the wall)", x)
	}
}

func TestCirclesSceneBodies(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	w, err := New("circles", "").Build(core.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Bodies) != 2 {
		t.Fatalf("len(Bodies) = %d, expected 2", len(w.Bodies))
	}
	drifter := w.Bodies[1]
	if _, vy := drifter.Velocity(); vy != 1 {
		t.Errorf("drifter vy = %d, expected 1", vy)
	}
	if _, ok := drifter.Shape().(core.Circle); !ok {
		t.Errorf("drifter shape is %T, expected core.Circle", drifter.Shape())
	}
}

func TestSceneFromCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	data := []byte(`
title: Mine
bounds: {w: 20, h: 10}
step: {x: 1, y: 1}
player:
  x: 3
  y: 4
  shape: {kind: rect, w: 2, h: 2}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s := New("wall", path)
	if s.Title() != "Mine" {
		t.Errorf("Title() = %q, expected Mine", s.Title())
	}
	w, err := s.Build(core.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p := w.PlayerBody()
	if p.Name() != "player" {
		t.Errorf("unnamed player got name %q", p.Name())
	}
	if x, y := p.Position(); x != 3 || y != 4 {
		t.Errorf("Position() = (%d, %d), expected (3, 4)", x, y)
	}

	if _, err := New("wall", filepath.Join(t.TempDir(), "none.yaml")).Build(core.DefaultConfig()); err == nil {
		t.Error("Build should fail for a missing config file")
	}
}

func TestSceneRejectsPlayerInsideObstacle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stuck.yaml")
	data := []byte(`
title: Stuck
bounds: {w: 40, h: 20}
step: {x: 1, y: 1}
player:
  x: 10
  y: 10
  vx: 1
  vy: 1
  shape: {kind: rect, w: 4, h: 2}
obstacles:
  - {kind: rect, x: 8, y: 8, w: 10, h: 10}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New("stuck", path).Build(core.DefaultConfig())
	if !errors.Is(err, config.ErrOverlap) {
		t.Errorf("Build() error = %v, expected %v", err, config.ErrOverlap)
	}
}

func TestArenaFollowsScreenSize(t *testing.T) {
	w, err := Arena{}.Build(core.RuntimeConfig{ScreenW: 100, ScreenH: 31})
	if err != nil {
		t.Fatal(err)
	}
	if w.Bounds != core.NewRect(0, 0, 100, 30) {
		t.Errorf("Bounds = %+v, expected 100x30", w.Bounds)
	}
	if len(w.Obstacles) != 4 {
		t.Errorf("len(Obstacles) = %d, expected 4", len(w.Obstacles))
	}

	tiny, _ := Arena{}.Build(core.RuntimeConfig{ScreenW: 5, ScreenH: 3})
	if tiny.Bounds.W != arenaMinW || tiny.Bounds.H != arenaMinH {
		t.Errorf("tiny arena %+v not clamped to the minimum", tiny.Bounds)
	}
	if !tiny.Bounds.Encloses(tiny.PlayerBody().Bounds()) {
		t.Error("arena player starts outside bounds")
	}
}
