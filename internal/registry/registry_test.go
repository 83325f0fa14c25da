package registry

import (
	"testing"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/sim"
)

type stubScene struct{ id string }

func (s stubScene) ID() string    { return s.id }
func (s stubScene) Title() string { return "Stub " + s.id }
func (s stubScene) Build(rc core.RuntimeConfig) (*sim.World, error) {
	return sim.NewWorld(s.Title(), core.NewRect(0, 0, rc.ScreenW, rc.ScreenH), core.Step{X: 1, Y: 1}), nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Scene { return stubScene{id: "zz-stub"} })
	Register("aa-stub", func() Scene { return stubScene{id: "aa-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}
	if Exists("missing") {
		t.Error("Exists() = true for an unregistered scene")
	}

	s, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	w, err := s.Build(core.DefaultConfig())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if w.Bounds.W != 80 {
		t.Errorf("Bounds.W = %d, expected 80", w.Bounds.W)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for an unknown scene")
	}

	list := List()
	if len(list) < 2 || list[0].ID != "aa-stub" {
		t.Errorf("List() not sorted by ID: %v", list)
	}
	if list[0].Title != "Stub aa-stub" {
		t.Errorf("Title = %q", list[0].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Scene { return stubScene{id: "dup-stub"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("dup-stub", func() Scene { return stubScene{id: "dup-stub"} })
}
