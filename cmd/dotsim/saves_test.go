package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/dotsim/internal/storage"
)

func TestPrintSavesAndClear(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	var out strings.Builder
	if err := printSaves(&out, store, "", 10); err != nil {
		t.Fatalf("printSaves() error = %v", err)
	}
	if strings.Count(out.String(), "none") != 2 {
		t.Errorf("empty store output:\n%s", out.String())
	}

	if err := store.SavePosition("wall", "player", 36, 10); err != nil {
		t.Fatalf("SavePosition() error = %v", err)
	}
	if _, err := store.RecordRun(storage.Run{SceneID: "wall", Frames: 40, Duration: 2 * time.Second, TargetFPS: 20}); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	out.Reset()
	if err := printSaves(&out, store, "", 10); err != nil {
		t.Fatalf("printSaves() error = %v", err)
	}
	for _, want := range []string{"wall", "player", "36,10", "40", "2.0s", "20.0"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := clearScene(store, "wall"); err != nil {
		t.Fatalf("clearScene() error = %v", err)
	}
	if _, found, _ := store.LoadPosition("wall"); found {
		t.Error("position still saved after clear")
	}
	runs, err := store.RecentRuns("wall", 10)
	if err != nil || len(runs) != 0 {
		t.Errorf("runs after clear = (%v, %v), expected none", runs, err)
	}
}
