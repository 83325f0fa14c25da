package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/platform/tui"
	"github.com/vovakirdan/dotsim/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start dotsim with a scene picker menu",
	Long: `Start dotsim in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a scene.
When a run stops (Esc), you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play from the saved position
  N            - Play from the scene's start
  Tab          - Recorded runs
  Q            - Quit

Examples:
  dotsim menu
  dotsim menu --fps 30
  dotsim menu --db ./dotsim.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(io.Discard)
	defer closer.Close()

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			goBack, runsErr := tui.RunRunsBoard(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			return
		}

		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		result, err := tui.Run(scene, store, cfg, tui.PlayOptions{
			KeyRelease: settings.KeyRelease,
			Fresh:      menuResult.Fresh,
			Logger:     logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
			continue
		}
		if !result.BackToMenu {
			printSummary(scene.Title(), result)
			return
		}
	}
}
