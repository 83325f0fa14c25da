package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/platform/tui"
	"github.com/vovakirdan/dotsim/internal/registry"
	"github.com/vovakirdan/dotsim/internal/scenes"
)

var (
	flagConfig   string
	flagUncapped bool
	flagFresh    bool
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Start playing the specified scene.

The player moves while a direction key is held. Terminals only report key
presses, so a key counts as released once it has not repeated for the
--key-release window.

Controls:
  Arrows/WASD/HJKL  - Move
  P/Space           - Pause
  F                 - Toggle frame rate cap
  Ctrl+S            - Save a text screenshot
  Esc/B             - Stop
  Q/Ctrl+C          - Quit

The player's last position is saved per scene and restored next time,
unless --fresh is given.

Examples:
  dotsim play wall
  dotsim play circles --fps 60
  dotsim play level --uncapped
  dotsim play wall --fresh
  dotsim play wall --config ./my-wall.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	playCmd.Flags().BoolVar(&flagUncapped, "uncapped", false, "Start with the frame rate cap off")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore the saved position")
}

// resolveScene returns the registered scene, or a config scene when a custom
// path is given.
func resolveScene(id, path string) (registry.Scene, error) {
	if path != "" {
		return scenes.New(id, path), nil
	}
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return registry.Create(id)
}

func runPlay(_ *cobra.Command, args []string) {
	scene, err := resolveScene(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'dotsim list' to see available scenes.")
		os.Exit(1)
	}

	logger, closer := newLogger(io.Discard)
	defer closer.Close()

	store := openStore(logger)
	result, runErr := tui.Run(scene, store, runtimeConfig(), tui.PlayOptions{
		KeyRelease: settings.KeyRelease,
		Fresh:      flagFresh,
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running scene: %v", runErr)
	}
	printSummary(scene.Title(), result)
}

// printSummary prints a one-line report of a finished run.
func printSummary(title string, r tui.PlayResult) {
	if r.Stats.Frames == 0 {
		return
	}
	fps := 0.0
	if secs := r.Stats.Elapsed.Seconds(); secs > 0 {
		fps = float64(r.Stats.Frames) / secs
	}
	fmt.Printf("%s: %d frames in %.1fs (%.1f fps, %d late), player at %d,%d\n",
		title, r.Stats.Frames, r.Stats.Elapsed.Seconds(), fps, r.Stats.Overruns, r.X, r.Y)
}
