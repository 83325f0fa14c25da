package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/platform/tui"
	"github.com/vovakirdan/dotsim/internal/registry"
	"github.com/vovakirdan/dotsim/internal/sim"
)

var (
	flagFrames  int
	flagHold    string
	flagVirtual bool
	flagDraw    bool
	flagSimCfg  string
)

var simCmd = &cobra.Command{
	Use:   "sim <scene>",
	Short: "Run a scene without a terminal UI",
	Long: `Run a scene for a fixed number of frames with scripted input and
report where the player ended up.

--hold presses the given directions on the first frame and keeps them held
for the whole run. With --virtual the loop paces itself on a simulated clock,
so the run finishes instantly while timing stats still match the frame rate.

Examples:
  dotsim sim wall --frames 40 --hold right
  dotsim sim circles --hold right,down --virtual --draw
  dotsim sim level --frames 1000 --uncapped --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 100, "Number of frames to run")
	simCmd.Flags().StringVar(&flagHold, "hold", "", "Directions held for the whole run (e.g. right,down)")
	simCmd.Flags().BoolVar(&flagVirtual, "virtual", false, "Pace on a simulated clock instead of sleeping")
	simCmd.Flags().BoolVar(&flagDraw, "draw", false, "Print the last frame as text")
	simCmd.Flags().StringVar(&flagSimCfg, "config", "", "Path to custom scene config YAML")
	simCmd.Flags().BoolVar(&flagUncapped, "uncapped", false, "Run without the frame rate cap")
}

// headlessRun describes a scripted run.
type headlessRun struct {
	Frames int
	Hold   []core.Direction
	Clock  core.Clock
	Logger *log.Logger
	Draw   bool
}

// headlessResult is what a scripted run produced.
type headlessResult struct {
	Stats   sim.RunStats
	X, Y    int
	Blocked int    // frames on which the player was stopped by something
	Screen  string // last frame as text, when drawing
}

// parseHold parses a comma-separated direction list.
func parseHold(s string) ([]core.Direction, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var dirs []core.Direction
	for _, part := range strings.Split(s, ",") {
		d, ok := core.ParseDirection(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", part)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// runHeadless builds the scene and runs its loop with scripted input.
func runHeadless(scene registry.Scene, rc core.RuntimeConfig, run headlessRun) (headlessResult, error) {
	if run.Frames < 1 {
		return headlessResult{}, fmt.Errorf("frames must be positive, got %d", run.Frames)
	}

	world, err := scene.Build(rc)
	if err != nil {
		return headlessResult{}, err
	}

	frame := 0
	input := sim.InputFunc(func() []core.InputEvent {
		frame++
		var events []core.InputEvent
		if frame == 1 {
			for _, d := range run.Hold {
				events = append(events, core.KeyDown(d))
			}
		}
		if frame >= run.Frames {
			events = append(events, core.InputEvent{Kind: core.InputQuit})
		}
		return events
	})

	var result headlessResult
	var screen *core.Screen
	if run.Draw {
		screen = core.NewScreen(rc.ScreenW, rc.ScreenH)
	}
	render := sim.RenderFunc(func(f sim.Frame) {
		if p := world.Player; p >= 0 && p < len(f.Moves) {
			m := f.Moves[p]
			if m.BlockedX || m.BlockedY {
				result.Blocked++
			}
		}
		if screen != nil && f.Number == run.Frames {
			tui.RenderFrame(screen, f)
			result.Screen = screen.String()
		}
	})

	loop := sim.NewLoop(world, input, render, sim.Options{
		FPS:      rc.TickRate,
		Uncapped: rc.Uncapped,
		Clock:    run.Clock,
		Logger:   run.Logger,
	})
	result.Stats = loop.Run()
	if p := world.PlayerBody(); p != nil {
		result.X, result.Y = p.Position()
	}
	return result, nil
}

func runSim(_ *cobra.Command, args []string) {
	scene, err := resolveScene(args[0], flagSimCfg)
	if err != nil {
		fail("%v", err)
	}
	hold, err := parseHold(flagHold)
	if err != nil {
		fail("%v", err)
	}

	logger, closer := newLogger(os.Stderr)
	defer closer.Close()

	var clock core.Clock
	if flagVirtual {
		clock = core.NewManualClock(time.Now())
	}

	rc := runtimeConfig()
	result, err := runHeadless(scene, rc, headlessRun{
		Frames: flagFrames,
		Hold:   hold,
		Clock:  clock,
		Logger: logger,
		Draw:   flagDraw,
	})
	if err != nil {
		fail("%v", err)
	}

	if result.Screen != "" {
		fmt.Println(result.Screen)
	}
	logger.Info("run finished",
		"scene", scene.ID(),
		"frames", result.Stats.Frames,
		"overruns", result.Stats.Overruns,
		"elapsed", result.Stats.Elapsed.Round(time.Millisecond),
		"x", result.X,
		"y", result.Y,
		"blocked", result.Blocked,
	)
}
