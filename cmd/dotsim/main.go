// dotsim moves shapes around a bounded world in the terminal, one capped
// frame at a time.
//
// Usage:
//
//	dotsim list              - List available scenes
//	dotsim play <scene>      - Play a scene
//	dotsim menu              - Pick scenes interactively
//	dotsim sim <scene>       - Run a scene headless
//	dotsim saves             - Show saved positions and runs
//	dotsim config <scene>    - Print a scene's default config
//	dotsim serve             - Start SSH server for remote play
//
// Global flags override the DOTSIM_* environment:
//
//	--fps <rate>          - Frame rate cap (default: 20)
//	--db <path>           - Database path (default: ~/.dotsim/dotsim.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--key-release <dur>   - Synthesized key-up delay (default: 150ms)
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dotsim/internal/config"
	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/storage"

	// Register builtin scenes
	_ "github.com/vovakirdan/dotsim/internal/scenes"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagKeyRelease time.Duration

	// settings are the environment with explicit flags applied
	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotsim",
	Short: "dotsim - move shapes around a world in your terminal",
	Long: `dotsim runs small 2D scenes in the terminal: a player shape you steer
with the arrow keys, static obstacles and other bodies, all moved once per
frame under a frame rate cap.

Available commands:
  list     - Show all available scenes
  play     - Play a scene directly
  menu     - Interactive scene picker
  sim      - Run a scene without a terminal UI
  saves    - Show saved positions and recorded runs
  config   - Print a scene's default YAML
  serve    - Start SSH server for remote play

Examples:
  dotsim list
  dotsim play wall
  dotsim play level --fps 30
  dotsim sim circles --frames 200 --hold right --virtual
  dotsim serve --ssh :2222`,
	PersistentPreRunE: loadSettings,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 20, "Frame rate cap (frames per second, 0 = uncapped)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dotsim/dotsim.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().DurationVar(&flagKeyRelease, "key-release", 150*time.Millisecond, "Release a key this long after its last repeat")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings reads the environment, then applies the flags the user set.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	settings = applyFlags(cmd, s)
	return nil
}

// applyFlags overrides s with every flag explicitly set on cmd's command line.
func applyFlags(cmd *cobra.Command, s config.Settings) config.Settings {
	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.FPS = flagFPS
	}
	if flags.Changed("db") {
		s.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if flags.Changed("log-file") {
		s.LogFile = flagLogFile
	}
	if flags.Changed("key-release") {
		s.KeyRelease = flagKeyRelease
	}
	if flags.Changed("uncapped") {
		s.Uncapped = flagUncapped
	}
	return s
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger. Full-screen commands pass io.Discard
// so log lines never land on the terminal they draw on.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer) {
	logger, closer, err := settings.NewLogger("dotsim", fallback)
	if err != nil {
		fail("%v", err)
	}
	return logger, closer
}

// openStore opens the database, or returns nil so the caller runs without
// persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open database, continuing without saves", "path", settings.DBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes scenes to the terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = settings.FPS
	rc.Uncapped = settings.Uncapped
	return rc
}
