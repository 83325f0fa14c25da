package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/config"
)

// flagCommand mirrors the flags play and sim see: the root's persistent
// flags plus --uncapped.
func flagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	fps, db, level, file, release, uncapped := flagFPS, flagDBPath, flagLogLevel, flagLogFile, flagKeyRelease, flagUncapped
	t.Cleanup(func() {
		flagFPS, flagDBPath, flagLogLevel, flagLogFile, flagKeyRelease, flagUncapped = fps, db, level, file, release, uncapped
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&flagFPS, "fps", 20, "")
	cmd.Flags().StringVar(&flagDBPath, "db", "~/.dotsim/dotsim.db", "")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "")
	cmd.Flags().DurationVar(&flagKeyRelease, "key-release", 150*time.Millisecond, "")
	cmd.Flags().BoolVar(&flagUncapped, "uncapped", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return cmd
}

func TestApplyFlags(t *testing.T) {
	env := config.Settings{
		FPS:        30,
		DBPath:     "/tmp/env.db",
		LogLevel:   "warn",
		KeyRelease: 200 * time.Millisecond,
		Uncapped:   true,
	}

	tests := []struct {
		name string
		args []string
		want config.Settings
	}{
		{"no flags keep env", nil, env},
		{"explicit uncapped=false overrides env", []string{"--uncapped=false"}, config.Settings{
			FPS: 30, DBPath: "/tmp/env.db", LogLevel: "warn", KeyRelease: 200 * time.Millisecond, Uncapped: false,
		}},
		{"fps and key release", []string{"--fps", "60", "--key-release", "80ms"}, config.Settings{
			FPS: 60, DBPath: "/tmp/env.db", LogLevel: "warn", KeyRelease: 80 * time.Millisecond, Uncapped: true,
		}},
		{"flag equal to default still overrides", []string{"--fps", "20", "--log-level", "info"}, config.Settings{
			FPS: 20, DBPath: "/tmp/env.db", LogLevel: "info", KeyRelease: 200 * time.Millisecond, Uncapped: true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFlags(flagCommand(t, tt.args...), env)
			if got != tt.want {
				t.Errorf("applyFlags() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestApplyFlagsUncappedFromFlag(t *testing.T) {
	got := applyFlags(flagCommand(t, "--uncapped"), config.Settings{FPS: 20})
	if !got.Uncapped {
		t.Error("--uncapped should turn the cap off when the environment leaves it on")
	}
}
