package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Settings are the runtime knobs shared by every command. They are read from
// DOTSIM_* environment variables; command-line flags override them.
type Settings struct {
	FPS        int           `env:"DOTSIM_FPS" envDefault:"20"`
	DBPath     string        `env:"DOTSIM_DB" envDefault:"~/.dotsim/dotsim.db"`
	LogLevel   string        `env:"DOTSIM_LOG_LEVEL" envDefault:"info"`
	LogFile    string        `env:"DOTSIM_LOG_FILE"`
	KeyRelease time.Duration `env:"DOTSIM_KEY_RELEASE" envDefault:"150ms"` // synthesized key-up delay
	Uncapped   bool          `env:"DOTSIM_UNCAPPED"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// NewLogger builds a logger at the configured level. Output goes to the log
// file when one is set, otherwise to fallback. The returned closer must be
// closed when logging is done.
func (s Settings) NewLogger(prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}

	var (
		w      = fallback
		closer io.Closer = io.NopCloser(nil)
	)
	if s.LogFile != "" {
		path, err := ExpandHome(s.LogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
