package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dotsim SSH server",
	Long: `Start an SSH server that lets users connect and run scenes remotely.

Each SSH connection gets its own session with a scene picker and its own
loop. Saved positions and recorded runs live in the server's database and
are shared by everyone who connects.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dotsim/host_key

Examples:
  dotsim serve                           # Listen on :23234 with auto-generated key
  dotsim serve --ssh :2222               # Listen on port 2222
  dotsim serve --host-key ./my_host_key  # Use specific host key
  dotsim serve --db ./dotsim.db --fps 30

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(os.Stderr)
	defer closer.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      settings.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		FPS:         settings.FPS,
		KeyRelease:  settings.KeyRelease,
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("dotsim-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting dotsim SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
