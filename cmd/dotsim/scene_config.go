package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <scene>",
	Short: "Print a scene's default config",
	Long: `Print the built-in YAML of a scene. Save it to ~/.dotsim/scenes/<scene>.yaml
to override the scene, or pass the file to 'dotsim play --config'.

Examples:
  dotsim config wall
  dotsim config circles > ~/.dotsim/scenes/circles.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	data := config.DefaultYAML(args[0])
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no built-in config for %q\n", args[0])
		fmt.Fprintf(os.Stderr, "Scenes with configs: %s\n", strings.Join(config.DefaultSceneIDs(), ", "))
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
