// Package scenes registers the builtin scenes. Most are backed by YAML
// configs; arena is laid out in code from the terminal size.
package scenes

import (
	"fmt"

	"github.com/vovakirdan/dotsim/internal/config"
	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/registry"
	"github.com/vovakirdan/dotsim/internal/sim"
)

func init() {
	for _, id := range config.DefaultSceneIDs() {
		registry.Register(id, func() registry.Scene { return New(id, "") })
	}
	registry.Register(ArenaID, func() registry.Scene { return Arena{} })
}

// ConfigScene builds its world from a SceneConfig.
type ConfigScene struct {
	id   string
	path string
}

// New returns a scene that loads its config for id, from path when given.
func New(id, path string) *ConfigScene {
	return &ConfigScene{id: id, path: path}
}

// ID returns the scene identifier.
func (s *ConfigScene) ID() string { return s.id }

// Title returns the configured title, or the ID when the config cannot be read.
func (s *ConfigScene) Title() string {
	cfg, err := config.LoadScene(s.id, s.path)
	if err != nil || cfg.Title == "" {
		return s.id
	}
	return cfg.Title
}

// Build loads the config and creates the world.
func (s *ConfigScene) Build(core.RuntimeConfig) (*sim.World, error) {
	cfg, err := config.LoadScene(s.id, s.path)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.id, err)
	}
	return FromConfig(cfg), nil
}

// FromConfig creates a world from a validated config.
func FromConfig(cfg config.SceneConfig) *sim.World {
	w := sim.NewWorld(cfg.Title, cfg.WorldBounds(), cfg.Step)
	w.AddPlayer(body(cfg.Player, "player"))
	for i, b := range cfg.Bodies {
		w.AddBody(body(b, fmt.Sprintf("body%d", i+1)))
	}
	for _, o := range cfg.Obstacles {
		w.AddObstacle(o.Build(o.X, o.Y))
	}
	return w
}

func body(bc config.BodyConfig, fallback string) *sim.Body {
	name := bc.Name
	if name == "" {
		name = fallback
	}
	b := sim.NewBody(name, bc.Shape.Build(0, 0), bc.X, bc.Y)
	b.SetVelocity(bc.VX, bc.VY)
	return b
}
