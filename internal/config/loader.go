package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScene loads the configuration of a scene.
// Search order: customPath -> ~/.dotsim/scenes/<id>.yaml -> ./configs/scenes/<id>.yaml -> embedded default
func LoadScene(id, customPath string) (SceneConfig, error) {
	var cfg SceneConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validated(cfg, customPath)
	}

	filename := id + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, validated(cfg, userCfgPath)
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "scenes", filename)
	if data, err := os.ReadFile(localPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, validated(cfg, localPath)
		}
	}

	// Use embedded default YAML
	data := DefaultYAML(id)
	if data == nil {
		return cfg, fmt.Errorf("no configuration for scene %q", id)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse embedded config %s: %w", id, err)
	}
	return cfg, validated(cfg, "embedded "+id)
}

// validated wraps a validation failure with the config's origin.
func validated(cfg SceneConfig, origin string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", origin, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dotsim", "scenes", filename)
}
