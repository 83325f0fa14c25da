package config

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultScenes embed.FS

// DefaultYAML returns the embedded default YAML for a scene, or nil.
func DefaultYAML(id string) []byte {
	data, err := defaultScenes.ReadFile(path.Join("defaults", id+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultSceneIDs lists the scenes that ship with an embedded config, sorted.
func DefaultSceneIDs() []string {
	entries, err := defaultScenes.ReadDir("defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}
