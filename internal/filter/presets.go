package filter

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named, reusable selection. A preset may extend another
// preset; its tags are then added to those of the base.
type Preset struct {
	Selection `yaml:",inline"`

	// Description is shown next to the preset name.
	Description string `yaml:"description,omitempty"`
	// Extends names the preset these tags are added to.
	Extends string `yaml:"extends,omitempty"`
}

// PresetNames returns the sorted preset names.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ResolvePreset returns the selection of the named preset, following
// Extends links.
func ResolvePreset(name string, presets map[string]Preset) (Selection, error) {
	return resolvePreset(name, presets, map[string]bool{})
}

func resolvePreset(name string, presets map[string]Preset, visiting map[string]bool) (Selection, error) {
	p, ok := presets[name]
	if !ok {
		return Selection{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames(presets))
	}

	if p.Extends == "" {
		return Selection{}.Merge(p.Selection), nil
	}

	if visiting[name] {
		return Selection{}, fmt.Errorf("preset %q is part of an extends cycle", name)
	}

	visiting[name] = true

	base, err := resolvePreset(p.Extends, presets, visiting)
	if err != nil {
		return Selection{}, fmt.Errorf("preset %q: %w", name, err)
	}

	return base.Merge(p.Selection), nil
}

// LoadPresets reads preset definitions from a YAML file with a top-level
// "presets" key.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	return ParsePresets(data)
}

// ParsePresets parses preset definitions from YAML bytes. Other top-level
// keys are ignored, so a config file can be passed as is.
func ParsePresets(data []byte) (map[string]Preset, error) {
	var raw struct {
		Presets map[string]Preset `yaml:"presets"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	if raw.Presets == nil {
		return map[string]Preset{}, nil
	}

	return raw.Presets, nil
}
