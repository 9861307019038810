package config

import (
	"fmt"
	"os"

	"github.com/hupe1980/guardbrowse/internal/filter"
)

// LoadPresets collects the named filter presets from the config file's
// presets section and from PresetsFile. A preset in PresetsFile replaces
// one of the same name from the config file.
func LoadPresets(cfg *Config) (map[string]filter.Preset, error) {
	presets := map[string]filter.Preset{}

	if cfg.ConfigFile != "" {
		data, err := os.ReadFile(cfg.ConfigFile) //nolint:gosec // path is user-provided config file
		if err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", cfg.ConfigFile, err)
		}

		fromConfig, err := filter.ParsePresets(data)
		if err != nil {
			return nil, fmt.Errorf("config file %q: %w", cfg.ConfigFile, err)
		}

		for name, p := range fromConfig {
			presets[name] = p
		}
	}

	if cfg.PresetsFile != "" {
		fromFile, err := filter.LoadPresets(cfg.PresetsFile)
		if err != nil {
			return nil, err
		}

		for name, p := range fromFile {
			presets[name] = p
		}
	}

	return presets, nil
}
