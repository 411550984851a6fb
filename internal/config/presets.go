package config

import (
	"slices"

	"github.com/san-kum/halokit/internal/kernel"
)

var Presets = map[string]kernel.Params{
	"planck18": {
		OmegaC: 0.2607, OmegaB: 0.04897, H: 0.6766, NS: 0.9665, Sigma8: 0.8102,
		W0: -1, TCMB: 2.7255,
	},
	"wmap9": {
		OmegaC: 0.2350, OmegaB: 0.0463, H: 0.693, NS: 0.971, Sigma8: 0.82,
		W0: -1, TCMB: 2.725,
	},
	"eds": {
		OmegaC: 0.95, OmegaB: 0.05, H: 0.7, NS: 1.0, Sigma8: 0.8,
		W0: -1, TCMB: 2.7255,
	},
}

// GetPreset returns the default configuration with the named cosmology,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Cosmology = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
