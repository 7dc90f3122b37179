package config

import (
	"math"
	"sort"

	"github.com/san-kum/shmviz/internal/shm"
)

var Presets = map[string]shm.Params{
	"default": shm.DefaultParams(),
	"slow":    {Amplitude: 1, AngularFrequency: math.Pi, Phase: 0},
	"fast":    {Amplitude: 1, AngularFrequency: 6 * math.Pi, Phase: 0},
	"wide":    {Amplitude: 2, AngularFrequency: 2 * math.Pi, Phase: 0},
	"offset":  {Amplitude: 1, AngularFrequency: 2 * math.Pi, Phase: math.Pi / 2},
	"reverse": {Amplitude: -1, AngularFrequency: 2 * math.Pi, Phase: 0},
	"still":   {Amplitude: 1, AngularFrequency: 0, Phase: math.Pi / 2},
}

// GetPreset returns a default config carrying the named preset's params, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
