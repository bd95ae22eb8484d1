package app

import (
	"flag"
	"fmt"
	"strconv"

	"planetgen/internal/core"
	"planetgen/internal/planet"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Preset     string
	ConfigPath string
	Seed       uint
	View       int
	Panel      int
	TPS        int
	Rate       int
	Workers    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Preset: "planet", View: 720, Panel: 260, TPS: 60, Rate: 4}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "preset to start from (planet, molten, noise)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "JSON planet config; overrides the preset")
	fs.UintVar(&c.Seed, "seed", c.Seed, "seed; 0 keeps the preset's seed and shape")
	fs.IntVar(&c.View, "view", c.View, "planet view size in pixels")
	fs.IntVar(&c.Panel, "panel", c.Panel, "control panel width in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "maximum regenerations per second")
	fs.IntVar(&c.Workers, "workers", c.Workers, "generation workers; 0 uses every CPU")
}

// Overrides returns the flag values that change a preset.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{}
	if c.Seed > 0 {
		out["seed"] = strconv.FormatUint(uint64(c.Seed), 10)
	}
	if c.Workers > 0 {
		out["workers"] = strconv.Itoa(c.Workers)
	}
	return out
}

// Generator builds the generator the flags describe. With a config file the
// preset only decides whether the noise view is shown.
func (c *Config) Generator() (core.Generator, error) {
	if c.ConfigPath == "" {
		factory, ok := core.Generators()[c.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (have %v)", c.Preset, core.Names())
		}
		return factory(c.Overrides()), nil
	}
	base, err := planet.LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	p := planet.NewWithConfig(c.Preset, planet.FromMap(base, c.Overrides()))
	if c.Preset == "noise" {
		return planet.NewNoiseView(p), nil
	}
	return p, nil
}
