package planet

import (
	"planetgen/internal/core"
	"planetgen/internal/noise"
)

// MoltenConfig returns a young planet: thin crust, wide magma layers and a
// cellular boundary.
func MoltenConfig() Config {
	cfg := DefaultConfig()
	cfg.Shape.Radius = 120
	cfg.Shape.Deformation = 25
	cfg.Shape.DeformationFrequency = 6
	cfg.Shape.Kind = noise.Cellular
	cfg.CaveDensity = 0.3
	cfg.Layers = []noise.Layer{
		{Kind: noise.Cellular, Scale: 30, Op: noise.Replace},
		{Kind: noise.Perlin, Scale: 15, Op: noise.Multiply},
		{Kind: noise.Simplex, Scale: 60, Op: noise.Union},
	}
	cfg.Descriptors = []Descriptor{
		{Tag: TagRock, DepthMin: 0, DepthMax: 0.2, TargetNoise: 0.5, Color: Color{R: 66, G: 66, B: 66, A: 255}},
		{Tag: TagMagmaRock, DepthMin: 0.1, DepthMax: 0.5, TargetNoise: 0.4, Color: Color{R: 93, G: 64, B: 55, A: 255}},
		{Tag: TagGold, DepthMin: 0.2, DepthMax: 0.5, TargetNoise: 0.95, Color: Color{R: 255, G: 193, B: 7, A: 255}},
		{Tag: TagLava, DepthMin: 0.4, DepthMax: 1, TargetNoise: 0.6, Color: Color{R: 255, G: 87, B: 34, A: 255}},
	}
	cfg.Background = Color{R: 40, G: 10, B: 5, A: 255}
	return cfg
}

// Presets maps preset names to their base configuration.
var Presets = map[string]func() Config{
	"planet": DefaultConfig,
	"molten": MoltenConfig,
	"noise":  DefaultConfig,
}

// FromPreset builds a configuration from a named preset with overrides. Unknown
// names fall back to the default planet.
func FromPreset(name string, overrides map[string]string) Config {
	base, ok := Presets[name]
	if !ok {
		base = DefaultConfig
	}
	return FromMap(base(), overrides)
}

func init() {
	core.Register("planet", func(cfg map[string]string) core.Generator {
		return NewWithConfig("planet", FromPreset("planet", cfg))
	})
	core.Register("molten", func(cfg map[string]string) core.Generator {
		return NewWithConfig("molten", FromPreset("molten", cfg))
	})
	core.Register("noise", func(cfg map[string]string) core.Generator {
		return NewNoiseView(NewWithConfig("noise", FromPreset("noise", cfg)))
	})
}
