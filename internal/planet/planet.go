package planet

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"planetgen/internal/core"
	"planetgen/internal/noise"
)

// Result is the output of one successful generation. Noise and Map always
// share Size.
type Result struct {
	Size  core.Size
	Noise *core.FloatGrid
	Map   *core.ByteGrid
}

// Generate runs a full generation for cfg. It either returns a complete result
// or an error; partial grids are never returned.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := cfg.Shape.MapSize()
	field, err := noise.Build(ctx, cfg.Seed, size, cfg.Layers, noise.Options{Workers: cfg.Workers})
	if err != nil {
		return nil, fmt.Errorf("noise field: %w", err)
	}
	tags, err := Classify(ctx, cfg.Params(), field)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return &Result{Size: core.Size{W: size, H: size}, Noise: field, Map: tags}, nil
}

// Planet holds a configuration and the last map generated from it. Setters
// only change the configuration; callers decide when to call Generate.
// A Planet is not safe for concurrent use.
type Planet struct {
	name   string
	cfg    Config
	result *Result
}

// New creates a planet from the default configuration with overrides applied.
func New(overrides map[string]string) *Planet {
	return NewWithConfig("planet", FromMap(DefaultConfig(), overrides))
}

// NewWithConfig creates a named planet from cfg. The config is copied.
func NewWithConfig(name string, cfg Config) *Planet {
	cfg = cfg.Clone()
	cfg.Seed = ClampSeed(cfg.Seed)
	return &Planet{name: name, cfg: cfg}
}

// Name identifies the preset the planet was built from.
func (p *Planet) Name() string { return p.name }

// Config returns a copy of the current configuration.
func (p *Planet) Config() Config { return p.cfg.Clone() }

// SetConfig replaces the configuration. The previous result is kept until the
// next successful Generate.
func (p *Planet) SetConfig(cfg Config) {
	cfg = cfg.Clone()
	cfg.Seed = ClampSeed(cfg.Seed)
	p.cfg = cfg
}

// Seed returns the current seed.
func (p *Planet) Seed() uint32 { return p.cfg.Seed }

// SetSeed stores seed (raised to at least 1) and re-derives radius,
// deformation, deformation frequency and cave density from it, overwriting
// any ratio set before.
func (p *Planet) SetSeed(seed uint32) {
	p.cfg = p.cfg.WithSeed(seed)
}

// SetRandomSeed picks a seed in [1, MaxSeed] and applies it with SetSeed.
func (p *Planet) SetRandomSeed() {
	p.SetSeed(uint32(rand.IntN(MaxSeed)) + 1)
}

// Generate regenerates the map from the current configuration. On failure the
// previous result stays in place.
func (p *Planet) Generate(ctx context.Context) error {
	res, err := Generate(ctx, p.cfg)
	if err != nil {
		return err
	}
	p.result = res
	return nil
}

// Result returns the last successful generation, or nil.
func (p *Planet) Result() *Result { return p.result }

// Size reports the dimensions of the last generated map, or the size the
// current shape would produce if nothing was generated yet.
func (p *Planet) Size() core.Size {
	if p.result != nil {
		return p.result.Size
	}
	n := p.cfg.Shape.MapSize()
	return core.Size{W: n, H: n}
}

// Cells exposes the tag grid of the last generation.
func (p *Planet) Cells() []uint8 {
	if p.result == nil {
		return nil
	}
	return p.result.Map.Cells()
}

// Descriptors returns the terrain candidates in configuration order.
func (p *Planet) Descriptors() []Descriptor { return slices.Clone(p.cfg.Descriptors) }

// Background returns the cave colour.
func (p *Planet) Background() Color { return p.cfg.Background }

// RadiusRatio reports the radius as a ratio of RadiusRange.
func (p *Planet) RadiusRatio() float64 { return RadiusRange.Ratio(p.cfg.Shape.Radius) }

// SetRadiusRatio sets the radius from a ratio of RadiusRange.
func (p *Planet) SetRadiusRatio(r float64) { p.cfg.Shape.Radius = RadiusRange.Value(r) }

func (p *Planet) DeformationRatio() float64 {
	return DeformationRange.Ratio(p.cfg.Shape.Deformation)
}

func (p *Planet) SetDeformationRatio(r float64) {
	p.cfg.Shape.Deformation = DeformationRange.Value(r)
}

func (p *Planet) DeformationFrequencyRatio() float64 {
	return DeformationFrequencyRange.Ratio(p.cfg.Shape.DeformationFrequency)
}

func (p *Planet) SetDeformationFrequencyRatio(r float64) {
	p.cfg.Shape.DeformationFrequency = DeformationFrequencyRange.Value(r)
}

func (p *Planet) CaveDensityRatio() float64 { return CaveDensityRange.Ratio(p.cfg.CaveDensity) }

func (p *Planet) SetCaveDensityRatio(r float64) { p.cfg.CaveDensity = CaveDensityRange.Value(r) }

// Ratio parameter keys shared by the HUD, the websocket and the SSH preview.
const (
	KeyRadius               = "radius"
	KeyDeformation          = "deformation"
	KeyDeformationFrequency = "deformation_freq"
	KeyCaveDensity          = "cave_density"
	KeySeed                 = "seed"
)

// Ratio returns the ratio stored under key.
func (p *Planet) Ratio(key string) (float64, bool) {
	switch key {
	case KeyRadius:
		return p.RadiusRatio(), true
	case KeyDeformation:
		return p.DeformationRatio(), true
	case KeyDeformationFrequency:
		return p.DeformationFrequencyRatio(), true
	case KeyCaveDensity:
		return p.CaveDensityRatio(), true
	}
	return 0, false
}

// SetRatio updates the parameter stored under key from a ratio.
func (p *Planet) SetRatio(key string, r float64) bool {
	switch key {
	case KeyRadius:
		p.SetRadiusRatio(r)
	case KeyDeformation:
		p.SetDeformationRatio(r)
	case KeyDeformationFrequency:
		p.SetDeformationFrequencyRatio(r)
	case KeyCaveDensity:
		p.SetCaveDensityRatio(r)
	default:
		return false
	}
	return true
}

// RatioKeys lists the ratio parameters in display order.
func RatioKeys() []string {
	return []string{KeyRadius, KeyDeformation, KeyDeformationFrequency, KeyCaveDensity}
}

// Parameters reports ratios and the physical values behind them.
func (p *Planet) Parameters() core.ParameterSnapshot {
	c := p.cfg
	size := p.Size()
	layers := make([]core.Parameter, 0, len(c.Layers))
	for i, l := range c.Layers {
		layers = append(layers, stringParam("layer_"+strconv.Itoa(i), "Layer "+strconv.Itoa(i), l.String()))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Seed",
			Params: []core.Parameter{
				intParam(KeySeed, "Seed", int(c.Seed)),
			},
		},
		{
			Name: "Ratios",
			Params: []core.Parameter{
				floatParam(KeyRadius, "Radius", p.RadiusRatio()),
				floatParam(KeyDeformation, "Deformation", p.DeformationRatio()),
				floatParam(KeyDeformationFrequency, "Deformation freq", p.DeformationFrequencyRatio()),
				floatParam(KeyCaveDensity, "Cave density", p.CaveDensityRatio()),
			},
		},
		{
			Name:    "Shape",
			Summary: "physical values",
			Params: []core.Parameter{
				floatParam("radius_value", "Radius", c.Shape.Radius),
				floatParam("deformation_value", "Deformation", c.Shape.Deformation),
				floatParam("deformation_freq_value", "Deformation freq", c.Shape.DeformationFrequency),
				floatParam("cave_density_value", "Cave density", c.CaveDensity),
				stringParam("boundary_noise", "Boundary noise", c.Shape.Kind.String()),
				intParam("map_size", "Map size", size.W),
			},
		},
		{
			Name:   "Noise",
			Params: layers,
		},
	}}
}

// ParameterControls exposes the seed and the four ratios to the HUD.
func (p *Planet) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: KeySeed, Label: "Seed", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: MaxSeed, HasMin: true, HasMax: true},
	}
	labels := map[string]string{
		KeyRadius:               "Radius",
		KeyDeformation:          "Deformation",
		KeyDeformationFrequency: "Deformation freq",
		KeyCaveDensity:          "Cave density",
	}
	for _, key := range RatioKeys() {
		controls = append(controls, core.ParameterControl{
			Key:    key,
			Label:  labels[key],
			Type:   core.ParamTypeFloat,
			Step:   0.05,
			Min:    0,
			Max:    1,
			HasMin: true,
			HasMax: true,
		})
	}
	return controls
}

// SetFloatParameter sets one of the ratio parameters.
func (p *Planet) SetFloatParameter(key string, value float64) bool {
	return p.SetRatio(key, value)
}

// SetIntParameter handles the seed.
func (p *Planet) SetIntParameter(key string, value int) bool {
	if key != KeySeed {
		return false
	}
	if value < 1 {
		value = 1
	}
	p.SetSeed(uint32(value))
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
