package planet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"

	"planetgen/internal/noise"
)

// Config is the complete input of a generation.
type Config struct {
	Seed        uint32        `json:"seed"`
	Shape       Shape         `json:"shape"`
	CaveDensity float64       `json:"cave_density"`
	Layers      []noise.Layer `json:"layers"`
	Descriptors []Descriptor  `json:"terrain"`
	Background  Color         `json:"background"`

	// Workers bounds per-pass goroutines; it never changes the output.
	Workers int `json:"workers,omitempty"`
}

// DefaultConfig returns the standard rocky planet.
func DefaultConfig() Config {
	return Config{
		Seed: 1,
		Shape: Shape{
			Radius:               150,
			Deformation:          40,
			DeformationFrequency: 3,
			Kind:                 noise.Perlin,
		},
		CaveDensity: 0.4,
		Layers: []noise.Layer{
			{Kind: noise.Perlin, Scale: 40, Op: noise.Replace},
			{Kind: noise.Simplex, Scale: 12, Op: noise.Mix},
		},
		Descriptors: []Descriptor{
			{Tag: TagGrass, DepthMin: 0, DepthMax: 0.04, TargetNoise: 0.6, Color: Color{R: 76, G: 175, B: 80, A: 255}},
			{Tag: TagGrass2, DepthMin: 0, DepthMax: 0.04, TargetNoise: 0.3, Color: Color{R: 46, G: 125, B: 50, A: 255}},
			{Tag: TagWater, DepthMin: 0.02, DepthMax: 0.3, TargetNoise: 0.02, Color: Color{R: 33, G: 150, B: 243, A: 255}},
			{Tag: TagDirt, DepthMin: 0.04, DepthMax: 0.15, TargetNoise: 0.5, Color: Color{R: 121, G: 85, B: 72, A: 255}},
			{Tag: TagRock, DepthMin: 0.15, DepthMax: 0.6, TargetNoise: 0.5, Color: Color{R: 117, G: 117, B: 117, A: 255}},
			{Tag: TagGold, DepthMin: 0.2, DepthMax: 0.7, TargetNoise: 0.95, Color: Color{R: 255, G: 193, B: 7, A: 255}},
			{Tag: TagMagmaRock, DepthMin: 0.6, DepthMax: 0.85, TargetNoise: 0.5, Color: Color{R: 78, G: 52, B: 46, A: 255}},
			{Tag: TagLava, DepthMin: 0.85, DepthMax: 1, TargetNoise: 0.5, Color: Color{R: 255, G: 87, B: 34, A: 255}},
		},
		Background: Color{R: 27, G: 27, B: 36, A: 255},
	}
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.Layers = slices.Clone(c.Layers)
	out.Descriptors = slices.Clone(c.Descriptors)
	return out
}

// WithSeed returns a copy whose seed and seed-driven parameters are derived
// from seed.
func (c Config) WithSeed(seed uint32) Config {
	out := c.Clone()
	out.Seed = ClampSeed(seed)
	deriveFromSeed(&out, out.Seed)
	return out
}

// Params extracts the classifier inputs.
func (c Config) Params() Params {
	return Params{
		Seed:        c.Seed,
		Shape:       c.Shape,
		CaveDensity: c.CaveDensity,
		Descriptors: c.Descriptors,
		Workers:     c.Workers,
	}
}

// Validate reports the first problem that would stop generation.
func (c Config) Validate() error {
	s := c.Shape
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: radius %g must be positive", ErrInvalidConfig, s.Radius)
	}
	if !(s.Deformation >= 0) || math.IsInf(s.Deformation, 0) {
		return fmt.Errorf("%w: deformation %g must not be negative", ErrInvalidConfig, s.Deformation)
	}
	if !(s.DeformationFrequency >= 0) || math.IsInf(s.DeformationFrequency, 0) {
		return fmt.Errorf("%w: deformation frequency %g must not be negative", ErrInvalidConfig, s.DeformationFrequency)
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown boundary noise %d", ErrInvalidConfig, uint8(s.Kind))
	}
	if size := s.MapSize(); size < 1 || size > MaxMapSize {
		return fmt.Errorf("%w: map size %d outside [1,%d]", ErrInvalidConfig, size, MaxMapSize)
	}
	if !(c.CaveDensity >= 0 && c.CaveDensity < 1) {
		return fmt.Errorf("%w: cave density %g outside [0,1)", ErrInvalidConfig, c.CaveDensity)
	}
	if err := noise.ValidateLayers(c.Layers); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Descriptors) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoCandidates)
	}
	for i, d := range c.Descriptors {
		if d.Tag >= TagCount {
			return fmt.Errorf("%w: descriptor %d has unknown tag %d", ErrInvalidConfig, i, uint8(d.Tag))
		}
		if d.DepthMin > d.DepthMax {
			return fmt.Errorf("%w: descriptor %d (%s) depth range [%g,%g] is inverted",
				ErrInvalidConfig, i, d.Tag, d.DepthMin, d.DepthMax)
		}
	}
	return nil
}

// FromMap applies flag-style overrides on top of base. A "seed" entry derives
// the shape parameters first; explicit shape entries then win over it.
// Malformed values are ignored.
func FromMap(base Config, cfg map[string]string) Config {
	c := base.Clone()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c = c.WithSeed(uint32(parsed))
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Shape.Radius = parsed
		}
	}
	if v, ok := cfg["deformation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Shape.Deformation = parsed
		}
	}
	if v, ok := cfg["deformation_freq"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Shape.DeformationFrequency = parsed
		}
	}
	if v, ok := cfg["cave_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.CaveDensity = parsed
		}
	}
	if v, ok := cfg["boundary_noise"]; ok {
		if parsed, err := noise.ParseKind(v); err == nil {
			c.Shape.Kind = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}

// LoadConfig reads a JSON config file over DefaultConfig. Fields missing from
// the file keep their defaults; a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
