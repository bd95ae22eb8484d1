package planet

import pcore "planetgen/pkg/core"

// Range is a closed physical interval a normalised ratio maps onto.
type Range struct {
	Min float64
	Max float64
}

// Magnitude returns the width of the range.
func (r Range) Magnitude() float64 { return r.Max - r.Min }

// Ratio maps v into the range's [0, 1] ratio space. Values outside the
// range map outside [0, 1].
func (r Range) Ratio(v float64) float64 { return (v - r.Min) / r.Magnitude() }

// Value maps a ratio back to the physical value. Ratios outside [0, 1]
// extrapolate.
func (r Range) Value(ratio float64) float64 { return ratio*r.Magnitude() + r.Min }

// Random draws a value in [Min, Max) from rng.
func (r Range) Random(rng *pcore.RNG) float64 { return rng.Float(r.Min, r.Max) }

// Physical ranges behind the UI ratios; also the bounds for seed-derived
// parameters.
var (
	RadiusRange               = Range{Min: 100, Max: 250}
	DeformationRange          = Range{Min: 0, Max: 100}
	DeformationFrequencyRange = Range{Min: 0, Max: 8}
	CaveDensityRange          = Range{Min: 0.25, Max: 0.6}
)

// MaxSeed bounds seeds drawn by SetRandomSeed.
const MaxSeed = 999999

// MaxMapSize caps the side of a generated map. Every ratio in [0, 1] stays
// well below it.
const MaxMapSize = 4096

// ClampSeed raises seeds below 1 to 1.
func ClampSeed(seed uint32) uint32 {
	if seed < 1 {
		return 1
	}
	return seed
}

// deriveFromSeed overwrites the four seed-driven parameters. The draw order is
// part of the seed format: reordering it changes every existing seed.
func deriveFromSeed(cfg *Config, seed uint32) {
	rng := pcore.NewRNG(seed)
	cfg.Shape.Radius = RadiusRange.Random(rng)
	cfg.Shape.Deformation = DeformationRange.Random(rng)
	cfg.Shape.DeformationFrequency = DeformationFrequencyRange.Random(rng)
	cfg.CaveDensity = CaveDensityRange.Random(rng)
}
