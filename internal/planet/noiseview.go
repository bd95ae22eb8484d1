package planet

import (
	"context"
	"math"

	"planetgen/internal/core"
)

// GrayLevels is the number of distinct values a NoiseView cell can hold.
// Level 0 is reserved for excluded cells.
const GrayLevels = 256

// NoiseView exposes the noise field of a planet instead of its terrain map.
// Cells hold gray levels 1..255; excluded cells hold 0.
type NoiseView struct {
	*Planet
	levels []uint8
}

// NewNoiseView wraps p.
func NewNoiseView(p *Planet) *NoiseView {
	return &NoiseView{Planet: p}
}

// Grayscale marks the view for renderers.
func (v *NoiseView) Grayscale() bool { return true }

// Generate regenerates the planet and quantises its noise field.
func (v *NoiseView) Generate(ctx context.Context) error {
	if err := v.Planet.Generate(ctx); err != nil {
		return err
	}
	v.levels = Quantize(v.Result().Noise, v.levels)
	return nil
}

// Cells exposes the quantised noise field.
func (v *NoiseView) Cells() []uint8 { return v.levels }

// Quantize maps field values in [0, 1] to levels 1..255. Negative values,
// including the exclusion sentinel, map to 0. dst is reused when large enough.
func Quantize(field *core.FloatGrid, dst []uint8) []uint8 {
	values := field.Values()
	if cap(dst) < len(values) {
		dst = make([]uint8, len(values))
	}
	dst = dst[:len(values)]
	for i, f := range values {
		if f < 0 || math.IsNaN(f) {
			dst[i] = 0
			continue
		}
		if f > 1 {
			f = 1
		}
		dst[i] = uint8(1 + math.Round(f*(GrayLevels-2)))
	}
	return dst
}
