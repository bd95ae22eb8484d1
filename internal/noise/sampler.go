package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// primitiveSeed fixes the permutation tables of the gradient-noise primitives.
// Sampling is a pure function of the point; seeds only move the view point.
const primitiveSeed = 0x5eed

// Single octave: layering is done by the field builder, not inside the primitive.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 1
)

var (
	perlinNoise  = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, primitiveSeed)
	simplexNoise = opensimplex.New(primitiveSeed)
)

// Sample evaluates the primitive named by kind at (x, y), normalised to [0, 1].
// The primitives only read their permutation tables, so Sample is safe for
// concurrent use. An unknown kind is a programming error and panics; layer
// validation rejects such kinds before sampling starts.
func Sample(kind Kind, x, y float64) float64 {
	switch kind {
	case Perlin:
		return clamp01((perlinNoise.Noise2D(x, y) + 1) / 2)
	case Cellular:
		return cellular(x, y)
	case Simplex:
		return clamp01((simplexNoise.Eval2(x, y) + 1) / 2)
	default:
		panic(fmt.Sprintf("noise: sample with unknown kind %d", uint8(kind)))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
