package planet

import (
	"context"
	"fmt"
	"math"

	"planetgen/internal/core"
	pcore "planetgen/pkg/core"
)

// caveDepthLimit keeps the core solid: caves only open above this depth.
const caveDepthLimit = 0.8

// Params holds everything the classifier reads. It is never modified.
type Params struct {
	Seed        uint32
	Shape       Shape
	CaveDensity float64
	Descriptors []Descriptor
	Workers     int
}

// Depth normalises the distance of a point below the surface: negative
// outside the planet, 0 on the boundary, 1 at the centre.
func Depth(surfaceDist, pointDist float64) (float64, error) {
	if surfaceDist == 0 || math.IsNaN(surfaceDist) || math.IsInf(surfaceDist, 0) || math.IsNaN(pointDist) {
		return 0, fmt.Errorf("%w: surface distance %g", ErrDegenerateGeometry, surfaceDist)
	}
	return (surfaceDist - pointDist) / surfaceDist, nil
}

// ClassifyCell picks the tag for one cell from its depth and raw noise value.
func ClassifyCell(depth, noise, caveDensity float64, descs []Descriptor) (Tag, error) {
	if depth < 0 {
		return TagEmpty, nil
	}
	if noise < caveDensity && depth < caveDepthLimit {
		return TagBackground, nil
	}
	if caveDensity >= 1 {
		return 0, fmt.Errorf("%w: cave density %g leaves no solid range", ErrInvalidConfig, caveDensity)
	}
	scaled := (noise - caveDensity) / (1 - caveDensity)
	return SelectBest(descs, depth, scaled)
}

// Classify tags every cell of field. Rows are classified in parallel; the
// first failing cell aborts the pass and no map is returned.
func Classify(ctx context.Context, p Params, field *core.FloatGrid) (*core.ByteGrid, error) {
	if len(p.Descriptors) == 0 {
		return nil, ErrNoCandidates
	}
	w, h := field.W, field.H
	out := core.NewByteGrid(w, h)
	cells := out.Cells()
	values := field.Values()

	cx := float64(w) / 2
	cy := float64(h) / 2
	vx, vy := pcore.ViewPoint(p.Seed)

	err := core.ParallelRows(ctx, h, p.Workers, func(y int) error {
		py := float64(y)
		for x := 0; x < w; x++ {
			px := float64(x)
			angle := Angle(cx, cy, px, py)
			surface := p.Shape.surfaceAt(vx, vy, angle)
			depth, err := Depth(surface, math.Hypot(px-cx, py-cy))
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			i := y*w + x
			tag, err := ClassifyCell(depth, values[i], p.CaveDensity, p.Descriptors)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			cells[i] = uint8(tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
