package noise

import (
	"context"
	"errors"
	"fmt"
	"math"

	"planetgen/internal/core"
	pcore "planetgen/pkg/core"
)

// Excluded marks a field cell that later layers must leave untouched.
const Excluded = -1.0

// ErrInvalidLayer reports a layer list the builder cannot apply.
var ErrInvalidLayer = errors.New("noise: invalid layer")

// Options tune a Build call without affecting its output.
type Options struct {
	// Prior seeds the field instead of zeros. It is copied, never modified,
	// and must be mapSize x mapSize.
	Prior *core.FloatGrid
	// Workers bounds the goroutines used per layer pass; <= 0 uses GOMAXPROCS.
	Workers int
}

// ValidateLayers checks every layer before any sampling happens.
func ValidateLayers(layers []Layer) error {
	if len(layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidLayer)
	}
	for i, l := range layers {
		if !l.Kind.Valid() {
			return fmt.Errorf("%w: layer %d has unknown kind %d", ErrInvalidLayer, i, uint8(l.Kind))
		}
		if !l.Op.Valid() {
			return fmt.Errorf("%w: layer %d has unknown merge op %d", ErrInvalidLayer, i, uint8(l.Op))
		}
		if !(l.Scale > 0) || math.IsInf(l.Scale, 0) {
			return fmt.Errorf("%w: layer %d scale %g must be positive", ErrInvalidLayer, i, l.Scale)
		}
	}
	return nil
}

// Build applies layers in order to a fresh mapSize x mapSize field. Cells of
// one layer are computed in parallel; layer i+1 starts only after layer i
// finished. ctx is checked between layers and a cancelled build returns no
// field.
func Build(ctx context.Context, seed uint32, mapSize int, layers []Layer, opts Options) (*core.FloatGrid, error) {
	if mapSize < 1 {
		return nil, fmt.Errorf("%w: map size %d", ErrInvalidLayer, mapSize)
	}
	if err := ValidateLayers(layers); err != nil {
		return nil, err
	}

	var field *core.FloatGrid
	if opts.Prior != nil {
		if opts.Prior.W != mapSize || opts.Prior.H != mapSize {
			return nil, fmt.Errorf("%w: prior field is %dx%d, want %dx%d",
				ErrInvalidLayer, opts.Prior.W, opts.Prior.H, mapSize, mapSize)
		}
		field = opts.Prior.Clone()
	} else {
		field = core.NewFloatGrid(mapSize, mapSize)
	}

	vx, vy := pcore.ViewPoint(seed)
	offset := float64(-(mapSize / 2))

	for _, layer := range layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := applyLayer(ctx, field, layer, vx, vy, offset, opts.Workers); err != nil {
			return nil, err
		}
	}
	return field, nil
}

func applyLayer(ctx context.Context, field *core.FloatGrid, layer Layer, vx, vy, offset float64, workers int) error {
	values := field.Values()
	w := field.W
	ox := vx + offset/layer.Scale
	oy := vy + offset/layer.Scale
	return core.ParallelRows(ctx, field.H, workers, func(y int) error {
		sy := oy + float64(y)/layer.Scale
		row := values[y*w : (y+1)*w]
		for x, prev := range row {
			if prev == Excluded {
				continue
			}
			sx := ox + float64(x)/layer.Scale
			row[x] = Merge(layer.Op, prev, Sample(layer.Kind, sx, sy))
		}
		return nil
	})
}
