package noise

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"planetgen/internal/core"
	pcore "planetgen/pkg/core"
)

func TestMergeBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		a := rng.Float64()
		b := rng.Float64()
		lo, hi := math.Min(a, b), math.Max(a, b)

		if got := Merge(Intersect, a, b); got > lo {
			t.Fatalf("intersect(%f,%f)=%f exceeds min", a, b, got)
		}
		if got := Merge(Union, a, b); got < hi {
			t.Fatalf("union(%f,%f)=%f below max", a, b, got)
		}
		if got := Merge(Multiply, a, b); got < 0 || got > 1 {
			t.Fatalf("multiply(%f,%f)=%f outside [0,1]", a, b, got)
		}
		if got := Merge(Mix, a, b); got < 0 || got > 1 {
			t.Fatalf("mix(%f,%f)=%f outside [0,1]", a, b, got)
		}
		if got := Merge(Replace, a, b); got != b {
			t.Fatalf("replace(%f,%f)=%f, want new sample", a, b, got)
		}
	}
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"perlin", Perlin, true},
		{"cellular", Cellular, true},
		{"simplex", Simplex, true},
		{"value", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseKind(%q) err=%v", tt.in, err)
			}
			if tt.ok && got != tt.kind {
				t.Fatalf("ParseKind(%q)=%v, want %v", tt.in, got, tt.kind)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidLayer) {
				t.Fatalf("expected ErrInvalidLayer, got %v", err)
			}
		})
	}

	for name, want := range map[string]MergeOp{"mult": Multiply, "none": Replace, "mix": Mix, "union": Union} {
		got, err := ParseMergeOp(name)
		if err != nil || got != want {
			t.Fatalf("ParseMergeOp(%q)=%v,%v want %v", name, got, err, want)
		}
	}
}

func TestSampleRangeAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for _, kind := range []Kind{Perlin, Cellular, Simplex} {
		for i := 0; i < 500; i++ {
			x := rng.Float64() * 999999
			y := rng.Float64() * 999999
			v := Sample(kind, x, y)
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("%v sample at (%f,%f)=%f outside [0,1]", kind, x, y, v)
			}
			if again := Sample(kind, x, y); again != v {
				t.Fatalf("%v sample not deterministic: %f vs %f", kind, v, again)
			}
		}
	}
}

func TestSampleUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown kind")
		}
	}()
	Sample(Kind(99), 0, 0)
}

func TestCellularIsZeroAtFeaturePoint(t *testing.T) {
	h := hash2(primitiveSeed, 12, -4)
	px := 12 + unitFloat(h)
	py := -4 + unitFloat(hash32(h))
	if got := cellular(px, py); got > 1e-9 {
		t.Fatalf("expected zero distance at feature point, got %f", got)
	}
}

func TestBuildDeterministicAcrossWorkerCounts(t *testing.T) {
	layers := []Layer{
		{Kind: Perlin, Scale: 10, Op: Replace},
		{Kind: Simplex, Scale: 4, Op: Mix},
		{Kind: Cellular, Scale: 6, Op: Union},
	}
	a, err := Build(context.Background(), 17, 33, layers, Options{Workers: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := Build(context.Background(), 17, 33, layers, Options{Workers: 8})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !slices.Equal(a.Values(), b.Values()) {
		t.Fatal("field differs between worker counts")
	}
	c, err := Build(context.Background(), 18, 33, layers, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if slices.Equal(a.Values(), c.Values()) {
		t.Fatal("different seeds should move the view point")
	}
	for i, v := range a.Values() {
		if v < 0 || v > 1 {
			t.Fatalf("cell %d = %f outside [0,1]", i, v)
		}
	}
}

func TestBuildReplaceMatchesSample(t *testing.T) {
	const size = 6
	const scale = 3.0
	field, err := Build(context.Background(), 5, size, []Layer{{Kind: Simplex, Scale: scale, Op: Replace}}, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vx, vy := pcore.ViewPoint(5)
	offset := float64(-(size / 2))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			want := Sample(Simplex, vx+offset/scale+float64(x)/scale, vy+offset/scale+float64(y)/scale)
			if got := field.At(x, y); math.Abs(got-want) > 1e-12 {
				t.Fatalf("cell (%d,%d)=%f, want %f", x, y, got, want)
			}
		}
	}
}

func TestBuildSkipsExcludedCells(t *testing.T) {
	prior := core.NewFloatGrid(5, 5)
	prior.Set(2, 2, Excluded)
	prior.Set(0, 4, Excluded)

	field, err := Build(context.Background(), 9, 5, []Layer{
		{Kind: Perlin, Scale: 2, Op: Replace},
		{Kind: Cellular, Scale: 2, Op: Mix},
	}, Options{Prior: prior})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if field.At(2, 2) != Excluded || field.At(0, 4) != Excluded {
		t.Fatal("excluded cells must be left untouched")
	}
	if field.At(1, 1) == Excluded {
		t.Fatal("regular cells must be sampled")
	}
	if prior.At(1, 1) != 0 {
		t.Fatal("prior field must not be modified")
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		size   int
		layers []Layer
		opts   Options
	}{
		"no layers":      {size: 4, layers: nil},
		"zero scale":     {size: 4, layers: []Layer{{Kind: Perlin, Scale: 0}}},
		"negative scale": {size: 4, layers: []Layer{{Kind: Perlin, Scale: -2}}},
		"nan scale":      {size: 4, layers: []Layer{{Kind: Perlin, Scale: math.NaN()}}},
		"unknown kind":   {size: 4, layers: []Layer{{Kind: Kind(9), Scale: 1}}},
		"unknown op":     {size: 4, layers: []Layer{{Kind: Perlin, Scale: 1, Op: MergeOp(9)}}},
		"empty map":      {size: 0, layers: []Layer{{Kind: Perlin, Scale: 1}}},
		"prior mismatch": {size: 4, layers: []Layer{{Kind: Perlin, Scale: 1}}, opts: Options{Prior: core.NewFloatGrid(3, 3)}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(ctx, 1, tc.size, tc.layers, tc.opts)
			if !errors.Is(err, ErrInvalidLayer) {
				t.Fatalf("expected ErrInvalidLayer, got %v", err)
			}
		})
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	field, err := Build(ctx, 1, 8, []Layer{{Kind: Perlin, Scale: 1}}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if field != nil {
		t.Fatal("cancelled build must not return a partial field")
	}
}
