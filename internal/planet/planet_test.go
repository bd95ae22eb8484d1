package planet

import (
	"context"
	"errors"
	"math"
	"slices"
	"strconv"
	"testing"

	"planetgen/internal/core"
	"planetgen/internal/noise"
	pcore "planetgen/pkg/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Shape.Radius = 12
	cfg.Shape.Deformation = 3
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !slices.Equal(a.Noise.Values(), b.Noise.Values()) {
		t.Fatal("noise fields differ for identical input")
	}
	if !slices.Equal(a.Map.Cells(), b.Map.Cells()) {
		t.Fatal("planet maps differ for identical input")
	}
}

func TestGenerateIndependentOfWorkers(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	serial, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 8
	parallel, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(serial.Map.Cells(), parallel.Map.Cells()) {
		t.Fatal("worker count changed the planet map")
	}
}

func TestGenerateSizes(t *testing.T) {
	cfg := smallConfig()
	res, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := cfg.Shape.MapSize()
	if res.Size != (core.Size{W: want, H: want}) {
		t.Fatalf("size %+v, want %d square", res.Size, want)
	}
	if res.Noise.Size() != res.Size || res.Map.Size() != res.Size {
		t.Fatalf("grid sizes differ: noise %+v map %+v", res.Noise.Size(), res.Map.Size())
	}
	counts := res.Map.Count()
	if counts[uint8(TagEmpty)] == 0 {
		t.Fatal("corners of the map should lie outside the planet")
	}
	if counts[uint8(TagEmpty)] == want*want {
		t.Fatal("map holds no planet at all")
	}
}

func TestGenerateSmallScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Shape.Radius = 1.5
	cfg.Shape.Deformation = 0.5

	res, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Size.W != 4 || res.Size.H != 4 {
		t.Fatalf("size %+v, want 4x4", res.Size)
	}

	vx, vy := pcore.ViewPoint(cfg.Seed)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			px, py := float64(x), float64(y)
			surface := cfg.Shape.surfaceAt(vx, vy, Angle(2, 2, px, py))
			depth, err := Depth(surface, math.Hypot(px-2, py-2))
			if err != nil {
				t.Fatal(err)
			}
			want, err := ClassifyCell(depth, res.Noise.At(x, y), cfg.CaveDensity, cfg.Descriptors)
			if err != nil {
				t.Fatal(err)
			}
			if got := Tag(res.Map.At(x, y)); got != want {
				t.Fatalf("cell (%d,%d)=%v, want %v", x, y, got, want)
			}
		}
	}
	// The corner is sqrt(8) from the centre, beyond any surface in [1.5, 2].
	if got := Tag(res.Map.At(0, 0)); got != TagEmpty {
		t.Fatalf("corner=%v, want empty", got)
	}
	// Depth 1 at the centre sits below the cave limit.
	if got := Tag(res.Map.At(2, 2)); got == TagEmpty || got == TagBackground {
		t.Fatalf("centre=%v, want solid terrain", got)
	}
}

// referenceConfig is a round planet of radius 2 on a 4x4 map with a single
// rock candidate.
func referenceConfig() Config {
	return Config{
		Seed:        1,
		Shape:       Shape{Radius: 2, Deformation: 0, DeformationFrequency: 0, Kind: noise.Perlin},
		CaveDensity: 0.3,
		Layers:      []noise.Layer{{Kind: noise.Perlin, Scale: 10, Op: noise.Replace}},
		Descriptors: []Descriptor{{Tag: TagRock, DepthMin: 0, DepthMax: 1, TargetNoise: 0.5}},
	}
}

func TestGenerateReferenceGrid(t *testing.T) {
	res, err := Generate(context.Background(), referenceConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Size != (core.Size{W: 4, H: 4}) {
		t.Fatalf("size %+v, want 4x4", res.Size)
	}
	e, r := TagEmpty, TagRock
	want := []Tag{
		e, e, r, e,
		e, r, r, r,
		r, r, r, r,
		e, r, r, r,
	}
	for i, tag := range want {
		x, y := i%4, i/4
		if got := Tag(res.Map.At(x, y)); got != tag {
			t.Errorf("cell (%d,%d)=%v, want %v", x, y, got, tag)
		}
	}
}

func TestDescriptorsReturnsCopy(t *testing.T) {
	p := NewWithConfig("planet", smallConfig())
	descs := p.Descriptors()
	descs[0].Tag = TagLava
	if got := p.Config().Descriptors[0].Tag; got == TagLava {
		t.Fatal("editing Descriptors changed the planet's config")
	}
}

func TestFullRatiosStayWithinMapCeiling(t *testing.T) {
	p := NewWithConfig("planet", DefaultConfig())
	for _, key := range RatioKeys() {
		p.SetRatio(key, 1)
	}
	p.SetCaveDensityRatio(0)
	if err := p.Config().Validate(); err != nil {
		t.Fatalf("largest ratios rejected: %v", err)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Descriptors = nil
	_, err := Generate(context.Background(), cfg)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("err=%v, want ErrInvalidConfig wrapping ErrNoCandidates", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Generate(ctx, smallConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
	if res != nil {
		t.Fatal("result returned for cancelled generation")
	}
}

func TestPlanetKeepsPreviousResultOnFailure(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	if err := p.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := append([]uint8(nil), p.Cells()...)

	cfg := p.Config()
	cfg.Layers = nil
	p.SetConfig(cfg)
	if err := p.Generate(context.Background()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err=%v, want ErrInvalidConfig", err)
	}
	if !slices.Equal(before, p.Cells()) {
		t.Fatal("failed generation replaced the previous map")
	}
}

func TestRatioRoundTrip(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	for _, key := range RatioKeys() {
		for _, r := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if !p.SetRatio(key, r) {
				t.Fatalf("SetRatio(%q) rejected", key)
			}
			got, ok := p.Ratio(key)
			if !ok {
				t.Fatalf("Ratio(%q) unknown", key)
			}
			if math.Abs(got-r) > 1e-5 {
				t.Fatalf("%s: set %f, got %f", key, r, got)
			}
		}
	}
}

func TestRatioMapsToPhysicalRange(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	p.SetRadiusRatio(0)
	p.SetDeformationRatio(1)
	p.SetDeformationFrequencyRatio(0.5)
	p.SetCaveDensityRatio(1)
	cfg := p.Config()
	if cfg.Shape.Radius != 100 || cfg.Shape.Deformation != 100 || cfg.Shape.DeformationFrequency != 4 {
		t.Fatalf("unexpected shape %+v", cfg.Shape)
	}
	if math.Abs(cfg.CaveDensity-0.6) > 1e-12 {
		t.Fatalf("cave density %f, want 0.6", cfg.CaveDensity)
	}
	p.SetRadiusRatio(2)
	if got := p.Config().Shape.Radius; got != 400 {
		t.Fatalf("ratio 2 radius=%f, want extrapolated 400", got)
	}
}

func TestSetSeedStable(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	p.SetSeed(42)
	first := p.Config()
	p.SetRadiusRatio(0.1)
	p.SetSeed(42)
	second := p.Config()
	if first.Shape != second.Shape || first.CaveDensity != second.CaveDensity {
		t.Fatalf("SetSeed(42) not stable: %+v/%f vs %+v/%f",
			first.Shape, first.CaveDensity, second.Shape, second.CaveDensity)
	}
	checks := []struct {
		name  string
		value float64
		r     Range
	}{
		{"radius", first.Shape.Radius, RadiusRange},
		{"deformation", first.Shape.Deformation, DeformationRange},
		{"deformation_freq", first.Shape.DeformationFrequency, DeformationFrequencyRange},
		{"cave_density", first.CaveDensity, CaveDensityRange},
	}
	for _, c := range checks {
		if c.value < c.r.Min || c.value >= c.r.Max {
			t.Fatalf("%s=%f outside [%f, %f)", c.name, c.value, c.r.Min, c.r.Max)
		}
	}
}

func TestSetSeedDrawOrder(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	p.SetSeed(42)
	rng := pcore.NewRNG(42)
	want := []float64{
		rng.Float(RadiusRange.Min, RadiusRange.Max),
		rng.Float(DeformationRange.Min, DeformationRange.Max),
		rng.Float(DeformationFrequencyRange.Min, DeformationFrequencyRange.Max),
		rng.Float(CaveDensityRange.Min, CaveDensityRange.Max),
	}
	cfg := p.Config()
	got := []float64{cfg.Shape.Radius, cfg.Shape.Deformation, cfg.Shape.DeformationFrequency, cfg.CaveDensity}
	if !slices.Equal(got, want) {
		t.Fatalf("derived %v, want %v", got, want)
	}
}

func TestSetSeedClampsZero(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	p.SetSeed(0)
	if p.Seed() != 1 {
		t.Fatalf("seed=%d, want 1", p.Seed())
	}
	if !p.SetIntParameter(KeySeed, -5) || p.Seed() != 1 {
		t.Fatalf("SetIntParameter(-5) left seed %d", p.Seed())
	}
}

func TestSetRandomSeedRange(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	for i := 0; i < 200; i++ {
		p.SetRandomSeed()
		if s := p.Seed(); s < 1 || s > MaxSeed {
			t.Fatalf("random seed %d outside [1, %d]", s, MaxSeed)
		}
	}
}

func TestParameterControls(t *testing.T) {
	p := NewWithConfig("test", smallConfig())
	controls := p.ParameterControls()
	keys := make([]string, 0, len(controls))
	for _, c := range controls {
		keys = append(keys, c.Key)
	}
	want := append([]string{KeySeed}, RatioKeys()...)
	if !slices.Equal(keys, want) {
		t.Fatalf("controls %v, want %v", keys, want)
	}

	if !p.SetFloatParameter(KeyCaveDensity, 0.5) {
		t.Fatal("cave density not settable")
	}
	param, ok := p.Parameters().Lookup(KeyCaveDensity)
	if !ok {
		t.Fatal("cave density missing from snapshot")
	}
	if v, err := strconv.ParseFloat(param.Value, 64); err != nil || math.Abs(v-0.5) > 1e-9 {
		t.Fatalf("cave density param %+v", param)
	}
	if p.SetFloatParameter("gravity", 1) {
		t.Fatal("unknown key accepted")
	}
	if p.SetIntParameter(KeyRadius, 3) {
		t.Fatal("ratio accepted as int parameter")
	}
}

func TestPlanetImplementsGenerator(t *testing.T) {
	var _ core.Generator = NewWithConfig("test", smallConfig())
	var _ core.Generator = NewNoiseView(NewWithConfig("test", smallConfig()))
	var _ core.ParameterControlsProvider = NewWithConfig("test", smallConfig())
}
