package planet

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"planetgen/internal/noise"
)

func TestDefaultConfigValid(t *testing.T) {
	for name, preset := range Presets {
		if err := preset().Validate(); err != nil {
			t.Fatalf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		also   error
	}{
		{"zero radius", func(c *Config) { c.Shape.Radius = 0 }, nil},
		{"negative deformation", func(c *Config) { c.Shape.Deformation = -1 }, nil},
		{"no layers", func(c *Config) { c.Layers = nil }, noise.ErrInvalidLayer},
		{"zero scale", func(c *Config) { c.Layers[0].Scale = 0 }, noise.ErrInvalidLayer},
		{"no descriptors", func(c *Config) { c.Descriptors = nil }, ErrNoCandidates},
		{"inverted depth", func(c *Config) { c.Descriptors[0].DepthMin = 0.9 }, nil},
		{"solid cave density", func(c *Config) { c.CaveDensity = 1 }, nil},
		{"oversized map", func(c *Config) { c.Shape.Radius = RadiusRange.Value(1000) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err=%v, want ErrInvalidConfig", err)
			}
			if tt.also != nil && !errors.Is(err, tt.also) {
				t.Fatalf("err=%v, want it to wrap %v", err, tt.also)
			}
		})
	}
}

func TestFromMapSeedThenOverrides(t *testing.T) {
	derived := DefaultConfig().WithSeed(42)

	cfg := FromMap(DefaultConfig(), map[string]string{"seed": "42"})
	if cfg.Seed != 42 || cfg.Shape != derived.Shape || cfg.CaveDensity != derived.CaveDensity {
		t.Fatalf("seed not applied: %+v", cfg)
	}

	cfg = FromMap(DefaultConfig(), map[string]string{
		"seed":           "42",
		"radius":         "180",
		"boundary_noise": "cellular",
		"workers":        "2",
	})
	if cfg.Shape.Radius != 180 {
		t.Fatalf("radius=%f, want explicit 180", cfg.Shape.Radius)
	}
	if cfg.Shape.Deformation != derived.Shape.Deformation {
		t.Fatalf("deformation=%f, want seed-derived %f", cfg.Shape.Deformation, derived.Shape.Deformation)
	}
	if cfg.Shape.Kind != noise.Cellular || cfg.Workers != 2 {
		t.Fatalf("kind=%v workers=%d", cfg.Shape.Kind, cfg.Workers)
	}
}

func TestFromMapIgnoresMalformed(t *testing.T) {
	base := DefaultConfig()
	cfg := FromMap(base, map[string]string{
		"radius":         "wide",
		"cave_density":   "1.5",
		"boundary_noise": "plasma",
		"seed":           "-3",
	})
	if !reflect.DeepEqual(cfg, base) {
		t.Fatalf("malformed overrides changed config: %+v", cfg)
	}
}

func TestFromMapDoesNotAliasBase(t *testing.T) {
	base := DefaultConfig()
	cfg := FromMap(base, nil)
	cfg.Descriptors[0].TargetNoise = 42
	if base.Descriptors[0].TargetNoise == 42 {
		t.Fatal("FromMap shares descriptor storage with base")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatal("missing file did not yield defaults")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planet.json")
	data := `{
		"seed": 7,
		"cave_density": 0.5,
		"layers": [{"kind": "cellular", "scale": 5, "op": "union"}]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != 7 || cfg.CaveDensity != 0.5 {
		t.Fatalf("seed=%d cave=%f", cfg.Seed, cfg.CaveDensity)
	}
	want := []noise.Layer{{Kind: noise.Cellular, Scale: 5, Op: noise.Union}}
	if !reflect.DeepEqual(cfg.Layers, want) {
		t.Fatalf("layers=%v, want %v", cfg.Layers, want)
	}
	if cfg.Shape != DefaultConfig().Shape {
		t.Fatalf("shape not defaulted: %+v", cfg.Shape)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planet.json")
	if err := os.WriteFile(path, []byte(`{"terrain": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("err=%v, want ErrNoCandidates", err)
	}
}

func TestSaveConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molten.json")
	if err := SaveConfig(path, MoltenConfig()); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, MoltenConfig()) {
		t.Fatalf("reloaded config differs:\n%+v\n%+v", cfg, MoltenConfig())
	}
}
