package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"planetgen/internal/planet"
	"planetgen/internal/render"
)

func main() {
	preset := flag.String("preset", "planet", "preset to start from (planet, molten, noise)")
	configPath := flag.String("config", "", "JSON planet config; replaces the preset")
	seed := flag.Uint("seed", 0, "seed; 0 keeps the config's seed and shape")
	random := flag.Bool("random", false, "pick a random seed")
	out := flag.String("out", "planet.png", "planet PNG output (empty to skip)")
	noiseOut := flag.String("noise-out", "", "noise field PNG output")
	saveConfig := flag.String("save-config", "", "write the effective config as JSON")
	block := flag.Int("block", 2, "pixels per cell")
	workers := flag.Int("workers", 0, "generation workers; 0 uses every CPU")
	flag.Parse()

	cfg, err := loadConfig(*preset, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := planet.NewWithConfig(*preset, cfg)
	switch {
	case *random:
		p.SetRandomSeed()
	case *seed > 0:
		p.SetSeed(uint32(*seed))
	}
	if *workers > 0 {
		c := p.Config()
		c.Workers = *workers
		p.SetConfig(c)
	}

	start := time.Now()
	if err := p.Generate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: generate seed %d: %v\n", p.Seed(), err)
		os.Exit(1)
	}
	res := p.Result()
	fmt.Fprintf(os.Stderr, "Generated %s seed %d: %dx%d in %v\n",
		p.Name(), p.Seed(), res.Size.W, res.Size.H, time.Since(start).Round(time.Millisecond))

	if *out != "" {
		img, err := render.PlanetImage(res.Map.Cells(), res.Size, render.Palette(p.Descriptors(), p.Background()), *block)
		if err == nil {
			err = render.WritePNG(*out, img)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	}
	if *noiseOut != "" {
		if err := render.WritePNG(*noiseOut, render.NoiseImage(res.Noise, *block)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *noiseOut)
	}
	if *saveConfig != "" {
		if err := planet.SaveConfig(*saveConfig, p.Config()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	printDistribution(res)
}

func loadConfig(preset, path string) (planet.Config, error) {
	if path != "" {
		return planet.LoadConfig(path)
	}
	base, ok := planet.Presets[preset]
	if !ok {
		return planet.Config{}, fmt.Errorf("unknown preset %q", preset)
	}
	return base(), nil
}

func printDistribution(res *planet.Result) {
	counts := res.Map.Count()
	tags := make([]planet.Tag, 0, len(counts))
	for tag := range counts {
		tags = append(tags, planet.Tag(tag))
	}
	sort.Slice(tags, func(i, j int) bool { return counts[uint8(tags[i])] > counts[uint8(tags[j])] })
	total := float64(res.Size.W * res.Size.H)
	for _, tag := range tags {
		n := counts[uint8(tag)]
		fmt.Printf("%-12s %8d  %6.2f%%\n", tag, n, 100*float64(n)/total)
	}
}
