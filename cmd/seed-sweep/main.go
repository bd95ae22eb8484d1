package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"planetgen/internal/planet"
)

type sweepResult struct {
	seed   uint32
	size   int
	shares map[planet.Tag]float64
	err    error
}

func main() {
	preset := flag.String("preset", "planet", "preset to sweep")
	first := flag.Uint("from", 1, "first seed")
	count := flag.Int("count", 64, "number of seeds")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	tagName := flag.String("tag", "", "only report seeds where this tag covers at least -min of the planet")
	minShare := flag.Float64("min", 0, "minimum share of -tag among planet cells")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	base, ok := planet.Presets[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", *preset)
		os.Exit(1)
	}
	var filter planet.Tag
	if *tagName != "" {
		t, err := planet.ParseTag(*tagName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter = t
	}

	*workers = max(*workers, 1)
	fmt.Printf("Sweeping %d seeds from %d (%d workers)\n", *count, *first, *workers)

	start := time.Now()
	results := sweep(base, uint32(*first), *count, *workers)
	var kept []sweepResult
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "seed %d: %v\n", res.seed, res.err)
			continue
		}
		if *tagName != "" && res.shares[filter] < *minShare {
			continue
		}
		kept = append(kept, res)
	}

	sort.Slice(kept, func(i, j int) bool {
		if *tagName != "" {
			return kept[i].shares[filter] > kept[j].shares[filter]
		}
		return kept[i].seed < kept[j].seed
	})
	fmt.Printf("%d seeds matched, %d failed, %v\n", len(kept), failed, time.Since(start).Round(time.Millisecond))
	for i, res := range kept {
		if i >= *top {
			break
		}
		fmt.Printf("seed %-7d size %-4d %s\n", res.seed, res.size, formatShares(res.shares))
	}
}

// sweep generates count seeds starting at first on workers goroutines. The
// returned channel is closed once every seed has been reported.
func sweep(base func() planet.Config, first uint32, count, workers int) <-chan sweepResult {
	jobs := make(chan uint32)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < max(workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(base(), seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < count; i++ {
			jobs <- first + uint32(i)
		}
		close(jobs)
	}()
	return results
}

// runSeed generates one planet single-threaded; the sweep parallelises across
// seeds instead.
func runSeed(cfg planet.Config, seed uint32) sweepResult {
	cfg = cfg.WithSeed(seed)
	cfg.Workers = 1
	res, err := planet.Generate(context.Background(), cfg)
	if err != nil {
		return sweepResult{seed: seed, err: err}
	}
	counts := res.Map.Count()
	solid := 0
	for tag, n := range counts {
		if planet.Tag(tag) != planet.TagEmpty {
			solid += n
		}
	}
	shares := make(map[planet.Tag]float64, len(counts))
	for tag, n := range counts {
		if planet.Tag(tag) == planet.TagEmpty || solid == 0 {
			continue
		}
		shares[planet.Tag(tag)] = float64(n) / float64(solid)
	}
	return sweepResult{seed: seed, size: res.Size.W, shares: shares}
}

func formatShares(shares map[planet.Tag]float64) string {
	tags := make([]planet.Tag, 0, len(shares))
	for tag := range shares {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	out := ""
	for _, tag := range tags {
		out += fmt.Sprintf("%s=%.1f%% ", tag, 100*shares[tag])
	}
	return out
}
