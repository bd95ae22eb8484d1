package core

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker splits the row range finer than the worker count so uneven
// rows (planet edges are cheap, the interior is not) still balance out.
const bandsPerWorker = 4

// ParallelRows runs fn for every row in [0, rows) on at most workers
// goroutines and waits for all of them. Rows must be independent: fn may only
// write cells belonging to its own row. The first error stops scheduling new
// bands and is returned once running bands finish. A cancelled ctx is reported
// even if every row completed.
func ParallelRows(ctx context.Context, rows, workers int, fn func(y int) error) error {
	if rows <= 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := (rows + workers*bandsPerWorker - 1) / (workers * bandsPerWorker)
	if band < 1 {
		band = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < rows; lo += band {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+band, rows)
		g.Go(func() error {
			for y := lo; y < hi; y++ {
				if err := fn(y); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
