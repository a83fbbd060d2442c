package experiment

import (
	"context"
	"fmt"
	"sync"
)

// Ensemble sorts numRuns arrays that differ only in seed, one goroutine per
// run.
type Ensemble struct {
	base      Config
	registry  *Registry
	numRuns   int
	seedStart int64
}

func NewEnsemble(base Config, r *Registry, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, registry: r, numRuns: numRuns, seedStart: seedStart}
}

// Run returns results in seed order. Frames are not kept.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.numRuns)
	}
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)

			exp := New(cfg)
			if err := exp.Setup(e.registry); err != nil {
				errs[idx] = err
				return
			}
			res, err := exp.Run(ctx)
			if err != nil {
				errs[idx] = err
				return
			}
			res.Frames = nil
			results[idx] = res
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates the counters of an ensemble.
type Summary struct {
	Runs            int
	Size            int
	MeanComparisons float64
	MeanSwaps       float64
	MinSwaps        int
	MaxSwaps        int
}

func Summarize(results []*Result) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}
	s.Runs = len(results)
	s.Size = results[0].Final.Len()
	s.MinSwaps = results[0].Final.Swaps
	for _, r := range results {
		s.MeanComparisons += float64(r.Final.Comparisons)
		s.MeanSwaps += float64(r.Final.Swaps)
		if r.Final.Swaps < s.MinSwaps {
			s.MinSwaps = r.Final.Swaps
		}
		if r.Final.Swaps > s.MaxSwaps {
			s.MaxSwaps = r.Final.Swaps
		}
	}
	s.MeanComparisons /= float64(s.Runs)
	s.MeanSwaps /= float64(s.Runs)
	return s
}
