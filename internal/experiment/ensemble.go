package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/sim"
)

// Ensemble runs independent scenarios concurrently. Every run gets its own
// Experiment, so no craft, controller or metric is shared between runs.
type Ensemble struct {
	registry *Registry
	logger   *slog.Logger
	workers  int
}

// NewEnsemble runs at most workers scenarios at once; workers <= 0 means one
// per CPU.
func NewEnsemble(reg *Registry, logger *slog.Logger, workers int) *Ensemble {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Ensemble{registry: reg, logger: logger, workers: workers}
}

// Run sets up and runs one experiment per config. results[i] belongs to
// cfgs[i]. The first failing run, by index, is returned as the error.
func (e *Ensemble) Run(ctx context.Context, cfgs []*config.Config) ([]*sim.Result, error) {
	results := make([]*sim.Result, len(cfgs))
	errs := make([]error, len(cfgs))
	sem := make(chan struct{}, e.workers)

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, cfg *config.Config) {
			defer wg.Done()
			defer func() { <-sem }()

			exp := New(cfg)
			if err := exp.Setup(e.registry, e.logger.With("run", idx)); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, cfg)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return results, nil
}
