package trace

import (
	"context"
	"sync"

	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/integrators"
)

// Batch runs one trajectory per initial condition in parallel. The
// Problem is shared read-only across workers; each worker owns its own
// integrator (integrators keep scratch buffers) and extended-state
// buffers.
type Batch struct {
	problem  flow.Problem
	newInteg func() integrators.Integrator
}

func NewBatch(p flow.Problem, newInteg func() integrators.Integrator) *Batch {
	return &Batch{problem: p, newInteg: newInteg}
}

// Run traces all starts and returns results in matching order. Per-run
// construction errors (bad config, dimension mismatch) land in the
// corresponding Result's Err.
func (b *Batch) Run(ctx context.Context, starts []flow.State, cfg Config) []*Result {
	results := make([]*Result, len(starts))

	var wg sync.WaitGroup
	for i := range starts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			res, err := Run(ctx, b.problem, b.newInteg(), starts[idx], cfg)
			if err != nil {
				res = &Result{Size: b.problem.Size(), Err: err}
			}
			results[idx] = res
		}(i)
	}
	wg.Wait()

	return results
}
