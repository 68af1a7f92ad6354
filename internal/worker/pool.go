// Package worker runs independent evaluations concurrently with a bounded
// number of goroutines and throttles outbound requests per host.
package worker

import (
	"context"
	"sync"
)

// Pool runs indexed work on a fixed number of goroutines
type Pool struct {
	workers int
}

// NewPool creates a pool; fewer than one worker means one
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the pool size
func (p *Pool) Workers() int {
	return p.workers
}

// Run calls fn once for every index in [0, n) and returns when all calls
// have finished. Every index runs even after ctx is cancelled; fn is expected
// to observe ctx and return early. No goroutine outlives Run.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.workers, n)
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)

	wg.Wait()
}

// Map applies fn to every item on the pool. Results keep input order.
func Map[In, Out any](ctx context.Context, p *Pool, items []In, fn func(ctx context.Context, item In) Out) []Out {
	results := make([]Out, len(items))
	p.Run(ctx, len(items), func(ctx context.Context, i int) {
		results[i] = fn(ctx, items[i])
	})
	return results
}
