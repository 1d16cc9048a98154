/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: Parallel evaluation of many input vectors against one Engine. Workers share the
read-only engine and write results by index, so output order matches input order.
*/

package sugeno

import (
	"context"
	"runtime"
	"sync"
)

// BatchResult is the outcome of one input vector
type BatchResult struct {
	Index  int                `json:"index"`
	Inputs map[string]float64 `json:"inputs"`
	Output float64            `json:"output"`
	Err    error              `json:"-"`
}

// EvaluateBatch evaluates every vector on up to workers goroutines (0 = NumCPU).
// Per-vector failures are reported in the result; the returned error is only
// set when ctx is cancelled before all vectors were processed.
func (e *Engine) EvaluateBatch(ctx context.Context, vectors []map[string]float64, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(vectors) {
		workers = len(vectors)
	}

	results := make([]BatchResult, len(vectors))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out, err := e.Evaluate(vectors[i])
				results[i] = BatchResult{Index: i, Inputs: vectors[i], Output: out, Err: err}
			}
		}()
	}

	var cancelled error
feed:
	for i := range vectors {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, cancelled
}
