// Package worker provides a bounded fan-out helper used by ingest to parse
// tracker export files in parallel.
package worker

import (
	"runtime"
	"sync"
)

// Result pairs a processed value with its input index so callers can keep
// input order. Per-item errors are captured here rather than aborting the
// batch.
type Result[Out any] struct {
	Index int
	Value Out
	Err   error
}

// Map applies fn to every item across at most concurrency goroutines and
// returns results in input order. concurrency <= 0 defaults to NumCPU.
func Map[In, Out any](items []In, concurrency int, fn func(In) (Out, error)) []Result[Out] {
	if len(items) == 0 {
		return nil
	}

	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	jobs := make(chan int, len(items))
	results := make([]Result[Out], len(items))

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				val, err := fn(items[i])
				results[i] = Result[Out]{Index: i, Value: val, Err: err}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
