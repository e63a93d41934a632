package github

import (
	"context"
	"sync"
)

// Result holds one gathered task's outcome: either a value or an error,
// never both meaningful at once.
type Result[T any] struct {
	Value T
	Err   error
}

// Gather runs a fixed set of tasks concurrently and joins them all,
// collecting every outcome in task order. One task's failure never cancels
// its siblings; each result is inspected independently by the caller.
func Gather[T any](ctx context.Context, tasks ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func(context.Context) (T, error)) {
			defer wg.Done()
			value, err := task(ctx)
			results[i] = Result[T]{Value: value, Err: err}
		}(i, task)
	}
	wg.Wait()

	return results
}
