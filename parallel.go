package query

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of work for Parallel, typically a closure over a query's
// Fetch: func(ctx) error { return q.Fetch(ctx).Err }.
type Task func(ctx context.Context) error

// ErrorMode controls how Parallel reacts to a failing task.
type ErrorMode int

const (
	// ErrorModeFailFast cancels the shared context on the first failure.
	ErrorModeFailFast ErrorMode = iota
	// ErrorModeCollectErrors lets every task run to completion.
	ErrorModeCollectErrors
)

// ParallelOption is a modifier for parallel runs
type ParallelOption func(*Parallel)

// WithFailFast selects fail-fast error handling (the default).
func WithFailFast() ParallelOption {
	return func(p *Parallel) {
		p.errorMode = ErrorModeFailFast
	}
}

// WithCollectErrors selects collect-all error handling.
func WithCollectErrors() ParallelOption {
	return func(p *Parallel) {
		p.errorMode = ErrorModeCollectErrors
	}
}

// Parallel executes tasks concurrently. There is still no coalescing of
// in-flight work: two tasks fetching the same key both run their producers.
type Parallel struct {
	errorMode ErrorMode
}

// NewParallel creates a parallel runner with optional configuration.
func NewParallel(opts ...ParallelOption) *Parallel {
	p := &Parallel{
		errorMode: ErrorModeFailFast,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every task on its own goroutine and returns the per-task
// errors, indexed like the input. In fail-fast mode the shared context is
// cancelled on the first failure; tasks that honor ctx settle early with
// its error.
func (p *Parallel) Run(ctx context.Context, tasks ...Task) []error {
	errs := make([]error, len(tasks))

	var g *errgroup.Group
	if p.errorMode == ErrorModeFailFast {
		g, ctx = errgroup.WithContext(ctx)
	} else {
		g = new(errgroup.Group)
	}

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			err := task(ctx)
			errs[i] = err
			if p.errorMode == ErrorModeFailFast {
				return err
			}
			return nil
		})
	}

	_ = g.Wait()
	return errs
}
