package concurrent

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work scheduled by RunAll.
type Task func(ctx context.Context) error

// RunAll runs every task on at most limit goroutines (limit <= 0 means unbounded)
// and waits for all of them. Unlike a plain errgroup it does not stop on the first
// failure: every task runs and all errors are joined.
func RunAll(ctx context.Context, limit int, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if len(tasks) == 1 {
		return tasks[0](ctx)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	g := errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, task := range tasks {
		g.Go(func() error {
			if err := task(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// RunSequential runs tasks one after another on the calling goroutine, joining errors.
func RunSequential(ctx context.Context, tasks ...Task) error {
	var errs []error
	for _, task := range tasks {
		if err := task(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
