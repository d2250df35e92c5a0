package system

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/pkg/concurrent"
)

// Options controls how stages execute.
type Options struct {
	// Parallel runs the behaviors of a stage concurrently.
	Parallel bool
	// Workers bounds the goroutines per stage; zero means one per behavior.
	Workers int
}

// Dispatcher runs an ordered behavior list. The list is partitioned into
// stages at construction: a behavior joins the last stage unless it conflicts
// with one of its members, so conflicting behaviors keep their relative order.
type Dispatcher struct {
	stages [][]Behavior
	opts   Options
	logger log.Log

	mu      sync.Mutex
	metrics map[string]*Metrics
}

func NewDispatcher(logger log.Log, opts Options, behaviors ...Behavior) (*Dispatcher, error) {
	d := &Dispatcher{
		opts:    opts,
		logger:  logger,
		metrics: make(map[string]*Metrics, len(behaviors)),
	}
	for i, b := range behaviors {
		if b == nil {
			return nil, fmt.Errorf("behavior %d: %w", i, ErrNilBehavior)
		}
		if _, dup := d.metrics[b.Name()]; dup {
			return nil, fmt.Errorf("%s: %w", b.Name(), ErrDuplicateBehavior)
		}
		d.metrics[b.Name()] = &Metrics{}
		d.place(b)
	}
	logger.Debug("dispatcher built", log.Int("behaviors", len(behaviors)), log.Int("stages", len(d.stages)))
	return d, nil
}

func (d *Dispatcher) place(b Behavior) {
	if n := len(d.stages); n > 0 {
		last := d.stages[n-1]
		fits := true
		for _, other := range last {
			if b.Access().Conflicts(other.Access()) {
				fits = false
				break
			}
		}
		if fits {
			d.stages[n-1] = append(last, b)
			return
		}
	}
	d.stages = append(d.stages, []Behavior{b})
}

// Stages returns the behavior names per stage, in execution order.
func (d *Dispatcher) Stages() [][]string {
	out := make([][]string, len(d.stages))
	for i, stage := range d.stages {
		for _, b := range stage {
			out[i] = append(out[i], b.Name())
		}
	}
	return out
}

// Dispatch runs every stage once. Behavior errors are logged and joined but do
// not stop later stages; a panic is converted to ErrBehaviorPanic.
func (d *Dispatcher) Dispatch(ctx context.Context, frame *Frame) error {
	var errs []error
	for _, stage := range d.stages {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		tasks := make([]concurrent.Task, len(stage))
		for i, b := range stage {
			tasks[i] = d.task(b, frame)
		}

		var err error
		if d.opts.Parallel && len(tasks) > 1 {
			err = concurrent.RunAll(ctx, d.opts.Workers, tasks...)
		} else {
			err = concurrent.RunSequential(ctx, tasks...)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) task(b Behavior, frame *Frame) concurrent.Task {
	return func(ctx context.Context) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: %w: %v\n%s", b.Name(), ErrBehaviorPanic, r, debug.Stack())
			}
			d.record(b.Name(), frame.Tick, time.Since(start), err)
			if err != nil {
				d.logger.Warn("behavior failed", log.String("behavior", b.Name()), log.Tick(frame.Tick), log.Error(err))
			}
		}()
		return b.Run(ctx, frame)
	}
}

func (d *Dispatcher) record(name string, tick uint64, took time.Duration, err error) {
	d.mu.Lock()
	d.metrics[name].record(tick, took, err)
	d.mu.Unlock()
}

// Metrics returns a snapshot of a behavior's runtime metrics.
func (d *Dispatcher) Metrics(name string) (Metrics, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.metrics[name]
	if !ok {
		return Metrics{}, false
	}
	return *m, true
}
