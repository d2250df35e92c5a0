package system

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

type compA struct{}
type compB struct{}
type compC struct{}

var (
	kindA = models.KindOf[compA]()
	kindB = models.KindOf[compB]()
	kindC = models.KindOf[compC]()
)

type fakeBehavior struct {
	name   string
	access Access
	run    func(ctx context.Context, frame *Frame) error
}

func (f *fakeBehavior) Name() string   { return f.name }
func (f *fakeBehavior) Access() Access { return f.access }
func (f *fakeBehavior) Run(ctx context.Context, frame *Frame) error {
	if f.run == nil {
		return nil
	}
	return f.run(ctx, frame)
}

func newFrame() *Frame {
	return &Frame{World: models.NewWorld(), Delta: 1.0 / 60, Tick: 1, Log: log.NewNop()}
}

func TestAccessConflicts(t *testing.T) {
	readA := Access{}.Read(kindA)
	writeA := Access{}.Write(kindA)
	writeB := Access{}.Write(kindB)

	assert.False(t, readA.Conflicts(readA))
	assert.True(t, readA.Conflicts(writeA))
	assert.True(t, writeA.Conflicts(readA))
	assert.True(t, writeA.Conflicts(writeA))
	assert.False(t, writeA.Conflicts(writeB))
	assert.ElementsMatch(t, []models.Kind{kindA, kindB}, Access{}.Read(kindA, kindB).Write(kindA).Touches())
}

func TestAccessBuildersDoNotAlias(t *testing.T) {
	base := Access{}.Read(kindA)
	one := base.Read(kindB)
	two := base.Read(kindC)
	assert.Equal(t, []models.Kind{kindA, kindB}, one.Reads)
	assert.Equal(t, []models.Kind{kindA, kindC}, two.Reads)
}

func TestDispatcherStages(t *testing.T) {
	d, err := NewDispatcher(log.NewNop(), Options{},
		&fakeBehavior{name: "a", access: Access{}.Write(kindA)},
		&fakeBehavior{name: "b", access: Access{}.Write(kindB)},
		&fakeBehavior{name: "c", access: Access{}.Read(kindA)},
		&fakeBehavior{name: "d", access: Access{}.Read(kindC)},
		&fakeBehavior{name: "e", access: Access{}.Write(kindC)},
	)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, d.Stages())
}

func TestDispatcherRejectsBadInput(t *testing.T) {
	_, err := NewDispatcher(log.NewNop(), Options{}, nil)
	assert.ErrorIs(t, err, ErrNilBehavior)

	_, err = NewDispatcher(log.NewNop(), Options{},
		&fakeBehavior{name: "a"},
		&fakeBehavior{name: "a"},
	)
	assert.ErrorIs(t, err, ErrDuplicateBehavior)
}

func TestDispatchKeepsOrderAcrossStages(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) func(context.Context, *Frame) error {
		return func(context.Context, *Frame) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}
	d, err := NewDispatcher(log.NewNop(), Options{Parallel: true},
		&fakeBehavior{name: "first", access: Access{}.Write(kindA), run: record("first")},
		&fakeBehavior{name: "second", access: Access{}.Write(kindA), run: record("second")},
		&fakeBehavior{name: "third", access: Access{}.Read(kindA), run: record("third")},
	)
	require.NoError(t, err)
	require.NoError(t, d.Dispatch(context.Background(), newFrame()))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDispatchRunsStageInParallel(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	barrier := func(ctx context.Context, _ *Frame) error {
		started.Done()
		done := make(chan struct{})
		go func() { started.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("peer never started")
		}
	}
	d, err := NewDispatcher(log.NewNop(), Options{Parallel: true},
		&fakeBehavior{name: "left", access: Access{}.Write(kindA), run: barrier},
		&fakeBehavior{name: "right", access: Access{}.Write(kindB), run: barrier},
	)
	require.NoError(t, err)
	require.Len(t, d.Stages(), 1)
	assert.NoError(t, d.Dispatch(context.Background(), newFrame()))
}

func TestDispatchJoinsErrorsAndContinues(t *testing.T) {
	errBoom := errors.New("boom")
	var ran atomic.Int32
	d, err := NewDispatcher(log.NewNop(), Options{},
		&fakeBehavior{name: "fails", access: Access{}.Write(kindA), run: func(context.Context, *Frame) error {
			return errBoom
		}},
		&fakeBehavior{name: "panics", access: Access{}.Write(kindA), run: func(context.Context, *Frame) error {
			panic("kaboom")
		}},
		&fakeBehavior{name: "later", access: Access{}.Write(kindA), run: func(context.Context, *Frame) error {
			ran.Add(1)
			return nil
		}},
	)
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), newFrame())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, ErrBehaviorPanic)
	assert.Equal(t, int32(1), ran.Load())

	m, ok := d.Metrics("panics")
	require.True(t, ok)
	assert.Equal(t, uint64(1), m.Runs)
	assert.Equal(t, uint64(1), m.Errors)
	assert.Equal(t, uint64(1), m.Panics)
	assert.Equal(t, uint64(1), m.LastTick)
	assert.ErrorIs(t, m.LastError, ErrBehaviorPanic)

	m, ok = d.Metrics("later")
	require.True(t, ok)
	assert.Zero(t, m.Errors)
	assert.Equal(t, m.Total, m.Average())

	_, ok = d.Metrics("missing")
	assert.False(t, ok)
}

func TestDispatchStopsOnCanceledContext(t *testing.T) {
	var ran atomic.Int32
	d, err := NewDispatcher(log.NewNop(), Options{},
		&fakeBehavior{name: "a", run: func(context.Context, *Frame) error { ran.Add(1); return nil }},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Dispatch(ctx, newFrame()), context.Canceled)
	assert.Zero(t, ran.Load())
}

func BenchmarkDispatch(b *testing.B) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			d, err := NewDispatcher(log.NewNop(), Options{Parallel: parallel},
				&fakeBehavior{name: "a", access: Access{}.Write(kindA)},
				&fakeBehavior{name: "b", access: Access{}.Write(kindB)},
				&fakeBehavior{name: "c", access: Access{}.Read(kindA).Write(kindC)},
			)
			require.NoError(b, err)
			frame := newFrame()
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = d.Dispatch(ctx, frame)
			}
		})
	}
}
