package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAllRunsEveryTask(t *testing.T) {
	var n atomic.Int32
	errA := errors.New("a")
	errB := errors.New("b")

	err := RunAll(context.Background(), 2,
		func(context.Context) error { n.Add(1); return errA },
		func(context.Context) error { n.Add(1); return nil },
		func(context.Context) error { n.Add(1); return errB },
	)

	assert.Equal(t, int32(3), n.Load())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestRunAllEmpty(t *testing.T) {
	assert.NoError(t, RunAll(context.Background(), 4))
}

func TestRunSequentialOrder(t *testing.T) {
	var order []int
	err := RunSequential(context.Background(),
		func(context.Context) error { order = append(order, 1); return nil },
		func(context.Context) error { order = append(order, 2); return nil },
	)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, order)
}
