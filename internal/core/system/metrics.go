package system

import (
	"errors"
	"time"
)

// Metrics is the per behavior run record kept by the Dispatcher.
type Metrics struct {
	Runs      uint64
	Errors    uint64
	Panics    uint64
	Total     time.Duration
	Max       time.Duration
	LastTick  uint64
	LastError error
}

// Average is the mean run time, zero before the first run.
func (m Metrics) Average() time.Duration {
	if m.Runs == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Runs)
}

func (m *Metrics) record(tick uint64, took time.Duration, err error) {
	m.Runs++
	m.Total += took
	m.Max = max(m.Max, took)
	m.LastTick = tick
	if err == nil {
		return
	}
	m.Errors++
	m.LastError = err
	if errors.Is(err, ErrBehaviorPanic) {
		m.Panics++
	}
}
