// Package fade drives the scalar used to darken and lighten the screen during
// scene transitions.
package fade

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidRate = errors.New("fade rate must be positive")

type Direction uint8

const (
	Darken Direction = iota
	Lighten
)

func (d Direction) String() string {
	if d == Lighten {
		return "lighten"
	}
	return "darken"
}

type Phase uint8

const (
	Idle Phase = iota
	Darkening
	Lightening
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Darkening:
		return "darkening"
	case Lightening:
		return "lightening"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", p)
	}
}

// Fader moves Value from 0 to 1 (Darken) or 1 to 0 (Lighten) at Rate units
// per second. It is attached to entities as a component.
type Fader struct {
	Rate      float64
	Direction Direction
	Value     float64
	Phase     Phase
}

// NewFader returns a fader already running in dir.
func NewFader(rate float64, dir Direction) (Fader, error) {
	if rate <= 0 {
		return Fader{}, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	f := Fader{Rate: rate, Direction: dir}
	f.Start()
	return f, nil
}

// Start (re)starts the fade from its origin extreme.
func (f *Fader) Start() {
	if f.Direction == Lighten {
		f.Value = 1
		f.Phase = Lightening
		return
	}
	f.Value = 0
	f.Phase = Darkening
}

// Advance moves the value by Rate*dt toward the target extreme. It returns
// true only on the call that reaches the extreme.
func (f *Fader) Advance(dt float64) bool {
	switch f.Phase {
	case Darkening:
		f.Value += f.Rate * dt
		if f.Value >= 1 {
			f.Value = 1
			f.Phase = Completed
			return true
		}
	case Lightening:
		f.Value -= f.Rate * dt
		if f.Value <= 0 {
			f.Value = 0
			f.Phase = Completed
			return true
		}
	}
	return false
}

// Clear returns a completed fader to Idle.
func (f *Fader) Clear() {
	f.Phase = Idle
}

func (f Fader) IsCompleted() bool { return f.Phase == Completed }

// Status is the shared completion flag the transition state watches. Once set
// it stays set until Clear.
type Status struct {
	mu        sync.Mutex
	completed bool
}

// Complete sets the flag and reports whether this call changed it.
func (s *Status) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return false
	}
	s.completed = true
	return true
}

func (s *Status) IsCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *Status) Clear() {
	s.mu.Lock()
	s.completed = false
	s.mu.Unlock()
}
