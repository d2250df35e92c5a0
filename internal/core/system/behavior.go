// Package system schedules behaviors against the shared world. Each behavior
// declares the component and resource kinds it reads and writes; the
// dispatcher uses those manifests to decide, once, which behaviors may share a
// stage and run in parallel.
package system

import (
	"context"
	"slices"

	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

// Frame is what a behavior sees during one tick. Nothing in it may be
// retained past Run.
type Frame struct {
	World *models.World
	Delta float64
	Tick  uint64
	Log   log.Log
}

// Behavior is one per-tick system.
type Behavior interface {
	Name() string
	Access() Access
	Run(ctx context.Context, frame *Frame) error
}

// Access is a behavior's read/write manifest.
type Access struct {
	Reads  []models.Kind
	Writes []models.Kind
}

// Read returns a copy of a with kinds added to the read set.
func (a Access) Read(kinds ...models.Kind) Access {
	a.Reads = append(slices.Clone(a.Reads), kinds...)
	return a
}

// Write returns a copy of a with kinds added to the write set.
func (a Access) Write(kinds ...models.Kind) Access {
	a.Writes = append(slices.Clone(a.Writes), kinds...)
	return a
}

// Conflicts is true when one side writes a kind the other reads or writes.
func (a Access) Conflicts(b Access) bool {
	for _, w := range a.Writes {
		if slices.Contains(b.Writes, w) || slices.Contains(b.Reads, w) {
			return true
		}
	}
	for _, w := range b.Writes {
		if slices.Contains(a.Reads, w) {
			return true
		}
	}
	return false
}

// Touches lists every kind in the manifest once.
func (a Access) Touches() []models.Kind {
	out := make([]models.Kind, 0, len(a.Reads)+len(a.Writes))
	for _, k := range append(slices.Clone(a.Reads), a.Writes...) {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
