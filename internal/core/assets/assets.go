// Package assets describes what the simulation core needs from the asset
// loading collaborator: a load-progress signal, opaque render handles and a
// catalog of prefab templates.
package assets

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrMissingHandle   = errors.New("missing asset handle")
	ErrUnknownTemplate = errors.New("unknown prefab template")
	ErrInvalidTemplate = errors.New("invalid prefab template")
)

// Handle is an opaque reference to a loaded render asset.
type Handle string

// Handles groups every handle the gameplay and transition states spawn with.
type Handles struct {
	Background   Handle  `yaml:"background"`
	Overlay      Handle  `yaml:"overlay"`
	PlayerSheet  Handle  `yaml:"player_sheet"`
	EnemySheet   Handle  `yaml:"enemy_sheet"`
	LaserSheet   Handle  `yaml:"laser_sheet"`
	CameraWidth  float64 `yaml:"camera_width"`
	CameraHeight float64 `yaml:"camera_height"`
}

// Validate reports every missing handle. A broken handle set is a collaborator
// contract violation and aborts session start.
func (h Handles) Validate() error {
	var errs []error
	check := func(name string, v Handle) {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrMissingHandle))
		}
	}
	check("background", h.Background)
	check("overlay", h.Overlay)
	check("player_sheet", h.PlayerSheet)
	check("enemy_sheet", h.EnemySheet)
	check("laser_sheet", h.LaserSheet)
	return errors.Join(errs...)
}

// Loader is the asset collaborator. IsLoadComplete is polled every tick and
// never blocks.
type Loader interface {
	IsLoadComplete() bool
	Handles() Handles
	Catalog() *Catalog
}

// ProgressCounter tracks outstanding asset loads. It is safe for concurrent use
// by loader goroutines.
type ProgressCounter struct {
	loading  atomic.Int64
	finished atomic.Int64
	failed   atomic.Int64
}

// Begin registers n loads that have started.
func (p *ProgressCounter) Begin(n int) { p.loading.Add(int64(n)) }

// Done marks one load as finished.
func (p *ProgressCounter) Done() { p.finished.Add(1) }

// Fail marks one load as failed. Failed loads still count toward completion.
func (p *ProgressCounter) Fail() {
	p.failed.Add(1)
	p.finished.Add(1)
}

func (p *ProgressCounter) Loading() int  { return int(p.loading.Load()) }
func (p *ProgressCounter) Finished() int { return int(p.finished.Load()) }
func (p *ProgressCounter) Failed() int   { return int(p.failed.Load()) }

// IsComplete is true once every begun load has finished.
func (p *ProgressCounter) IsComplete() bool {
	return p.finished.Load() >= p.loading.Load()
}

// StaticLoader serves handles and a catalog that are already in memory. Its
// progress is driven by the embedded counter, so tests can hold it incomplete.
type StaticLoader struct {
	Progress ProgressCounter
	handles  Handles
	catalog  *Catalog
}

var _ Loader = (*StaticLoader)(nil)

func NewStaticLoader(handles Handles, catalog *Catalog) *StaticLoader {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &StaticLoader{handles: handles, catalog: catalog}
}

func (l *StaticLoader) IsLoadComplete() bool { return l.Progress.IsComplete() }
func (l *StaticLoader) Handles() Handles     { return l.handles }
func (l *StaticLoader) Catalog() *Catalog    { return l.catalog }

// DefaultHandles is the handle set used when no asset manifest is configured.
func DefaultHandles() Handles {
	return Handles{
		Background:   "sprites/background.png",
		Overlay:      "sprites/overlay.png",
		PlayerSheet:  "sprites/player.ron",
		EnemySheet:   "sprites/enemies.ron",
		LaserSheet:   "sprites/laser.ron",
		CameraWidth:  1920,
		CameraHeight: 1080,
	}
}
