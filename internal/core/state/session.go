package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/fade"
	"github.com/zeusync/waveshooter/internal/core/level"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// SessionConfig holds the per-session tunables.
type SessionConfig struct {
	ScreenWidth  float64
	ScreenHeight float64
	// Delta is the fixed tick length in seconds.
	Delta    float64
	FadeRate float64
	Dispatch system.Options
}

func (c SessionConfig) validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("screen %vx%v: %w", c.ScreenWidth, c.ScreenHeight, ErrInvalidSession)
	case c.Delta <= 0:
		return fmt.Errorf("tick delta %v: %w", c.Delta, ErrInvalidSession)
	case c.FadeRate <= 0:
		return fmt.Errorf("fade rate %v: %w", c.FadeRate, ErrInvalidSession)
	}
	return nil
}

// Session carries everything that lives as long as one play session: the
// world, the collaborators and the shared progress resources.
type Session struct {
	ID     string
	World  *models.World
	Log    log.Log
	Bus    bus.EventBus
	Loader assets.Loader

	Tracker *level.Tracker
	Fade    *fade.Status

	Config       SessionConfig
	PlayableArea physics.Bounds
	Tick         uint64
}

// NewSession validates the collaborators and builds a fresh world with the
// tracker and the bus bridge observing it.
func NewSession(cfg SessionConfig, logger log.Log, b bus.EventBus, loader assets.Loader) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if loader == nil || loader.Catalog() == nil {
		return nil, fmt.Errorf("asset loader without catalog: %w", ErrInvalidSession)
	}
	if err := loader.Handles().Validate(); err != nil {
		return nil, err
	}
	if err := loader.Catalog().Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger = logger.With(log.String("session", id))
	w := models.NewWorld()
	s := &Session{
		ID:           id,
		World:        w,
		Log:          logger,
		Bus:          b,
		Loader:       loader,
		Tracker:      level.NewTracker(logger.Named("tracker")),
		Fade:         &fade.Status{},
		Config:       cfg,
		PlayableArea: physics.PlayableArea(cfg.ScreenWidth, cfg.ScreenHeight),
	}
	w.AddObserver(s.Tracker)
	w.AddObserver(bus.NewWorldObserver(b, w, "world", logger))
	models.Register[components.CleanupTag](w)
	models.SetResource(w, s.Fade)
	return s, nil
}

// Frame builds the behavior view of the current tick.
func (s *Session) Frame(logger log.Log) *system.Frame {
	return &system.Frame{World: s.World, Delta: s.Config.Delta, Tick: s.Tick, Log: logger}
}

// Publish sends a lifecycle event, logging handler failures.
func (s *Session) Publish(typ string, data any) {
	ev := bus.NewEvent(typ, "session", data).WithMeta("tick", s.Tick).WithMeta("session", s.ID)
	if err := s.Bus.Publish(ev); err != nil {
		s.Log.Warn("event handler failed", log.Event(typ), log.Error(err))
	}
}

// Cleanup deletes every entity carrying CleanupTag and flushes the deletions.
func (s *Session) Cleanup() int {
	n := 0
	for _, e := range models.Join1[components.CleanupTag](s.World).Entities() {
		if err := s.World.Delete(e); err != nil {
			s.Log.Warn("cleanup delete failed", log.Entity(uint64(e)), log.Error(err))
			continue
		}
		n++
	}
	s.World.Maintain()
	return n
}
