package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/input"
	"github.com/zeusync/waveshooter/internal/core/level"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/system"
	"github.com/zeusync/waveshooter/internal/core/systems"
)

// GameplayState plays one level popped from the shared queue. It switches to
// a TransitionState exactly once, when the wave is cleared or Space is
// pressed. An exhausted queue ends the campaign.
type GameplayState struct {
	levels     *level.Queue
	layout     level.Layout
	dispatcher *system.Dispatcher
	logger     log.Log

	finished     bool
	campaignDone bool
}

func NewGameplayState(levels *level.Queue) *GameplayState {
	return &GameplayState{levels: levels}
}

func (g *GameplayState) Name() string { return "gameplay" }

// Levels returns the queue the state pops from and hands on.
func (g *GameplayState) Levels() *level.Queue { return g.levels }

// Layout returns the level being played.
func (g *GameplayState) Layout() level.Layout { return g.layout }

func (g *GameplayState) OnStart(_ context.Context, s *Session) error {
	g.logger = s.Log.Named("gameplay")
	systems.RegisterGameplay(s.World)

	d, err := system.NewDispatcher(g.logger, s.Config.Dispatch, systems.GameplayBehaviors(s.Loader.Handles().LaserSheet)...)
	if err != nil {
		return err
	}
	g.dispatcher = d

	layout, ok := g.levels.PopNext()
	if !ok {
		g.campaignDone = true
		g.logger.Info("campaign complete")
		s.Publish(bus.CampaignCompleted, nil)
		return nil
	}
	if err := layout.Validate(); err != nil {
		return err
	}
	g.layout = layout
	if n := layout.Players(); n != 1 {
		g.logger.Warn("layout should have exactly one player", log.String("level", layout.Name), log.Int("players", n))
	}

	s.Tracker.BeginLevel()
	if err := spawnScenery(s); err != nil {
		return err
	}
	for i, rec := range layout.Records {
		comps, err := prefab(s, rec)
		if err != nil {
			return fmt.Errorf("%s record %d: %w", layout.Name, i, err)
		}
		if _, err := s.World.Spawn(comps...); err != nil {
			return fmt.Errorf("%s record %d: %w", layout.Name, i, err)
		}
	}

	g.logger.Info("level started",
		log.String("level", layout.Name),
		log.Int("enemies", layout.Enemies()),
		log.Int("remaining", g.levels.Len()),
	)
	s.Publish(bus.LevelStarted, bus.LevelPayload{Name: layout.Name, Enemies: layout.Enemies(), Remaining: g.levels.Len()})
	return nil
}

func (g *GameplayState) OnStop(s *Session) {
	g.finished = true
	n := s.Cleanup()
	g.logger.Debug("gameplay entities cleaned up", log.Int("count", n))
}

func (g *GameplayState) OnPause(*Session)  {}
func (g *GameplayState) OnResume(*Session) {}

func (g *GameplayState) HandleEvent(s *Session, ev input.Event) Trans {
	switch {
	case quitOn(ev):
		return Quit()
	case ev.IsKeyDown(input.KeyP):
		return Push(NewPausedState())
	case ev.IsKeyDown(input.KeySpace):
		return g.finish(s)
	}
	return None()
}

func (g *GameplayState) Update(ctx context.Context, s *Session) (Trans, error) {
	if g.campaignDone {
		return Quit(), nil
	}
	if !s.Loader.IsLoadComplete() {
		return None(), nil
	}

	if err := g.dispatcher.Dispatch(ctx, s.Frame(g.logger)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return None(), ctxErr
		}
		g.logger.Warn("gameplay tick had failures", log.Tick(s.Tick), log.Error(err))
	}
	s.World.Maintain()

	if s.Tracker.PollWaveComplete() {
		g.logger.Info("wave completed", log.String("level", g.layout.Name))
		s.Publish(bus.WaveCompleted, bus.LevelPayload{Name: g.layout.Name, Enemies: g.layout.Enemies(), Remaining: g.levels.Len()})
		return g.finish(s), nil
	}
	return None(), nil
}

// finish builds the switch to the transition screen. It has no side effects:
// the state is marked finished only when the machine stops it.
func (g *GameplayState) finish(s *Session) Trans {
	if g.finished || g.campaignDone {
		return None()
	}
	return Switch(NewTransitionState(g.levels, s.Loader.Handles().Overlay))
}
