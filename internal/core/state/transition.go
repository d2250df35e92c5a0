package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/fade"
	"github.com/zeusync/waveshooter/internal/core/input"
	"github.com/zeusync/waveshooter/internal/core/level"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/system"
	"github.com/zeusync/waveshooter/internal/core/systems"
)

// TransitionState darkens the screen between levels and then starts a fresh
// GameplayState on the same queue.
type TransitionState struct {
	levels     *level.Queue
	overlay    assets.Handle
	dispatcher *system.Dispatcher
	logger     log.Log
	done       bool
}

func NewTransitionState(levels *level.Queue, overlay assets.Handle) *TransitionState {
	return &TransitionState{levels: levels, overlay: overlay}
}

func (t *TransitionState) Name() string { return "transition" }

// Levels returns the queue carried over from the finished level.
func (t *TransitionState) Levels() *level.Queue { return t.levels }

func (t *TransitionState) OnStart(_ context.Context, s *Session) error {
	t.logger = s.Log.Named("transition")
	systems.RegisterTransition(s.World)

	d, err := system.NewDispatcher(t.logger, s.Config.Dispatch, systems.TransitionBehaviors()...)
	if err != nil {
		return err
	}
	t.dispatcher = d

	fader, err := fade.NewFader(s.Config.FadeRate, fade.Darken)
	if err != nil {
		return err
	}
	s.Fade.Clear()
	if _, err := s.World.Spawn(
		components.NewTransform(s.Config.ScreenWidth/2, s.Config.ScreenHeight/2, zOverlay, 1),
		components.Sprite{Sheet: t.overlay},
		components.Tint{Alpha: fader.Value},
		fader,
		components.CleanupTag{},
	); err != nil {
		return fmt.Errorf("spawn overlay: %w", err)
	}
	return nil
}

func (t *TransitionState) OnStop(s *Session) {
	s.Cleanup()
}

func (t *TransitionState) OnPause(*Session)  {}
func (t *TransitionState) OnResume(*Session) {}

func (t *TransitionState) HandleEvent(_ *Session, ev input.Event) Trans {
	switch {
	case quitOn(ev):
		return Quit()
	case ev.IsKeyDown(input.KeyP):
		return Push(NewPausedState())
	}
	return None()
}

func (t *TransitionState) Update(ctx context.Context, s *Session) (Trans, error) {
	if t.done {
		return None(), nil
	}
	if err := t.dispatcher.Dispatch(ctx, s.Frame(t.logger)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return None(), ctxErr
		}
		return None(), err
	}
	s.World.Maintain()

	if !s.Fade.IsCompleted() {
		return None(), nil
	}
	s.Fade.Clear()
	t.done = true
	t.logger.Debug("fade completed", log.Int("levels_left", t.levels.Len()))
	s.Publish(bus.FadeCompleted, nil)
	return Switch(NewGameplayState(t.levels)), nil
}
