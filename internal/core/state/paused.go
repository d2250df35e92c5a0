package state

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/input"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

// PausedState is pushed over another state and has no logic of its own.
type PausedState struct{}

func NewPausedState() *PausedState { return &PausedState{} }

func (*PausedState) Name() string { return "paused" }

func (*PausedState) OnStart(_ context.Context, s *Session) error {
	s.Log.Info("paused", log.Tick(s.Tick))
	return nil
}

func (*PausedState) OnStop(*Session)   {}
func (*PausedState) OnPause(*Session)  {}
func (*PausedState) OnResume(*Session) {}

func (*PausedState) HandleEvent(_ *Session, ev input.Event) Trans {
	switch {
	case quitOn(ev):
		return Quit()
	case ev.IsKeyDown(input.KeyP):
		return Pop()
	}
	return None()
}

func (*PausedState) Update(context.Context, *Session) (Trans, error) {
	return None(), nil
}
