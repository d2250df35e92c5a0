// Package state sequences play sessions: a stack of states driven one tick at
// a time, where each state owns its behavior pipeline and tears down the
// entities it spawned when it stops.
package state

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/input"
)

// State is one screen of the game.
type State interface {
	Name() string
	// OnStart runs when the state becomes active for the first time. An error
	// is a configuration failure and stops the machine.
	OnStart(ctx context.Context, s *Session) error
	// OnStop runs when the state is popped, switched away from or quit.
	OnStop(s *Session)
	// OnPause and OnResume bracket a pushed overlay.
	OnPause(s *Session)
	OnResume(s *Session)
	// HandleEvent reacts to one input event before the update.
	HandleEvent(s *Session, ev input.Event) Trans
	// Update runs the state's pipeline for one tick.
	Update(ctx context.Context, s *Session) (Trans, error)
}

type TransKind uint8

const (
	TransNone TransKind = iota
	TransPush
	TransPop
	TransSwitch
	TransQuit
)

func (k TransKind) String() string {
	switch k {
	case TransNone:
		return "none"
	case TransPush:
		return "push"
	case TransPop:
		return "pop"
	case TransSwitch:
		return "switch"
	case TransQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Trans is a state transition request. Next is set for Push and Switch.
type Trans struct {
	Kind TransKind
	Next State
}

func None() Trans             { return Trans{} }
func Push(next State) Trans   { return Trans{Kind: TransPush, Next: next} }
func Pop() Trans              { return Trans{Kind: TransPop} }
func Switch(next State) Trans { return Trans{Kind: TransSwitch, Next: next} }
func Quit() Trans             { return Trans{Kind: TransQuit} }

func (t Trans) IsNone() bool { return t.Kind == TransNone }

// quitOn is the shared close/escape handling every state has.
func quitOn(ev input.Event) bool {
	return ev.IsClose() || ev.IsKeyDown(input.KeyEscape)
}
