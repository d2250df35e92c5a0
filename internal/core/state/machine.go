package state

import (
	"context"
	"fmt"

	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/input"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

// Machine is a pushdown automaton over States. Only the top state receives
// events and updates.
type Machine struct {
	session *Session
	stack   []State
	running bool
	logger  log.Log
}

func NewMachine(session *Session) *Machine {
	return &Machine{session: session, logger: session.Log.Named("state")}
}

// Start pushes the initial state.
func (m *Machine) Start(ctx context.Context, initial State) error {
	if m.running {
		return ErrAlreadyRunning
	}
	if initial == nil {
		return ErrNilState
	}
	m.running = true
	if err := m.push(ctx, initial); err != nil {
		m.stopAll()
		return err
	}
	m.changed("", initial.Name(), TransPush)
	return nil
}

func (m *Machine) Running() bool { return m.running }
func (m *Machine) Depth() int    { return len(m.stack) }

// Current returns the top state, or nil once the machine stopped.
func (m *Machine) Current() State {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Tick handles events, updates the top state unless an event already asked
// for a transition, applies the first transition requested and advances the
// session clock. The first non-None transition of a tick wins; events after
// it are not delivered, since the state they target may be gone.
func (m *Machine) Tick(ctx context.Context, events []input.Event) error {
	if !m.running {
		return ErrNotRunning
	}
	top := m.Current()
	trans := None()
	for _, ev := range events {
		if t := top.HandleEvent(m.session, ev); !t.IsNone() {
			trans = t
			m.logger.Debug("input transition", log.Event(ev.String()), log.String("transition", t.Kind.String()))
			break
		}
	}

	if trans.IsNone() {
		t, err := top.Update(ctx, m.session)
		if err != nil {
			m.stopAll()
			return fmt.Errorf("%s update: %w", top.Name(), err)
		}
		trans = t
	}

	err := m.apply(ctx, trans)
	m.session.Tick++
	return err
}

func (m *Machine) apply(ctx context.Context, t Trans) error {
	if t.IsNone() {
		return nil
	}
	from := m.Current().Name()

	switch t.Kind {
	case TransPush:
		if t.Next == nil {
			return ErrNilState
		}
		m.Current().OnPause(m.session)
		if err := m.push(ctx, t.Next); err != nil {
			m.stopAll()
			return err
		}
	case TransPop:
		m.pop()
		if len(m.stack) == 0 {
			m.running = false
		} else {
			m.Current().OnResume(m.session)
		}
	case TransSwitch:
		if t.Next == nil {
			return ErrNilState
		}
		m.pop()
		if err := m.push(ctx, t.Next); err != nil {
			m.stopAll()
			return err
		}
	case TransQuit:
		m.stopAll()
	}

	to := ""
	if cur := m.Current(); cur != nil {
		to = cur.Name()
	}
	m.changed(from, to, t.Kind)
	return nil
}

func (m *Machine) push(ctx context.Context, s State) error {
	m.stack = append(m.stack, s)
	if err := s.OnStart(ctx, m.session); err != nil {
		return fmt.Errorf("%s start: %w", s.Name(), err)
	}
	return nil
}

func (m *Machine) pop() {
	n := len(m.stack)
	m.stack[n-1].OnStop(m.session)
	m.stack[n-1] = nil
	m.stack = m.stack[:n-1]
}

func (m *Machine) stopAll() {
	for len(m.stack) > 0 {
		m.pop()
	}
	m.running = false
}

func (m *Machine) changed(from, to string, kind TransKind) {
	m.logger.Info("state changed",
		log.String("from", from),
		log.String("to", to),
		log.String("transition", kind.String()),
		log.Int("depth", len(m.stack)),
	)
	m.session.Publish(bus.StateChanged, bus.StatePayload{
		From:       from,
		To:         to,
		Transition: kind.String(),
		Depth:      len(m.stack),
	})
}
