// Package input defines the window/keyboard events the state machine reacts to.
package input

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type EventType uint8

const (
	CloseRequested EventType = iota + 1
	KeyDown
)

type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyP
	KeySpace
)

var keyNames = map[Key]string{KeyEscape: "escape", KeyP: "p", KeySpace: "space"}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "none"
}

// Event is a discrete window or keyboard event.
type Event struct {
	Type EventType
	Key  Key
}

func Close() Event            { return Event{Type: CloseRequested} }
func Press(k Key) Event       { return Event{Type: KeyDown, Key: k} }
func (e Event) IsClose() bool { return e.Type == CloseRequested }

// IsKeyDown reports whether e is a key press of k.
func (e Event) IsKeyDown(k Key) bool { return e.Type == KeyDown && e.Key == k }

func (e Event) String() string {
	if e.Type == CloseRequested {
		return "close"
	}
	return "key:" + e.Key.String()
}

// ParseEvent accepts "close" or a key name ("escape", "p", "space").
func ParseEvent(s string) (Event, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "close" {
		return Close(), nil
	}
	for k, name := range keyNames {
		if name == s {
			return Press(k), nil
		}
	}
	return Event{}, fmt.Errorf("unknown input event %q", s)
}

// Script is a deterministic event source for headless runs: tick number to
// the events delivered on that tick.
type Script struct {
	events map[uint64][]Event
}

// NewScript builds a script from tick -> event names.
func NewScript(byTick map[uint64][]string) (*Script, error) {
	s := &Script{events: make(map[uint64][]Event, len(byTick))}
	for tick, names := range byTick {
		for _, name := range names {
			ev, err := ParseEvent(name)
			if err != nil {
				return nil, fmt.Errorf("tick %d: %w", tick, err)
			}
			s.events[tick] = append(s.events[tick], ev)
		}
	}
	return s, nil
}

// LoadScriptYAML decodes a mapping of tick numbers to event name lists.
func LoadScriptYAML(r io.Reader) (*Script, error) {
	byTick := map[uint64][]string{}
	if err := yaml.NewDecoder(r).Decode(&byTick); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode input script: %w", err)
	}
	return NewScript(byTick)
}

// At returns the events scheduled for tick.
func (s *Script) At(tick uint64) []Event {
	if s == nil {
		return nil
	}
	return s.events[tick]
}

// Ticks lists the scheduled ticks in ascending order.
func (s *Script) Ticks() []uint64 {
	if s == nil {
		return nil
	}
	out := make([]uint64, 0, len(s.events))
	for t := range s.events {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
