// Package level holds level layouts, the queue of pending levels and the wave
// progress tracker that decides when a level is cleared.
package level

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLayout  = errors.New("invalid level layout")
	ErrUnknownKind    = errors.New("unknown entity kind")
	ErrNoLevels       = errors.New("no levels configured")
	ErrQueueExhausted = errors.New("level queue exhausted")
)

// EntityKind is what a spawn record places in the world.
type EntityKind uint8

const (
	Boss EntityKind = iota + 1
	SquareEnemy
	FlyingEnemy
	Player
)

var kindNames = map[EntityKind]string{
	Boss:        "boss",
	SquareEnemy: "square_enemy",
	FlyingEnemy: "flying_enemy",
	Player:      "player",
}

func (k EntityKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsEnemy reports whether the kind counts toward the wave.
func (k EntityKind) IsEnemy() bool {
	return k == Boss || k == SquareEnemy || k == FlyingEnemy
}

// ParseEntityKind accepts snake_case, kebab-case or CamelCase names.
func ParseEntityKind(s string) (EntityKind, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for k, name := range kindNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

func (k EntityKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%d: %w", k, ErrUnknownKind)
	}
	return []byte(k.String()), nil
}

func (k *EntityKind) UnmarshalText(b []byte) error {
	v, err := ParseEntityKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// SpawnRecord places one entity of Kind at (X, Y).
type SpawnRecord struct {
	Kind EntityKind `yaml:"kind"`
	X    float64    `yaml:"x"`
	Y    float64    `yaml:"y"`
}

// Layout is the declarative description of one level.
type Layout struct {
	Name    string        `yaml:"name"`
	Records []SpawnRecord `yaml:"layout"`
}

// Enemies counts the records that belong to the wave.
func (l Layout) Enemies() int {
	n := 0
	for _, r := range l.Records {
		if r.Kind.IsEnemy() {
			n++
		}
	}
	return n
}

// Players counts the player records.
func (l Layout) Players() int {
	n := 0
	for _, r := range l.Records {
		if r.Kind == Player {
			n++
		}
	}
	return n
}

// Validate rejects layouts that could never complete.
func (l Layout) Validate() error {
	for i, r := range l.Records {
		if _, ok := kindNames[r.Kind]; !ok {
			return fmt.Errorf("%s record %d: %w: %w", l.Name, i, ErrInvalidLayout, ErrUnknownKind)
		}
	}
	if l.Enemies() == 0 {
		return fmt.Errorf("%s: no enemies: %w", l.Name, ErrInvalidLayout)
	}
	return nil
}
