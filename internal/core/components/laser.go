package components

import (
	"fmt"
	"strings"

	"github.com/zeusync/waveshooter/internal/core/physics"
)

// Direction is one of the eight travel directions a laser can take.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	RightUp
	LeftUp
	LeftDown
	RightDown
)

var directionNames = [...]string{"left", "right", "up", "down", "right_up", "left_up", "left_down", "right_down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

// ParseDirection accepts the names produced by String, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Step returns the displacement of a projectile travelling dist units. Diagonal
// directions advance dist on both axes.
func (d Direction) Step(dist float64) physics.Vec2 {
	switch d {
	case Left:
		return physics.Vec2{X: -dist}
	case Right:
		return physics.Vec2{X: dist}
	case Up:
		return physics.Vec2{Y: dist}
	case Down:
		return physics.Vec2{Y: -dist}
	case RightUp:
		return physics.Vec2{X: dist, Y: dist}
	case LeftUp:
		return physics.Vec2{X: -dist, Y: dist}
	case LeftDown:
		return physics.Vec2{X: -dist, Y: -dist}
	case RightDown:
		return physics.Vec2{X: dist, Y: -dist}
	default:
		panic(fmt.Sprintf("unhandled laser direction %d", d))
	}
}

// Laser is a projectile. It is immutable after spawn.
type Laser struct {
	Direction  Direction
	Speed      float64
	Damage     int
	FromPlayer bool
}

// Launcher fires lasers every Interval seconds.
type Launcher struct {
	Direction Direction
	Interval  float64
	Cooldown  float64
	Speed     float64
	Damage    int
}

// Ready advances the cooldown by dt and reports whether a shot is due,
// rearming the launcher when it is.
func (l *Launcher) Ready(dt float64) bool {
	if l.Interval <= 0 {
		return false
	}
	l.Cooldown -= dt
	if l.Cooldown > 0 {
		return false
	}
	l.Cooldown += l.Interval
	if l.Cooldown < 0 {
		l.Cooldown = l.Interval
	}
	return true
}
