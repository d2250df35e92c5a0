package components

import (
	"errors"

	"github.com/zeusync/waveshooter/internal/core/physics"
)

var ErrDirectionLocked = errors.New("movement direction already locked")

// Movement drives entities that either seek the player every tick or, with
// LockOnSight, commit to the first heading they see and keep it.
type Movement struct {
	Speed          float64
	Velocity       physics.Vec2
	LockOnSight    bool
	AlreadyRotated bool

	locked    bool
	direction physics.Vec2
}

// LockDirection fixes the travel direction. It can only succeed once.
func (m *Movement) LockDirection(dir physics.Vec2) error {
	if m.locked {
		return ErrDirectionLocked
	}
	m.locked = true
	m.direction = dir.Normalize()
	m.Velocity = m.direction.Scale(m.Speed)
	return nil
}

// LockedDirection returns the locked unit direction, if any.
func (m Movement) LockedDirection() (physics.Vec2, bool) {
	return m.direction, m.locked
}

// NextMove updates the velocity toward the target, locking the heading first
// when LockOnSight is set. Locked entities keep their velocity.
func (m *Movement) NextMove(targetX, targetY, currentX, currentY float64) {
	if m.locked {
		return
	}
	vx, vy := physics.SeekVelocity(m.Speed, targetX, targetY, currentX, currentY)
	if m.LockOnSight {
		_ = m.LockDirection(physics.Vec2{X: vx, Y: vy})
		return
	}
	m.Velocity = physics.Vec2{X: vx, Y: vy}
}
