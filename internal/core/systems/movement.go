package systems

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// EnemyMoveSystem integrates the velocity of seeking enemies and culls those
// that leave the enemy bounds. Enemies driven by Movement are left to
// TransformUpdateSystem.
type EnemyMoveSystem struct{}

func (EnemyMoveSystem) Name() string { return "enemy_move" }

func (EnemyMoveSystem) Access() system.Access {
	return system.Access{}.
		Read(kindEnemy, kindMovement).
		Write(kindTransform)
}

func (EnemyMoveSystem) Run(_ context.Context, frame *system.Frame) error {
	models.Join2[components.Enemy, components.Transform](frame.World).
		Without(kindMovement).
		Each(func(e models.EntityID, enemy *components.Enemy, t *components.Transform) bool {
			p := physics.Integrate(t.Position.XY(), enemy.Velocity, frame.Delta)
			t.Position = t.Position.WithXY(p)
			if !physics.EnemyBounds.Contains(p.X, p.Y) {
				deleteEntity(frame, e, "enemy out of bounds")
			}
			return true
		})
	return nil
}

// TransformUpdateSystem integrates Movement velocities, applies the one-shot
// heading rotation of locked movers and culls anything outside the enemy
// bounds.
type TransformUpdateSystem struct{}

func (TransformUpdateSystem) Name() string { return "transform_update" }

func (TransformUpdateSystem) Access() system.Access {
	return system.Access{}.
		Write(kindTransform, kindMovement)
}

func (TransformUpdateSystem) Run(_ context.Context, frame *system.Frame) error {
	models.Join2[components.Movement, components.Transform](frame.World).Each(
		func(e models.EntityID, m *components.Movement, t *components.Transform) bool {
			p := physics.Integrate(t.Position.XY(), m.Velocity, frame.Delta)
			t.Position = t.Position.WithXY(p)
			ApplyLockedRotation(t, m)
			if !physics.EnemyBounds.Contains(p.X, p.Y) {
				deleteEntity(frame, e, "mover out of bounds")
			}
			return true
		})
	return nil
}

// ApplyLockedRotation turns a locked mover to face its travel direction. It
// runs at most once per entity and reports whether it rotated.
func ApplyLockedRotation(t *components.Transform, m *components.Movement) bool {
	dir, locked := m.LockedDirection()
	if !locked || m.AlreadyRotated {
		return false
	}
	t.Rotation = physics.HeadingRotation(dir)
	m.AlreadyRotated = true
	return true
}
