package systems

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// EnemyTrackingSystem points every enemy at the player. With several players
// the last one visited wins; a session is expected to have exactly one.
type EnemyTrackingSystem struct{}

func (EnemyTrackingSystem) Name() string { return "enemy_tracking" }

func (EnemyTrackingSystem) Access() system.Access {
	return system.Access{}.
		Read(kindTransform, kindPlayer).
		Write(kindEnemy)
}

func (EnemyTrackingSystem) Run(_ context.Context, frame *system.Frame) error {
	players := playerPositions(frame.World)
	if len(players) == 0 {
		return nil
	}
	models.Join2[components.Enemy, components.Transform](frame.World).Each(
		func(_ models.EntityID, enemy *components.Enemy, t *components.Transform) bool {
			for _, p := range players {
				vx, vy := physics.SeekVelocity(enemy.Speed(), p.X, p.Y, t.Position.X, t.Position.Y)
				enemy.Velocity = physics.Vec2{X: vx, Y: vy}
			}
			return true
		})
	return nil
}

// MovementTrackingSystem updates Movement velocities toward the player,
// locking the heading of LockOnSight entities on first sight.
type MovementTrackingSystem struct{}

func (MovementTrackingSystem) Name() string { return "movement_tracking" }

func (MovementTrackingSystem) Access() system.Access {
	return system.Access{}.
		Read(kindTransform, kindPlayer).
		Write(kindMovement)
}

func (MovementTrackingSystem) Run(_ context.Context, frame *system.Frame) error {
	players := playerPositions(frame.World)
	if len(players) == 0 {
		return nil
	}
	models.Join2[components.Movement, components.Transform](frame.World).Each(
		func(_ models.EntityID, m *components.Movement, t *components.Transform) bool {
			for _, p := range players {
				m.NextMove(p.X, p.Y, t.Position.X, t.Position.Y)
			}
			return true
		})
	return nil
}
