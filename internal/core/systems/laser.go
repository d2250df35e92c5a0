package systems

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// LaserSystem moves lasers along their fixed direction and deletes the ones
// whose new position leaves the laser bounds.
type LaserSystem struct{}

func (LaserSystem) Name() string { return "laser" }

func (LaserSystem) Access() system.Access {
	return system.Access{}.
		Read(kindLaser).
		Write(kindTransform)
}

func (LaserSystem) Run(_ context.Context, frame *system.Frame) error {
	models.Join2[components.Laser, components.Transform](frame.World).Each(
		func(e models.EntityID, l *components.Laser, t *components.Transform) bool {
			p := t.Position.XY().Add(l.Direction.Step(l.Speed * frame.Delta))
			t.Position = t.Position.WithXY(p)
			if !physics.LaserBounds.Contains(p.X, p.Y) {
				deleteEntity(frame, e, "laser out of bounds")
			}
			return true
		})
	return nil
}

// LauncherSystem is the weapon-fire behavior: every launcher whose cooldown
// has elapsed spawns a laser at its owner's position.
type LauncherSystem struct {
	Sheet assets.Handle
}

func NewLauncherSystem(sheet assets.Handle) *LauncherSystem {
	return &LauncherSystem{Sheet: sheet}
}

func (*LauncherSystem) Name() string { return "launcher" }

func (*LauncherSystem) Access() system.Access {
	return system.Access{}.
		Read(kindPlayer).
		Write(kindLauncher, kindTransform, kindLaser, kindCollider, kindSprite, kindCleanup)
}

func (s *LauncherSystem) Run(_ context.Context, frame *system.Frame) error {
	type shot struct {
		at         physics.Vec2
		laser      components.Laser
		spriteSlot int
	}
	var shots []shot

	models.Join2[components.Launcher, components.Transform](frame.World).Each(
		func(e models.EntityID, l *components.Launcher, t *components.Transform) bool {
			if !l.Ready(frame.Delta) {
				return true
			}
			fromPlayer := models.Has[components.Player](frame.World, e)
			slot := 1
			if fromPlayer {
				slot = 0
			}
			shots = append(shots, shot{
				at: t.Position.XY(),
				laser: components.Laser{
					Direction:  l.Direction,
					Speed:      l.Speed,
					Damage:     l.Damage,
					FromPlayer: fromPlayer,
				},
				spriteSlot: slot,
			})
			return true
		})

	for _, sh := range shots {
		_, err := frame.World.Spawn(
			components.NewTransform(sh.at.X, sh.at.Y, 0.5, 0.25),
			sh.laser,
			components.Collider{HalfWidth: 4, HalfHeight: 4},
			components.Sprite{Sheet: s.Sheet, Index: sh.spriteSlot},
			components.CleanupTag{},
		)
		if err != nil {
			return err
		}
	}
	if len(shots) > 0 {
		frame.Log.Debug("lasers fired", log.Int("count", len(shots)), log.Tick(frame.Tick))
	}
	return nil
}
