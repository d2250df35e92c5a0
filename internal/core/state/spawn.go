package state

import (
	"fmt"

	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/level"
	"github.com/zeusync/waveshooter/internal/core/physics"
)

// Draw order of spawned entities.
const (
	zBackground = 0
	zActors     = 0.3
	zOverlay    = 1
)

// prefab turns a spawn record into the component set of its template. Every
// entity it builds carries CleanupTag.
func prefab(s *Session, rec level.SpawnRecord) ([]any, error) {
	tmpl, err := s.Loader.Catalog().Template(rec.Kind.String())
	if err != nil {
		return nil, err
	}
	handles := s.Loader.Handles()
	pos := physics.Vec2{X: rec.X, Y: rec.Y}

	comps := []any{components.CleanupTag{}}
	switch rec.Kind {
	case level.Player:
		pos = s.PlayableArea.Clamp(pos)
		comps = append(comps,
			components.Player{},
			components.Sprite{Sheet: handles.PlayerSheet, Index: tmpl.SpriteIndex},
		)
	case level.Boss, level.SquareEnemy, level.FlyingEnemy:
		speed := 0.0
		if tmpl.Enemy != nil {
			speed = tmpl.Enemy.Speed
		}
		comps = append(comps,
			components.NewEnemy(speed),
			components.Sprite{Sheet: handles.EnemySheet, Index: tmpl.SpriteIndex},
		)
	default:
		return nil, fmt.Errorf("%w: %v", level.ErrUnknownKind, rec.Kind)
	}

	scale := tmpl.Scale
	if scale == 0 {
		scale = 1
	}
	comps = append(comps, components.NewTransform(pos.X, pos.Y, zActors, scale))

	if tmpl.Movement != nil {
		comps = append(comps, components.Movement{Speed: tmpl.Movement.Speed, LockOnSight: tmpl.Movement.LockOnSight})
	}
	if tmpl.Health > 0 {
		comps = append(comps, components.Health{Points: tmpl.Health})
	}
	if c := tmpl.Collider; c != nil {
		comps = append(comps, components.Collider{HalfWidth: c.HalfWidth, HalfHeight: c.HalfHeight})
	}
	if l := tmpl.Launcher; l != nil {
		dir, err := components.ParseDirection(l.Direction)
		if err != nil {
			return nil, fmt.Errorf("%s launcher: %w: %w", rec.Kind, assets.ErrInvalidTemplate, err)
		}
		comps = append(comps, components.Launcher{
			Direction: dir,
			Interval:  l.Interval,
			Cooldown:  l.Interval,
			Speed:     l.Speed,
			Damage:    l.Damage,
		})
	}
	return comps, nil
}

// spawnScenery places the camera at the screen centre and the background
// behind everything.
func spawnScenery(s *Session) error {
	h := s.Loader.Handles()
	cx, cy := s.Config.ScreenWidth/2, s.Config.ScreenHeight/2
	if _, err := s.World.Spawn(
		components.NewTransform(cx, cy, zOverlay, 1),
		components.Camera{Width: h.CameraWidth, Height: h.CameraHeight},
		components.CleanupTag{},
	); err != nil {
		return fmt.Errorf("spawn camera: %w", err)
	}
	if _, err := s.World.Spawn(
		components.NewTransform(cx, cy, zBackground, 1),
		components.Background{},
		components.Sprite{Sheet: h.Background},
		components.CleanupTag{},
	); err != nil {
		return fmt.Errorf("spawn background: %w", err)
	}
	return nil
}
