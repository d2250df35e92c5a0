package systems

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// ContactDamage is what the player takes when an enemy rams it.
const ContactDamage = 1

type hitbox struct {
	id   models.EntityID
	rect physics.Rect
}

// CollisionSystem performs AABB hit-testing: player lasers against enemies,
// enemy lasers against the player and enemies against the player. Lasers are
// consumed on hit and victims receive an Attacked marker; a ramming enemy is
// destroyed.
type CollisionSystem struct{}

func (CollisionSystem) Name() string { return "collision" }

func (CollisionSystem) Access() system.Access {
	return system.Access{}.
		Read(kindTransform, kindCollider, kindLaser, kindPlayer, kindEnemy).
		Write(kindAttacked)
}

func (CollisionSystem) Run(_ context.Context, frame *system.Frame) error {
	w := frame.World
	players := hitboxes[components.Player](w)
	enemies := hitboxes[components.Enemy](w)
	damage := make(map[models.EntityID]int)

	models.Join3[components.Laser, components.Transform, components.Collider](w).Each(
		func(e models.EntityID, l *components.Laser, t *components.Transform, c *components.Collider) bool {
			targets := players
			if l.FromPlayer {
				targets = enemies
			}
			r := c.Rect(t)
			for _, target := range targets {
				if !w.Alive(target.id) || !r.Overlaps(target.rect) {
					continue
				}
				if deleteEntity(frame, e, "laser hit") {
					damage[target.id] += l.Damage
				}
				break
			}
			return true
		})

	for _, enemy := range enemies {
		if !w.Alive(enemy.id) {
			continue
		}
		for _, player := range players {
			if !enemy.rect.Overlaps(player.rect) {
				continue
			}
			if deleteEntity(frame, enemy.id, "enemy rammed player") {
				damage[player.id] += ContactDamage
			}
			break
		}
	}

	for id, dmg := range damage {
		if !w.Alive(id) {
			continue
		}
		if a, ok := models.Get[components.Attacked](w, id); ok {
			a.Damage += dmg
			continue
		}
		if err := models.Insert(w, id, components.Attacked{Damage: dmg}); err != nil {
			frame.Log.Warn("attack not recorded", log.Entity(uint64(id)), log.Int("damage", dmg), log.Tick(frame.Tick), log.Error(err))
		}
	}
	return nil
}

func hitboxes[M any](w *models.World) []hitbox {
	var out []hitbox
	models.Join3[M, components.Transform, components.Collider](w).Each(
		func(e models.EntityID, _ *M, t *components.Transform, c *components.Collider) bool {
			out = append(out, hitbox{id: e, rect: c.Rect(t)})
			return true
		})
	return out
}

// AttackedSystem is the cleanup pass: it applies accumulated damage, deletes
// defeated entities and clears the Attacked markers.
type AttackedSystem struct{}

func (AttackedSystem) Name() string { return "attacked" }

func (AttackedSystem) Access() system.Access {
	return system.Access{}.
		Write(kindAttacked, kindHealth)
}

func (AttackedSystem) Run(_ context.Context, frame *system.Frame) error {
	w := frame.World
	handled := models.Join1[components.Attacked](w).Entities()
	for _, e := range handled {
		a, ok := models.Get[components.Attacked](w, e)
		if !ok {
			continue
		}
		if h, ok := models.Get[components.Health](w, e); ok {
			h.Points -= a.Damage
			if h.Points <= 0 {
				deleteEntity(frame, e, "defeated")
			}
		}
		models.Remove[components.Attacked](w, e)
	}
	return nil
}
