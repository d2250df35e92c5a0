// Package systems contains the per-tick behaviors of the gameplay and
// transition pipelines.
package systems

import (
	"errors"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/fade"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/physics"
	"github.com/zeusync/waveshooter/internal/core/system"
)

var (
	kindTransform  = models.KindOf[components.Transform]()
	kindEnemy      = models.KindOf[components.Enemy]()
	kindMovement   = models.KindOf[components.Movement]()
	kindPlayer     = models.KindOf[components.Player]()
	kindLaser      = models.KindOf[components.Laser]()
	kindLauncher   = models.KindOf[components.Launcher]()
	kindCollider   = models.KindOf[components.Collider]()
	kindHealth     = models.KindOf[components.Health]()
	kindAttacked   = models.KindOf[components.Attacked]()
	kindSprite     = models.KindOf[components.Sprite]()
	kindCleanup    = models.KindOf[components.CleanupTag]()
	kindTint       = models.KindOf[components.Tint]()
	kindFader      = models.KindOf[fade.Fader]()
	kindFadeStatus = models.KindOf[fade.Status]()
)

// RegisterGameplay registers every component kind the gameplay pipeline uses.
func RegisterGameplay(w *models.World) {
	models.Register[components.Transform](w)
	models.Register[components.Enemy](w)
	models.Register[components.Movement](w)
	models.Register[components.Player](w)
	models.Register[components.Laser](w)
	models.Register[components.Launcher](w)
	models.Register[components.Collider](w)
	models.Register[components.Health](w)
	models.Register[components.Attacked](w)
	models.Register[components.Sprite](w)
	models.Register[components.CleanupTag](w)
	models.Register[components.Camera](w)
	models.Register[components.Background](w)
}

// RegisterTransition registers the kinds the transition pipeline uses.
func RegisterTransition(w *models.World) {
	models.Register[components.Transform](w)
	models.Register[components.Sprite](w)
	models.Register[components.Tint](w)
	models.Register[components.CleanupTag](w)
	models.Register[fade.Fader](w)
}

// deleteEntity requests deletion and logs, rather than returns, a double
// delete: another behavior got there first this tick.
func deleteEntity(frame *system.Frame, e models.EntityID, reason string) bool {
	if err := frame.World.Delete(e); err != nil {
		if errors.Is(err, models.ErrEntityNotFound) {
			frame.Log.Debug("entity already deleted", log.Entity(uint64(e)), log.String("reason", reason))
			return false
		}
		frame.Log.Warn("delete failed", log.Entity(uint64(e)), log.String("reason", reason), log.Error(err))
		return false
	}
	return true
}

// playerPositions collects the positions of every live player in iteration
// order.
func playerPositions(w *models.World) []physics.Vec2 {
	var out []physics.Vec2
	models.Join2[components.Player, components.Transform](w).Each(
		func(_ models.EntityID, _ *components.Player, t *components.Transform) bool {
			out = append(out, t.Position.XY())
			return true
		})
	return out
}
