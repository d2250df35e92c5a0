package systems

import (
	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// GameplayBehaviors is the ordered gameplay pipeline. The dispatcher groups
// neighbours that do not conflict into parallel stages.
func GameplayBehaviors(laserSheet assets.Handle) []system.Behavior {
	return []system.Behavior{
		NewLauncherSystem(laserSheet),
		EnemyTrackingSystem{},
		MovementTrackingSystem{},
		EnemyMoveSystem{},
		TransformUpdateSystem{},
		LaserSystem{},
		CollisionSystem{},
		AttackedSystem{},
	}
}

// TransitionBehaviors is the pipeline run while the screen fades between
// levels.
func TransitionBehaviors() []system.Behavior {
	return []system.Behavior{FadeSystem{}}
}
