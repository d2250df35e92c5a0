package systems

import (
	"context"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/fade"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/system"
)

// FadeSystem advances every fader, mirrors its value into the entity's Tint
// and raises the shared fade status when a fader completes.
type FadeSystem struct{}

func (FadeSystem) Name() string { return "fade" }

func (FadeSystem) Access() system.Access {
	return system.Access{}.
		Write(kindFader, kindTint, kindFadeStatus)
}

func (FadeSystem) Run(_ context.Context, frame *system.Frame) error {
	w := frame.World
	status, ok := models.Resource[fade.Status](w)
	if !ok {
		return ErrMissingResource
	}
	models.Join1[fade.Fader](w).Each(func(e models.EntityID, f *fade.Fader) bool {
		if f.Advance(frame.Delta) {
			if status.Complete() {
				frame.Log.Debug("fade completed", log.Entity(uint64(e)), log.String("direction", f.Direction.String()))
			}
		}
		if tint, ok := models.Get[components.Tint](w, e); ok {
			tint.Alpha = f.Value
		}
		return true
	})
	return nil
}
