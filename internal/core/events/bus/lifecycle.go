package bus

import (
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

var _ models.Observer = (*WorldObserver)(nil)

// WorldObserver republishes world lifecycle notifications on the bus. It may
// be called from behavior goroutines; the bus is safe for that.
type WorldObserver struct {
	bus    EventBus
	world  *models.World
	source string
	logger log.Log
}

func NewWorldObserver(b EventBus, w *models.World, source string, logger log.Log) *WorldObserver {
	return &WorldObserver{bus: b, world: w, source: source, logger: logger}
}

func (o *WorldObserver) EntityCreated(e models.EntityID, kinds []models.Kind) {
	o.publish(EntityCreated, e, kinds)
}

func (o *WorldObserver) EntityDestroyed(e models.EntityID, kinds []models.Kind) {
	o.publish(EntityDestroyed, e, kinds)
}

func (o *WorldObserver) publish(typ string, e models.EntityID, kinds []models.Kind) {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = o.world.KindName(k)
	}
	payload := EntityPayload{Entity: uint64(e), Components: names}
	if err := o.bus.Publish(NewEvent(typ, o.source, payload)); err != nil {
		o.logger.Warn("lifecycle handler failed", log.Event(typ), log.Entity(uint64(e)), log.Error(err))
	}
}
