package level

import (
	"slices"
	"sync"

	"github.com/zeusync/waveshooter/internal/core/components"
	"github.com/zeusync/waveshooter/internal/core/models"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

var _ models.Observer = (*Tracker)(nil)

// Tracker counts live enemies and reports wave completion. It is fed by world
// lifecycle notifications, which makes it the only writer of the count.
type Tracker struct {
	mu        sync.Mutex
	enemy     models.Kind
	count     int
	loaded    bool
	signalled bool
	logger    log.Log
}

func NewTracker(logger log.Log) *Tracker {
	return &Tracker{
		enemy:  models.KindOf[components.Enemy](),
		logger: logger,
	}
}

// BeginLevel forgets the previous level's completion state.
func (t *Tracker) BeginLevel() {
	t.mu.Lock()
	t.loaded = false
	t.signalled = false
	t.mu.Unlock()
}

func (t *Tracker) EntityCreated(_ models.EntityID, kinds []models.Kind) {
	if !slices.Contains(kinds, t.enemy) {
		return
	}
	t.mu.Lock()
	t.count++
	t.loaded = true
	t.mu.Unlock()
}

func (t *Tracker) EntityDestroyed(e models.EntityID, kinds []models.Kind) {
	if !slices.Contains(kinds, t.enemy) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		t.logger.Warn("enemy count underflow ignored", log.Entity(uint64(e)))
		return
	}
	t.count--
}

// Count returns the number of live enemies.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Loaded reports whether the current level has had at least one enemy.
func (t *Tracker) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// PollWaveComplete returns true exactly once per level: the first poll after
// the count drops to zero on a loaded level.
func (t *Tracker) PollWaveComplete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded || t.count > 0 || t.signalled {
		return false
	}
	t.signalled = true
	return true
}
