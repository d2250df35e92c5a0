package bus

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Any is the wildcard event type.
const Any = "*"

type subscription struct {
	id        string
	eventType string
	handler   EventHandler
	active    atomic.Bool
	cancel    func()
	once      sync.Once
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.eventType }
func (s *subscription) IsActive() bool    { return s.active.Load() }

func (s *subscription) Cancel() error {
	s.once.Do(func() {
		s.active.Store(false)
		if s.cancel != nil {
			s.cancel()
		}
	})
	return nil
}

type inMemoryBus struct {
	mu sync.RWMutex
	// subs keeps subscriptions per event type in subscribe order, which is
	// also delivery order.
	subs      map[string][]*subscription
	count     int
	metrics   EventBusMetrics
	observers []EventBusObserver
}

// New creates an empty bus.
func New() EventBus {
	return &inMemoryBus{subs: make(map[string][]*subscription)}
}

func (b *inMemoryBus) Publish(event Event) error {
	return b.deliver(event)
}

func (b *inMemoryBus) PublishWithFilters(event Event, filters ...EventFilter) error {
	for _, f := range filters {
		if !f(event) {
			b.mu.Lock()
			if len(b.observers) > 0 {
				b.metrics.DroppedByFilters++
			}
			b.mu.Unlock()
			return nil
		}
	}
	return b.deliver(event)
}

func (b *inMemoryBus) PublishAsync(event Event) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- b.deliver(event)
		close(ch)
	}()
	return ch
}

func (b *inMemoryBus) PublishBatch(events ...Event) error {
	var errs []error
	for _, e := range events {
		if err := b.deliver(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if eventType == "" {
		return nil, ErrEmptyEventType
	}

	s := &subscription{id: uuid.NewString(), eventType: eventType, handler: handler}
	s.active.Store(true)
	s.cancel = func() { b.remove(s) }

	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], s)
	b.count++
	b.mu.Unlock()
	return s, nil
}

func (b *inMemoryBus) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[s.eventType]
	i := slices.Index(list, s)
	if i < 0 {
		return
	}
	// Copy on remove: deliveries in flight keep iterating their own snapshot.
	list = slices.Delete(slices.Clone(list), i, i+1)
	if len(list) == 0 {
		delete(b.subs, s.eventType)
	} else {
		b.subs[s.eventType] = list
	}
	b.count--
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

func (b *inMemoryBus) AddObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.observers, obs) {
		b.observers = append(slices.Clip(b.observers), obs)
	}
}

func (b *inMemoryBus) RemoveObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.Index(b.observers, obs); i >= 0 {
		b.observers = slices.Delete(slices.Clone(b.observers), i, i+1)
	}
}

func (b *inMemoryBus) GetMetrics() EventBusMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

func (b *inMemoryBus) deliver(event Event) error {
	if event.Type == "" {
		return ErrEmptyEventType
	}
	start := time.Now()

	// Elements of the stored slices are never overwritten, so iterating them
	// after unlocking is safe. Typed subscribers run before wildcard ones.
	b.mu.RLock()
	typed, wild := b.subs[event.Type], b.subs[Any]
	if event.Type == Any {
		wild = nil
	}
	observers := b.observers
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnPublish(event.Type, event)
	}

	var errs []error
	delivered := 0
	for _, list := range [2][]*subscription{typed, wild} {
		for _, s := range list {
			if !s.IsActive() {
				continue
			}
			delivered++
			if err := s.handler(event); err != nil {
				errs = append(errs, err)
			}
		}
	}
	all := errors.Join(errs...)

	if len(observers) == 0 {
		return all
	}
	took := time.Since(start)
	for _, obs := range observers {
		obs.OnDelivered(event.Type, delivered, all, took)
	}

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.DeliveredHandlers += uint64(delivered)
	if all != nil {
		b.metrics.Errors++
	}
	b.metrics.SubscribersActive = uint64(b.count)
	b.mu.Unlock()
	return all
}
