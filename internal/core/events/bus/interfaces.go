package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus for game lifecycle
// signals.
//
//   - Type-based fan-out: handlers subscribe by Event.Type.
//   - Wildcard: handlers subscribed to Any receive every event.
//   - Synchronous delivery: Publish calls handlers on the caller goroutine, so
//     handlers must be quick and hand heavy work elsewhere.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - Metrics are collected only while at least one observer is registered.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Type and
	// to every wildcard subscriber.
	Publish(event Event) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	// PublishAsync publishes on a new goroutine. The channel receives the
	// joined handler error and is then closed.
	PublishAsync(event Event) <-chan error
	// PublishBatch publishes events in order and joins their errors.
	PublishBatch(events ...Event) error

	// Subscribe registers handler for eventType; Any subscribes to all types.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. A nil sub is ignored.
	Unsubscribe(sub Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of the counters.
	GetMetrics() EventBusMetrics
}

// Event is an immutable lifecycle message.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
	Metadata  map[string]any
}

// NewEvent stamps a new event with the current time.
func NewEvent(typ, source string, data any) Event {
	return Event{Type: typ, Source: source, Timestamp: time.Now(), Data: data}
}

// WithMeta returns a copy of e carrying an extra metadata entry.
func (e Event) WithMeta(key string, value any) Event {
	meta := make(map[string]any, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	e.Metadata = meta
	return e
}

type (
	// EventHandler is invoked once per delivered event.
	EventHandler func(event Event) error
	// EventFilter decides whether an event should be delivered.
	EventFilter func(event Event) bool
)

// Subscription is a registered handler.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Repeated calls are safe.
	Cancel() error
}

// EventBusObserver is told about every publish and delivery.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, took time.Duration)
}

// EventBusMetrics holds counters updated while observers are registered.
type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
