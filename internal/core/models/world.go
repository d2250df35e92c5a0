package models

import (
	"fmt"
	"reflect"
	"sync"
)

// Observer receives entity lifecycle signals. EntityCreated may be called from
// any behavior goroutine; EntityDestroyed is only called from Maintain.
type Observer interface {
	EntityCreated(e EntityID, kinds []Kind)
	EntityDestroyed(e EntityID, kinds []Kind)
}

// World is the entity/component database shared by every behavior.
//
// Storages must be registered before the first dispatch. Deletion is deferred:
// Delete marks the entity dead right away and Maintain drops its components at
// the tick boundary, so in-flight iterations are never invalidated.
type World struct {
	mu      sync.RWMutex
	nextID  EntityID
	alive   map[EntityID]struct{}
	pending []EntityID

	storages  map[Kind]storage
	observers []Observer

	resMu     sync.RWMutex
	resources map[Kind]any
}

func NewWorld() *World {
	return &World{
		nextID:    1,
		alive:     make(map[EntityID]struct{}),
		storages:  make(map[Kind]storage),
		resources: make(map[Kind]any),
	}
}

// Register returns the storage for T, creating it on first call.
func Register[T any](w *World) *Storage[T] {
	k := KindOf[T]()
	if s, ok := w.storages[k]; ok {
		return s.(*Storage[T])
	}
	s := newStorage[T]()
	w.storages[k] = s
	return s
}

// StorageOf returns the registered storage for T.
func StorageOf[T any](w *World) (*Storage[T], bool) {
	s, ok := w.storages[KindOf[T]()]
	if !ok {
		return nil, false
	}
	return s.(*Storage[T]), true
}

// IsRegistered reports whether a storage exists for k.
func (w *World) IsRegistered(k Kind) bool {
	_, ok := w.storages[k]
	return ok
}

// KindName returns the type name registered for k, or its numeric value.
func (w *World) KindName(k Kind) string {
	if s, ok := w.storages[k]; ok {
		return s.Name()
	}
	return fmt.Sprintf("kind(%x)", uint64(k))
}

func (w *World) AddObserver(o Observer) {
	w.mu.Lock()
	w.observers = append(w.observers, o)
	w.mu.Unlock()
}

// Spawn creates an entity carrying the given components (passed by value).
// Nothing is created if any component type is unregistered.
func (w *World) Spawn(components ...any) (EntityID, error) {
	targets := make([]storage, len(components))
	kinds := make([]Kind, len(components))
	for i, c := range components {
		if c == nil {
			return 0, ErrNilComponent
		}
		k, t := kindOfValue(c)
		s, ok := w.storages[k]
		if !ok {
			return 0, fmt.Errorf("spawn %s: %w", typeName(t), ErrUnregisteredKind)
		}
		targets[i] = s
		kinds[i] = k
	}

	w.mu.Lock()
	e := w.nextID
	w.nextID++
	w.alive[e] = struct{}{}
	observers := w.observers
	w.mu.Unlock()

	for i, s := range targets {
		s.insertAny(e, components[i])
	}
	for _, o := range observers {
		o.EntityCreated(e, kinds)
	}
	return e, nil
}

// Alive reports whether e exists and has not been deleted.
func (w *World) Alive(e EntityID) bool {
	w.mu.RLock()
	_, ok := w.alive[e]
	w.mu.RUnlock()
	return ok
}

// Delete marks e for removal at the next Maintain. Deleting an entity twice
// returns ErrEntityNotFound; callers treat that as transient.
func (w *World) Delete(e EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.alive[e]; !ok {
		return fmt.Errorf("delete %s: %w", e, ErrEntityNotFound)
	}
	delete(w.alive, e)
	w.pending = append(w.pending, e)
	return nil
}

// Pending returns the number of deletions waiting for Maintain.
func (w *World) Pending() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.pending)
}

// Maintain flushes deferred deletions and notifies observers. It must run
// between ticks, never while behaviors are iterating.
func (w *World) Maintain() int {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	observers := w.observers
	w.mu.Unlock()

	for _, e := range pending {
		kinds := make([]Kind, 0, 4)
		for k, s := range w.storages {
			if s.remove(e) {
				kinds = append(kinds, k)
			}
		}
		for _, o := range observers {
			o.EntityDestroyed(e, kinds)
		}
	}
	return len(pending)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Insert attaches or replaces a component on a live entity.
func Insert[T any](w *World, e EntityID, value T) error {
	s, ok := StorageOf[T](w)
	if !ok {
		return fmt.Errorf("insert %s: %w", typeName(reflect.TypeFor[T]()), ErrUnregisteredKind)
	}
	if !w.Alive(e) {
		return fmt.Errorf("insert into %s: %w", e, ErrEntityNotFound)
	}
	s.Insert(e, value)
	return nil
}

// Remove detaches T from e and reports whether it was present.
func Remove[T any](w *World, e EntityID) bool {
	s, ok := StorageOf[T](w)
	if !ok {
		return false
	}
	return s.remove(e)
}

// Get returns T for a live entity.
func Get[T any](w *World, e EntityID) (*T, bool) {
	s, ok := StorageOf[T](w)
	if !ok || !w.Alive(e) {
		return nil, false
	}
	return s.Get(e)
}

// Has reports whether a live entity carries T.
func Has[T any](w *World, e EntityID) bool {
	_, ok := Get[T](w, e)
	return ok
}
