package models

import (
	"reflect"

	"github.com/zeusync/waveshooter/pkg/generic"
)

var snapshotPool = generic.NewSlicePool[EntityID](64, 1<<16)

// storage is the type-erased view of a Storage used by the World.
type storage interface {
	Kind() Kind
	Name() string
	Has(EntityID) bool
	Len() int
	insertAny(EntityID, any) bool
	remove(EntityID) bool
	clear()
}

// Storage holds every component of type T. Iteration order is insertion order
// until a removal swaps the last entity into the removed slot.
//
// Storage does no locking of its own: concurrent access is made safe by the
// dispatcher, which never runs two behaviors that write the same kind at once.
type Storage[T any] struct {
	kind     Kind
	name     string
	data     map[EntityID]*T
	pos      map[EntityID]int
	entities []EntityID
}

func newStorage[T any]() *Storage[T] {
	return &Storage[T]{
		kind:     KindOf[T](),
		name:     typeName(reflect.TypeFor[T]()),
		data:     make(map[EntityID]*T),
		pos:      make(map[EntityID]int),
		entities: make([]EntityID, 0, 64),
	}
}

func (s *Storage[T]) Kind() Kind   { return s.kind }
func (s *Storage[T]) Name() string { return s.name }
func (s *Storage[T]) Len() int     { return len(s.entities) }

func (s *Storage[T]) Has(e EntityID) bool {
	_, ok := s.data[e]
	return ok
}

// Get returns a pointer to the stored component. The pointer must not be kept
// across ticks.
func (s *Storage[T]) Get(e EntityID) (*T, bool) {
	v, ok := s.data[e]
	return v, ok
}

// Insert attaches or replaces the component of e.
func (s *Storage[T]) Insert(e EntityID, value T) {
	if cur, ok := s.data[e]; ok {
		*cur = value
		return
	}
	v := value
	s.data[e] = &v
	s.pos[e] = len(s.entities)
	s.entities = append(s.entities, e)
}

func (s *Storage[T]) insertAny(e EntityID, value any) bool {
	v, ok := value.(T)
	if !ok {
		return false
	}
	s.Insert(e, v)
	return true
}

func (s *Storage[T]) remove(e EntityID) bool {
	i, ok := s.pos[e]
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	moved := s.entities[last]
	s.entities[i] = moved
	s.pos[moved] = i
	s.entities = s.entities[:last]
	delete(s.pos, e)
	delete(s.data, e)
	return true
}

func (s *Storage[T]) clear() {
	s.data = make(map[EntityID]*T)
	s.pos = make(map[EntityID]int)
	s.entities = s.entities[:0]
}

// snapshot copies the entity list into a pooled buffer; release it with
// snapshotPool.Put.
func (s *Storage[T]) snapshot() []EntityID {
	buf := snapshotPool.Get()
	return append(buf, s.entities...)
}
