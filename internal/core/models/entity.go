package models

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// EntityID is an opaque entity handle. IDs are never reused within a World.
type EntityID uint64

func (e EntityID) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}

// Kind identifies a component or resource type. It is the xxhash of the
// fully qualified Go type name, so it is stable across runs and processes.
type Kind uint64

var kindCache sync.Map // reflect.Type -> Kind

// KindOf returns the Kind of T.
func KindOf[T any]() Kind {
	return kindOfType(reflect.TypeFor[T]())
}

func kindOfValue(v any) (Kind, reflect.Type) {
	t := reflect.TypeOf(v)
	return kindOfType(t), t
}

func kindOfType(t reflect.Type) Kind {
	if k, ok := kindCache.Load(t); ok {
		return k.(Kind)
	}
	k := Kind(xxhash.Sum64String(typeName(t)))
	kindCache.Store(t, k)
	return k
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
