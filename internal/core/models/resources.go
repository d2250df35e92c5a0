package models

// Resources are session-scoped singletons (wave tracker, fade status, playable
// area) stored next to the components so behaviors can declare access to them
// with the same Kind values.

// SetResource stores r under the Kind of T, replacing any previous value.
func SetResource[T any](w *World, r *T) {
	w.resMu.Lock()
	w.resources[KindOf[T]()] = r
	w.resMu.Unlock()
}

// Resource returns the resource stored for T.
func Resource[T any](w *World) (*T, bool) {
	w.resMu.RLock()
	defer w.resMu.RUnlock()
	r, ok := w.resources[KindOf[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// RemoveResource drops the resource stored for T.
func RemoveResource[T any](w *World) {
	w.resMu.Lock()
	delete(w.resources, KindOf[T]())
	w.resMu.Unlock()
}
