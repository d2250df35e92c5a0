package models

type filter struct {
	without []storage
}

func (f filter) excluded(e EntityID) bool {
	for _, s := range f.without {
		if s.Has(e) {
			return true
		}
	}
	return false
}

func (f *filter) add(w *World, kinds []Kind) {
	for _, k := range kinds {
		if s, ok := w.storages[k]; ok {
			f.without = append(f.without, s)
		}
	}
}

// Query1 visits every live entity carrying A.
type Query1[A any] struct {
	w *World
	a *Storage[A]
	filter
}

func Join1[A any](w *World) *Query1[A] {
	a, _ := StorageOf[A](w)
	return &Query1[A]{w: w, a: a}
}

// Without excludes entities carrying any of kinds.
func (q *Query1[A]) Without(kinds ...Kind) *Query1[A] {
	q.add(q.w, kinds)
	return q
}

// Each calls fn for every match until fn returns false.
func (q *Query1[A]) Each(fn func(e EntityID, a *A) bool) {
	if q.a == nil {
		return
	}
	snap := q.a.snapshot()
	defer snapshotPool.Put(snap)
	for _, e := range snap {
		if !q.w.Alive(e) || q.excluded(e) {
			continue
		}
		a, ok := q.a.Get(e)
		if !ok {
			continue
		}
		if !fn(e, a) {
			return
		}
	}
}

// Entities collects the matching entity ids.
func (q *Query1[A]) Entities() []EntityID {
	var out []EntityID
	q.Each(func(e EntityID, _ *A) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Count returns the number of matches.
func (q *Query1[A]) Count() int {
	n := 0
	q.Each(func(EntityID, *A) bool { n++; return true })
	return n
}

// Query2 is the inner join of A and B, driven by A's order.
type Query2[A, B any] struct {
	w *World
	a *Storage[A]
	b *Storage[B]
	filter
}

func Join2[A, B any](w *World) *Query2[A, B] {
	a, _ := StorageOf[A](w)
	b, _ := StorageOf[B](w)
	return &Query2[A, B]{w: w, a: a, b: b}
}

func (q *Query2[A, B]) Without(kinds ...Kind) *Query2[A, B] {
	q.add(q.w, kinds)
	return q
}

func (q *Query2[A, B]) Each(fn func(e EntityID, a *A, b *B) bool) {
	if q.a == nil || q.b == nil {
		return
	}
	snap := q.a.snapshot()
	defer snapshotPool.Put(snap)
	for _, e := range snap {
		if !q.w.Alive(e) || q.excluded(e) {
			continue
		}
		a, ok := q.a.Get(e)
		if !ok {
			continue
		}
		b, ok := q.b.Get(e)
		if !ok {
			continue
		}
		if !fn(e, a, b) {
			return
		}
	}
}

func (q *Query2[A, B]) Count() int {
	n := 0
	q.Each(func(EntityID, *A, *B) bool { n++; return true })
	return n
}

// Query3 is the inner join of A, B and C, driven by A's order.
type Query3[A, B, C any] struct {
	w *World
	a *Storage[A]
	b *Storage[B]
	c *Storage[C]
	filter
}

func Join3[A, B, C any](w *World) *Query3[A, B, C] {
	a, _ := StorageOf[A](w)
	b, _ := StorageOf[B](w)
	c, _ := StorageOf[C](w)
	return &Query3[A, B, C]{w: w, a: a, b: b, c: c}
}

func (q *Query3[A, B, C]) Without(kinds ...Kind) *Query3[A, B, C] {
	q.add(q.w, kinds)
	return q
}

func (q *Query3[A, B, C]) Each(fn func(e EntityID, a *A, b *B, c *C) bool) {
	if q.a == nil || q.b == nil || q.c == nil {
		return
	}
	snap := q.a.snapshot()
	defer snapshotPool.Put(snap)
	for _, e := range snap {
		if !q.w.Alive(e) || q.excluded(e) {
			continue
		}
		a, ok := q.a.Get(e)
		if !ok {
			continue
		}
		b, ok := q.b.Get(e)
		if !ok {
			continue
		}
		c, ok := q.c.Get(e)
		if !ok {
			continue
		}
		if !fn(e, a, b, c) {
			return
		}
	}
}
