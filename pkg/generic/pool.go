package generic

import "sync"

// SlicePool recycles scratch slices. Slices come back empty; slices that grew
// past maxCap are dropped on Put so one huge frame does not pin memory.
type SlicePool[E any] struct {
	pool   sync.Pool
	maxCap int
}

func NewSlicePool[E any](initialCap, maxCap int) *SlicePool[E] {
	p := &SlicePool[E]{maxCap: maxCap}
	p.pool.New = func() any {
		s := make([]E, 0, initialCap)
		return &s
	}
	return p
}

func (p *SlicePool[E]) Get() []E {
	return (*p.pool.Get().(*[]E))[:0]
}

func (p *SlicePool[E]) Put(s []E) {
	if p.maxCap > 0 && cap(s) > p.maxCap {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}
