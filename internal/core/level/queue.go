package level

import "github.com/zeusync/waveshooter/pkg/sequence"

// Queue is the FIFO of levels still to be played. Gameplay and Transition
// states share one queue by pointer; a run starts from a Clone of the loaded
// campaign so the campaign itself is never consumed.
type Queue struct {
	q *sequence.Queue[Layout]
}

func NewQueue(layouts ...Layout) *Queue {
	return &Queue{q: sequence.NewQueue(layouts...)}
}

func (q *Queue) Push(l Layout) { q.q.Enqueue(l) }

// PopNext removes and returns the next layout. ok is false once every level
// has been played.
func (q *Queue) PopNext() (Layout, bool) {
	return q.q.Dequeue()
}

// Peek returns the next layout without removing it.
func (q *Queue) Peek() (Layout, bool) { return q.q.Peek() }

func (q *Queue) Len() int { return q.q.Len() }

// Layouts returns the pending layouts in play order.
func (q *Queue) Layouts() []Layout { return q.q.Values() }

// Clone returns an independent queue with the same pending layouts.
func (q *Queue) Clone() *Queue {
	return &Queue{q: q.q.Clone()}
}
