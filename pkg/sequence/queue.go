package sequence

// Queue is a FIFO queue backed by a growable ring buffer.
// It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
	size  int
}

func NewQueue[T any](values ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, v := range values {
		q.Enqueue(v)
	}
	return q
}

func (q *Queue[T]) Enqueue(value T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = value
	q.size++
}

func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	value := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return value, true
}

func (q *Queue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Values returns the queued values in dequeue order without consuming them.
func (q *Queue[T]) Values() []T {
	out := make([]T, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.items[(q.head+i)%len(q.items)]
	}
	return out
}

// Clone returns an independent queue holding the same values in the same order.
func (q *Queue[T]) Clone() *Queue[T] {
	return NewQueue(q.Values()...)
}

func (q *Queue[T]) grow() {
	capacity := len(q.items) * 2
	if capacity == 0 {
		capacity = 4
	}
	items := make([]T, capacity)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
