package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(1, 2, 3)
	q.Enqueue(4)

	var got []int
	for !q.IsEmpty() {
		v, ok := q.Dequeue()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestQueueWrapAround(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 3; i++ {
		q.Enqueue(i)
	}
	_, _ = q.Dequeue()
	_, _ = q.Dequeue()
	for i := 3; i < 10; i++ {
		q.Enqueue(i)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, q.Values())
	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, head)
}

func TestQueueCloneIsIndependent(t *testing.T) {
	q := NewQueue("a", "b")
	c := q.Clone()
	_, _ = q.Dequeue()

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, []string{"a", "b"}, c.Values())
}
