package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicePoolReturnsEmptySlices(t *testing.T) {
	p := NewSlicePool[int](4, 0)

	s := p.Get()
	assert.Empty(t, s)
	assert.GreaterOrEqual(t, cap(s), 4)

	s = append(s, 1, 2, 3)
	p.Put(s)

	assert.Empty(t, p.Get())
}

func TestSlicePoolDropsOversized(t *testing.T) {
	p := NewSlicePool[int](1, 8)
	big := make([]int, 0, 64)
	p.Put(big)

	// Whatever comes back must not be the oversized buffer.
	assert.LessOrEqual(t, cap(p.Get()), 8)
}
