package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type tag struct{}
type unknown struct{}

type recorder struct {
	created   map[EntityID][]Kind
	destroyed map[EntityID][]Kind
}

func newRecorder() *recorder {
	return &recorder{created: map[EntityID][]Kind{}, destroyed: map[EntityID][]Kind{}}
}

func (r *recorder) EntityCreated(e EntityID, kinds []Kind)   { r.created[e] = kinds }
func (r *recorder) EntityDestroyed(e EntityID, kinds []Kind) { r.destroyed[e] = kinds }

func newTestWorld() *World {
	w := NewWorld()
	Register[position](w)
	Register[velocity](w)
	Register[tag](w)
	return w
}

func TestKindOfIsStable(t *testing.T) {
	assert.Equal(t, KindOf[position](), KindOf[position]())
	assert.NotEqual(t, KindOf[position](), KindOf[velocity]())
	k, _ := kindOfValue(position{})
	assert.Equal(t, KindOf[position](), k)
}

func TestSpawnAndJoin(t *testing.T) {
	w := newTestWorld()

	a, err := w.Spawn(position{1, 1}, velocity{1, 0})
	require.NoError(t, err)
	_, err = w.Spawn(position{2, 2})
	require.NoError(t, err)
	c, err := w.Spawn(position{3, 3}, velocity{0, 1}, tag{})
	require.NoError(t, err)

	var visited []EntityID
	Join2[position, velocity](w).Each(func(e EntityID, p *position, v *velocity) bool {
		visited = append(visited, e)
		p.X += v.X
		return true
	})
	assert.Equal(t, []EntityID{a, c}, visited)

	p, ok := Get[position](w, a)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.X)

	visited = visited[:0]
	Join2[position, velocity](w).Without(KindOf[tag]()).Each(func(e EntityID, _ *position, _ *velocity) bool {
		visited = append(visited, e)
		return true
	})
	assert.Equal(t, []EntityID{a}, visited)
	assert.Equal(t, 3, Join1[position](w).Count())
}

func TestSpawnUnregisteredCreatesNothing(t *testing.T) {
	w := newTestWorld()
	_, err := w.Spawn(position{}, unknown{})
	assert.ErrorIs(t, err, ErrUnregisteredKind)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, Join1[position](w).Count())

	_, err = w.Spawn(nil)
	assert.ErrorIs(t, err, ErrNilComponent)
}

func TestDeleteIsDeferred(t *testing.T) {
	w := newTestWorld()
	rec := newRecorder()
	w.AddObserver(rec)

	ids := make([]EntityID, 0, 3)
	for i := 0; i < 3; i++ {
		e, err := w.Spawn(position{X: float64(i)}, tag{})
		require.NoError(t, err)
		ids = append(ids, e)
	}

	visits := 0
	Join1[position](w).Each(func(e EntityID, _ *position) bool {
		visits++
		// deleting mid-iteration must not disturb the walk
		for _, id := range ids {
			_ = w.Delete(id)
		}
		return true
	})
	assert.Equal(t, 1, visits, "deleted entities are skipped for the rest of the walk")
	assert.Equal(t, 3, w.Pending())

	s, _ := StorageOf[position](w)
	assert.Equal(t, 3, s.Len(), "components survive until Maintain")

	assert.Equal(t, 3, w.Maintain())
	assert.Equal(t, 0, s.Len())
	assert.Len(t, rec.created, 3)
	require.Len(t, rec.destroyed, 3)
	assert.ElementsMatch(t, []Kind{KindOf[position](), KindOf[tag]()}, rec.destroyed[ids[0]])
}

func TestDoubleDelete(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(position{})
	require.NoError(t, err)

	require.NoError(t, w.Delete(e))
	assert.ErrorIs(t, w.Delete(e), ErrEntityNotFound)
	w.Maintain()
	assert.ErrorIs(t, w.Delete(e), ErrEntityNotFound)
}

func TestInsertRemove(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(position{})
	require.NoError(t, err)

	require.NoError(t, Insert(w, e, velocity{X: 3}))
	assert.True(t, Has[velocity](w, e))
	require.NoError(t, Insert(w, e, velocity{X: 4}))
	v, _ := Get[velocity](w, e)
	assert.Equal(t, 4.0, v.X)

	assert.True(t, Remove[velocity](w, e))
	assert.False(t, Remove[velocity](w, e))
	assert.ErrorIs(t, Insert(w, e, unknown{}), ErrUnregisteredKind)

	require.NoError(t, w.Delete(e))
	assert.ErrorIs(t, Insert(w, e, velocity{}), ErrEntityNotFound)
}

func TestIterationOrderStableWithinTick(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 10; i++ {
		_, err := w.Spawn(position{X: float64(i)})
		require.NoError(t, err)
	}
	first := Join1[position](w).Entities()
	second := Join1[position](w).Entities()
	assert.Equal(t, first, second)
}

func TestResources(t *testing.T) {
	w := NewWorld()
	type counter struct{ N int }

	_, ok := Resource[counter](w)
	assert.False(t, ok)

	SetResource(w, &counter{N: 2})
	c, ok := Resource[counter](w)
	require.True(t, ok)
	c.N++
	again, _ := Resource[counter](w)
	assert.Equal(t, 3, again.N)

	RemoveResource[counter](w)
	_, ok = Resource[counter](w)
	assert.False(t, ok)
}

func BenchmarkJoin2(b *testing.B) {
	w := newTestWorld()
	for i := 0; i < 4096; i++ {
		if i%2 == 0 {
			_, _ = w.Spawn(position{}, velocity{X: 1})
		} else {
			_, _ = w.Spawn(position{})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Join2[position, velocity](w).Each(func(_ EntityID, p *position, v *velocity) bool {
			p.X += v.X
			return true
		})
	}
}
