package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestSeekVelocityMagnitudeAndDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		speed := rng.Float64() * 300
		tx, ty := rng.Float64()*2000-500, rng.Float64()*2000-500
		cx, cy := rng.Float64()*2000-500, rng.Float64()*2000-500
		if tx == cx && ty == cy {
			continue
		}

		vx, vy := SeekVelocity(speed, tx, ty, cx, cy)

		assert.InDelta(t, speed, math.Hypot(vx, vy), 1e-6)
		if speed > 0 {
			// same direction as (target - current)
			dx, dy := tx-cx, ty-cy
			cos := (vx*dx + vy*dy) / (math.Hypot(vx, vy) * math.Hypot(dx, dy))
			assert.InDelta(t, 1.0, cos, 1e-9)
		}
	}
}

func TestSeekVelocityAxis(t *testing.T) {
	vx, vy := SeekVelocity(10, 0, 0, 100, 0)
	assert.InDelta(t, -10, vx, eps)
	assert.InDelta(t, 0, vy, eps)

	vx, vy = SeekVelocity(0, 5, 5, 0, 0)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestIntegrateSplitSteps(t *testing.T) {
	pos := Vec2{10, -4}
	vel := Vec2{120, -35}

	once := Integrate(pos, vel, 0.5)
	twice := Integrate(Integrate(pos, vel, 0.25), vel, 0.25)
	assert.True(t, once.ApproxEqual(twice, 1e-9))

	p := pos
	for i := 0; i < 60; i++ {
		p = Integrate(p, vel, 1.0/60)
	}
	assert.True(t, p.ApproxEqual(Vec2{130, -39}, 1e-9))
}

func TestHeadingRotation(t *testing.T) {
	assert.InDelta(t, math.Pi, HeadingRotation(Vec2{0, -1}), eps)
	assert.InDelta(t, 0, HeadingRotation(Vec2{0, 3}), eps)
	assert.InDelta(t, 3*math.Pi/2, HeadingRotation(Vec2{1, 0}), eps)
	assert.Zero(t, HeadingRotation(Vec2{}))
}

func TestBounds(t *testing.T) {
	assert.True(t, EnemyBounds.Contains(-500, 2500))
	assert.False(t, EnemyBounds.Contains(-500.1, 0))
	assert.False(t, LaserBounds.Contains(-490, 10))
	assert.True(t, LaserBounds.Contains(0, 0))
}

func TestPlayableArea(t *testing.T) {
	area := PlayableArea(1000, 500)
	assert.InDelta(t, 330, area.MinX, eps)
	assert.InDelta(t, 670, area.MaxX, eps)
	assert.InDelta(t, 110, area.MinY, eps)
	assert.InDelta(t, 390, area.MaxY, eps)
	assert.Equal(t, Vec2{330, 390}, area.Clamp(Vec2{0, 900}))
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, HalfWidth: 5, HalfHeight: 5}
	assert.True(t, a.Overlaps(Rect{X: 10, Y: 0, HalfWidth: 5, HalfHeight: 1}))
	assert.False(t, a.Overlaps(Rect{X: 10.5, Y: 0, HalfWidth: 5, HalfHeight: 1}))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.InDelta(t, 1, Vec2{3, 4}.Normalize().Len(), eps)
}
