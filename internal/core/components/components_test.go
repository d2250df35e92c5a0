package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/waveshooter/internal/core/physics"
)

func TestEnemySpeedIsReadOnly(t *testing.T) {
	assert.Equal(t, 3.5, NewEnemy(3.5).Speed())
	assert.Zero(t, NewEnemy(-1).Speed())
}

func TestMovementLockIsImmutable(t *testing.T) {
	m := Movement{Speed: 10, LockOnSight: true}
	m.NextMove(0, -100, 0, 0)

	dir, ok := m.LockedDirection()
	require.True(t, ok)
	assert.True(t, dir.ApproxEqual(physics.Vec2{Y: -1}, 1e-9))
	assert.True(t, m.Velocity.ApproxEqual(physics.Vec2{Y: -10}, 1e-9))

	// a later sighting in another direction changes nothing
	m.NextMove(100, 0, 0, 0)
	assert.True(t, m.Velocity.ApproxEqual(physics.Vec2{Y: -10}, 1e-9))
	assert.ErrorIs(t, m.LockDirection(physics.Vec2{X: 1}), ErrDirectionLocked)
}

func TestMovementSeeksWithoutLock(t *testing.T) {
	m := Movement{Speed: 5}
	m.NextMove(10, 0, 0, 0)
	assert.True(t, m.Velocity.ApproxEqual(physics.Vec2{X: 5}, 1e-9))
	_, locked := m.LockedDirection()
	assert.False(t, locked)
}

func TestDirectionStep(t *testing.T) {
	assert.Equal(t, physics.Vec2{X: -500}, Left.Step(500))
	assert.Equal(t, physics.Vec2{X: 2, Y: -2}, RightDown.Step(2))
	assert.Panics(t, func() { Direction(42).Step(1) })
}

func TestDirectionText(t *testing.T) {
	for d := Left; d <= RightDown; d++ {
		b, err := d.MarshalText()
		require.NoError(t, err)
		var back Direction
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, d, back)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
	d, err := ParseDirection("Left-Up")
	require.NoError(t, err)
	assert.Equal(t, LeftUp, d)
}

func TestLauncherReady(t *testing.T) {
	l := Launcher{Interval: 0.5}
	assert.True(t, l.Ready(0.1), "fires immediately when cooldown is zero")
	assert.False(t, l.Ready(0.25))
	assert.True(t, l.Ready(0.25))
	assert.False(t, (&Launcher{}).Ready(1))
}
