// Package components holds the plain data attached to entities. Behaviors in
// package systems are the only code that mutates them during a tick.
package components

import (
	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/physics"
)

// Transform places an entity. Z is only used for draw ordering.
type Transform struct {
	Position physics.Vec3
	Rotation float64
	Scale    physics.Vec3
}

func NewTransform(x, y, z, scale float64) Transform {
	return Transform{
		Position: physics.Vec3{X: x, Y: y, Z: z},
		Scale:    physics.Vec3{X: scale, Y: scale, Z: scale},
	}
}

// Enemy marks a hostile entity. Its velocity is recomputed every tick by the
// tracking behavior; speed is fixed at construction.
type Enemy struct {
	speed    float64
	Velocity physics.Vec2
}

func NewEnemy(speed float64) Enemy {
	if speed < 0 {
		speed = 0
	}
	return Enemy{speed: speed}
}

func (e Enemy) Speed() float64 { return e.speed }

// Player marks the entity enemies seek.
type Player struct{}

// CleanupTag marks entities that must not survive a state transition.
type CleanupTag struct{}

// Background and Camera are render-only entities spawned by the gameplay state.
type Background struct{}

type Camera struct {
	Width, Height float64
}

// Sprite is the render handle carried by spawn requests. The core never looks
// inside it.
type Sprite struct {
	Sheet assets.Handle
	Index int
}

// Tint is the overlay opacity driven by a fader.
type Tint struct {
	Alpha float64
}

// Collider is an AABB centred on the entity's transform.
type Collider struct {
	HalfWidth, HalfHeight float64
}

func (c Collider) Rect(t *Transform) physics.Rect {
	return physics.Rect{
		X:          t.Position.X,
		Y:          t.Position.Y,
		HalfWidth:  c.HalfWidth,
		HalfHeight: c.HalfHeight,
	}
}

// Health is removed from play when Points drops to zero.
type Health struct {
	Points int
}

// Attacked accumulates damage received this tick.
type Attacked struct {
	Damage int
}
