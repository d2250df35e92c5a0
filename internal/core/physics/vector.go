package physics

import "math"

// Vec2 is a 2D vector.
type Vec2 struct{ X, Y float64 }

// Vec3 is a 3D vector; Z is only used for draw ordering.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// WithXY replaces X and Y, keeping Z.
func (v Vec3) WithXY(p Vec2) Vec3 { return Vec3{p.X, p.Y, v.Z} }
