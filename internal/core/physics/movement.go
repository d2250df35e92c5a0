package physics

import "math"

// SeekVelocity returns the velocity of magnitude speed pointing from the
// current position toward the target.
func SeekVelocity(speed, targetX, targetY, currentX, currentY float64) (vx, vy float64) {
	angle := math.Atan2(targetY-currentY, targetX-currentX)
	return speed * math.Cos(angle), speed * math.Sin(angle)
}

// Integrate advances pos by vel over dt seconds.
func Integrate(pos, vel Vec2, dt float64) Vec2 {
	return Vec2{pos.X + vel.X*dt, pos.Y + vel.Y*dt}
}

// HeadingRotation is the z rotation that turns a sprite authored facing +Y
// toward dir, normalized to [0, 2π). A zero direction yields 0.
func HeadingRotation(dir Vec2) float64 {
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	r := math.Atan2(dir.Y, dir.X) - math.Pi/2
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}
