package physics

// Bounds is an inclusive axis-aligned range used for lifecycle termination.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

var (
	// EnemyBounds is generous so enemies can leave the screen before being culled.
	EnemyBounds = Bounds{MinX: -500, MaxX: 2500, MinY: -500, MaxY: 2500}
	// LaserBounds culls projectiles as soon as they leave the arena.
	LaserBounds = Bounds{MinX: 0, MaxX: 2500, MinY: 0, MaxY: 2500}
)

// Contains reports whether (x, y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Clamp moves p to the nearest point inside b.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{X: clamp(p.X, b.MinX, b.MaxX), Y: clamp(p.Y, b.MinY, b.MaxY)}
}

// PlayableArea derives the arena rectangle from the screen size: 33%-67% of
// the width and 22%-78% of the height.
func PlayableArea(width, height float64) Bounds {
	return Bounds{
		MinX: width * 0.33,
		MaxX: width * 0.67,
		MinY: height * 0.22,
		MaxY: height * 0.78,
	}
}

// Rect is an AABB centred on (X, Y).
type Rect struct {
	X, Y                  float64
	HalfWidth, HalfHeight float64
}

// Overlaps reports whether two AABBs intersect. Touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	return abs(r.X-o.X) <= r.HalfWidth+o.HalfWidth && abs(r.Y-o.Y) <= r.HalfHeight+o.HalfHeight
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
