package physics

import "github.com/golang/geo/r2"

// Bounds returns the rectangle [0, width] x [0, height].
func Bounds(width, height float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height})
}

// Reflect keeps b inside bounds, inverting the velocity component of every edge it touches.
// Axes are handled X then Y; on each axis the upper edge is checked before the lower one,
// so a body wider than the bounds ends up clamped against the lower edge.
func Reflect(b *Body, bounds r2.Rect) {
	b.Position.X, b.Velocity.X = reflectAxis(b.Position.X, b.Velocity.X, b.radius, bounds.X.Lo, bounds.X.Hi)
	b.Position.Y, b.Velocity.Y = reflectAxis(b.Position.Y, b.Velocity.Y, b.radius, bounds.Y.Lo, bounds.Y.Hi)
}

func reflectAxis(pos, vel, r, lo, hi float64) (float64, float64) {
	if pos+r >= hi {
		pos = hi - r
		vel = -vel
	}
	if pos-r <= lo {
		pos = lo + r
		vel = -vel
	}
	return pos, vel
}
