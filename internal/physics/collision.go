package physics

import "math"

// Collide resolves an overlap between a and b and reports whether they were touching.
// Both bodies have unit mass: the velocity components along the line of centers are
// exchanged, the tangential components are kept, and the pair is pushed apart by the
// full overlap, half each, so they do not stick together on the next tick.
func Collide(a, b *Body) bool {
	d := b.Position.Sub(a.Position)
	distance := d.Norm()
	if distance >= a.radius+b.radius {
		return false
	}

	// Coincident centers have no line of centers; fall back to the X axis.
	angle := 0.0
	if distance > 0 {
		angle = math.Atan2(d.Y, d.X)
	}
	sin, cos := math.Sincos(angle)

	// Rotate into the collision frame: X along the normal, Y tangential.
	an := cos*a.Velocity.X + sin*a.Velocity.Y
	at := cos*a.Velocity.Y - sin*a.Velocity.X
	bn := cos*b.Velocity.X + sin*b.Velocity.Y
	bt := cos*b.Velocity.Y - sin*b.Velocity.X

	// Swap normals and rotate back.
	a.Velocity.X = cos*bn - sin*at
	a.Velocity.Y = cos*at + sin*bn
	b.Velocity.X = cos*an - sin*bt
	b.Velocity.Y = cos*bt + sin*an

	overlap := a.radius + b.radius - distance
	moveX := cos * overlap / 2
	moveY := sin * overlap / 2
	a.Position.X -= moveX
	a.Position.Y -= moveY
	b.Position.X += moveX
	b.Position.Y += moveY
	return true
}
