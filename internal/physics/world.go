package physics

import "github.com/golang/geo/r2"

// World holds the fixed body collection and advances it one tick at a time.
// Order is preserved: it decides which pair is resolved first and which body a click hits.
type World struct {
	Bodies []*Body
}

// NewWorld returns a world holding bodies in the given order.
func NewWorld(bodies ...*Body) *World {
	return &World{Bodies: bodies}
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.Bodies)
}

// Step advances every body by one tick against bounds.
// Per body, in order: integrate, reflect off the edges, then collide with each body of
// greater index. Each pair is resolved once per tick and the result is visible to every
// later pair in the same tick, so the outcome depends on collection order.
func (w *World) Step(bounds r2.Rect) {
	for i, bi := range w.Bodies {
		bi.Position = bi.Position.Add(bi.Velocity)
		Reflect(bi, bounds)
		for _, bj := range w.Bodies[i+1:] {
			Collide(bi, bj)
		}
	}
}

// BodyAt returns the index of the first body whose circle strictly contains p.
func (w *World) BodyAt(p r2.Point) (int, bool) {
	for i, b := range w.Bodies {
		if b.Contains(p) {
			return i, true
		}
	}
	return -1, false
}
