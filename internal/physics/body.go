package physics

import (
	"errors"

	"github.com/golang/geo/r2"
)

// ErrDegenerateExtent is returned by NewBody when the visual extent is not strictly positive.
var ErrDegenerateExtent = errors.New("physics: body extent must be positive")

// Body is a moving circle. Position is the center; Velocity is in units per tick.
// Radius and extent are fixed at construction; the extent is only used for drawing.
type Body struct {
	Position r2.Point
	Velocity r2.Point
	radius   float64
	width    float64
	height   float64
}

// NewBody returns a body sized from its visual extent: radius = max(width, height) / 2.
func NewBody(position, velocity r2.Point, width, height float64) (*Body, error) {
	if !(width > 0) || !(height > 0) {
		return nil, ErrDegenerateExtent
	}
	return &Body{
		Position: position,
		Velocity: velocity,
		radius:   max(width, height) / 2,
		width:    width,
		height:   height,
	}, nil
}

// Radius returns the collision radius.
func (b *Body) Radius() float64 { return b.radius }

// Extent returns the drawn width and height.
func (b *Body) Extent() (width, height float64) { return b.width, b.height }

// Contains reports whether p lies strictly inside the body's circle.
func (b *Body) Contains(p r2.Point) bool {
	return p.Sub(b.Position).Norm() < b.radius
}
