// Package saver ties the physics world to the host: it spawns the cake collection once the
// assets are in and advances it one tick per frame against the host's current bounds.
package saver

import (
	"fmt"
	"math/rand/v2"

	"cake-saver/internal/assets"
	"cake-saver/internal/display"
	"cake-saver/internal/physics"

	"github.com/golang/geo/r2"
)

// BoundsFunc returns the current drawable area. It is called once at the start of every tick.
type BoundsFunc func() r2.Rect

// SpawnOptions controls the initial placement of the cakes.
type SpawnOptions struct {
	Count    int
	Margin   float64 // minimum distance of a spawn point from every edge
	MaxSpeed float64 // each velocity component is drawn from [-MaxSpeed, MaxSpeed)
	Seed     uint64  // 0 picks a random seed
}

// Cake is a body and the asset it is drawn with.
type Cake struct {
	Body  *physics.Body
	Asset int
}

// Context is the state of one screensaver session.
type Context struct {
	World   *physics.World
	Cakes   []Cake
	Bounds  BoundsFunc
	Display *display.State

	ticks uint64
}

// Spawn creates opts.Count cakes inside bounds, each showing a randomly chosen asset, and
// returns a Context ready to tick. The collection is fixed for the life of the Context.
func Spawn(list []assets.Asset, bounds BoundsFunc, opts SpawnOptions) (*Context, error) {
	if len(list) == 0 {
		return nil, assets.ErrNoAssets
	}
	if opts.Count <= 0 {
		return nil, fmt.Errorf("saver: cake count must be positive, got %d", opts.Count)
	}
	rng := newRand(opts.Seed)
	area := bounds()

	cakes := make([]Cake, opts.Count)
	bodies := make([]*physics.Body, opts.Count)
	for i := range cakes {
		pos := r2.Point{
			X: spawnCoord(rng, area.X.Lo, area.X.Hi, opts.Margin),
			Y: spawnCoord(rng, area.Y.Lo, area.Y.Hi, opts.Margin),
		}
		vel := r2.Point{
			X: (rng.Float64()*2 - 1) * opts.MaxSpeed,
			Y: (rng.Float64()*2 - 1) * opts.MaxSpeed,
		}
		idx := rng.IntN(len(list))
		body, err := physics.NewBody(pos, vel, float64(list[idx].Width()), float64(list[idx].Height()))
		if err != nil {
			return nil, fmt.Errorf("saver: asset %s: %w", list[idx].Name, err)
		}
		cakes[i] = Cake{Body: body, Asset: idx}
		bodies[i] = body
	}
	return &Context{
		World:   physics.NewWorld(bodies...),
		Cakes:   cakes,
		Bounds:  bounds,
		Display: display.New(),
	}, nil
}

// Tick snapshots the bounds and advances the world by one step.
func (c *Context) Tick() {
	c.World.Step(c.Bounds())
	c.ticks++
}

// Ticks returns how many ticks have run.
func (c *Context) Ticks() uint64 {
	return c.ticks
}

// spawnCoord picks a point in [lo+margin, hi-margin], collapsing to the center when the
// range is too small for the margin.
func spawnCoord(rng *rand.Rand, lo, hi, margin float64) float64 {
	span := hi - lo - 2*margin
	if span <= 0 {
		return (lo + hi) / 2
	}
	return lo + margin + rng.Float64()*span
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
