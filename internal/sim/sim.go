// Package sim advances the metaball positions.
//
// Two motion policies exist: a bounded random walk, where each ball bounces
// inside the drawing surface, and a deterministic orbit field, where each
// ball's position is a closed-form function of elapsed time and constants
// hashed from its index.
package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/config"
)

// Surface is the drawable area in pixels.
type Surface struct {
	Width, Height float64
}

// Empty reports whether the surface has no drawable area.
func (s Surface) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Center returns the surface midpoint in pixels.
func (s Surface) Center() r2.Vec {
	return r2.Vec{X: s.Width / 2, Y: s.Height / 2}
}

// Ball is a single metaball.
type Ball struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64

	// Orbit constants, unused by the random walk.
	Phase      float64
	RateFactor float64
	BaseRadius float64
	Toggle     float64
}

// Simulator owns the balls and moves them each tick.
type Simulator interface {
	// Advance moves every ball by one step of dt seconds.
	Advance(dt float64, s Surface)
	// Len is the number of balls.
	Len() int
	// At returns the centre of ball i in field units and its radius.
	At(i int) (center r2.Vec, radius float64)
}

// New builds the simulator selected by e.Motion. rng is only used by the random walk.
func New(e *config.Effect, s Surface, rng *rand.Rand) Simulator {
	n := min(e.BallCount, config.MaxBalls)
	if e.Motion == config.MotionOrbit {
		return NewOrbit(n, e.Speed, e.ClumpFactor)
	}
	return NewRandomWalk(n, e.Speed, s, rng)
}
