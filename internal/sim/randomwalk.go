package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/config"
)

// RandomWalk moves balls with constant velocities inside a box centred on the
// origin, reflecting a velocity component when the ball leaves the box.
// Positions are kept in pixels and reported in units of half the surface height.
type RandomWalk struct {
	balls []Ball
	halfH float64
}

// NewRandomWalk spawns n balls uniformly over the surface.
func NewRandomWalk(n int, speed float64, s Surface, rng *rand.Rand) *RandomWalk {
	w := &RandomWalk{
		balls: make([]Ball, n),
		halfH: s.Height / 2,
	}
	for i := range w.balls {
		w.balls[i] = Ball{
			Pos: r2.Vec{
				X: (rng.Float64() - 0.5) * s.Width,
				Y: (rng.Float64() - 0.5) * s.Height,
			},
			Radius: rng.Float64()*config.BallRadiusRange + config.MinBallRadius,
			Vel: r2.Vec{
				X: (rng.Float64() - 0.5) * speed * config.RandomWalkVelocity,
				Y: (rng.Float64() - 0.5) * speed * config.RandomWalkVelocity,
			},
		}
	}
	return w
}

func (w *RandomWalk) Advance(dt float64, s Surface) {
	if s.Empty() {
		return
	}
	w.halfH = s.Height / 2
	hw, hh := s.Width/2, s.Height/2

	for i := range w.balls {
		b := &w.balls[i]
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))

		// Only flip while heading further out, otherwise a shrinking surface
		// would flip the ball back and forth every tick.
		if (b.Pos.X < -hw && b.Vel.X < 0) || (b.Pos.X > hw && b.Vel.X > 0) {
			b.Vel.X = -b.Vel.X
		}
		if (b.Pos.Y < -hh && b.Vel.Y < 0) || (b.Pos.Y > hh && b.Vel.Y > 0) {
			b.Vel.Y = -b.Vel.Y
		}
	}
}

func (w *RandomWalk) Len() int { return len(w.balls) }

func (w *RandomWalk) At(i int) (r2.Vec, float64) {
	b := w.balls[i]
	if w.halfH <= 0 {
		return r2.Vec{}, b.Radius
	}
	return r2.Scale(1/w.halfH, b.Pos), b.Radius
}

// Ball returns a copy of ball i in pixel space.
func (w *RandomWalk) Ball(i int) Ball { return w.balls[i] }
