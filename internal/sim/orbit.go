package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Orbit places each ball on a closed curve around the origin. The curve
// constants come from a hash of the ball index, so the same ball count always
// produces the same arrangement.
type Orbit struct {
	balls   []Ball
	speed   float64
	clump   float64
	elapsed float64
}

// NewOrbit derives the per-ball constants for n balls.
func NewOrbit(n int, speed, clump float64) *Orbit {
	o := &Orbit{
		balls: make([]Ball, n),
		speed: speed,
		clump: clump,
	}
	for i := range o.balls {
		o.balls[i] = orbitBall(i)
	}
	o.place()
	return o
}

// orbitBall hashes index i+1 into the ball's orbit constants.
func orbitBall(i int) Ball {
	h1 := hash31(float64(i + 1))
	h2 := hash33(h1)
	return Ball{
		Phase:      h1[0] * 2 * math.Pi,
		RateFactor: 0.1*math.Pi + h1[1]*(0.4*math.Pi-0.1*math.Pi),
		BaseRadius: 5 + h1[1]*(10-5),
		Toggle:     math.Floor(h2[0] * 2),
		Radius:     0.5 + h2[2]*(2-0.5),
	}
}

func (o *Orbit) Advance(dt float64, _ Surface) {
	o.elapsed += dt
	o.place()
}

func (o *Orbit) place() {
	for i := range o.balls {
		b := &o.balls[i]
		a := o.elapsed * o.speed * b.RateFactor
		b.Pos = r2.Vec{
			X: math.Cos(b.Phase+a) * b.BaseRadius * o.clump,
			Y: math.Sin(b.Phase+a*(1+b.Toggle)) * b.BaseRadius * o.clump,
		}
	}
}

func (o *Orbit) Len() int { return len(o.balls) }

func (o *Orbit) At(i int) (r2.Vec, float64) {
	return o.balls[i].Pos, o.balls[i].Radius
}

// Ball returns a copy of ball i.
func (o *Orbit) Ball(i int) Ball { return o.balls[i] }

// Elapsed is the simulated time in seconds.
func (o *Orbit) Elapsed() float64 { return o.elapsed }
