package sim

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/metaballs/internal/config"
)

func TestOrbitConstantsDeterministic(t *testing.T) {
	a := NewOrbit(50, 0.3, 1)
	b := NewOrbit(50, 0.3, 1)

	for i := 0; i < a.Len(); i++ {
		ba, bb := a.Ball(i), b.Ball(i)
		if ba.Phase != bb.Phase || ba.RateFactor != bb.RateFactor ||
			ba.BaseRadius != bb.BaseRadius || ba.Toggle != bb.Toggle || ba.Radius != bb.Radius {
			t.Errorf("ball %d constants differ: %+v vs %+v", i, ba, bb)
		}
	}
}

func TestOrbitConstantRanges(t *testing.T) {
	o := NewOrbit(50, 0.3, 1)
	for i := 0; i < o.Len(); i++ {
		b := o.Ball(i)
		if b.Phase < 0 || b.Phase >= 2*math.Pi {
			t.Errorf("ball %d phase %f out of range", i, b.Phase)
		}
		if b.RateFactor < 0.1*math.Pi || b.RateFactor >= 0.4*math.Pi {
			t.Errorf("ball %d rate factor %f out of range", i, b.RateFactor)
		}
		if b.BaseRadius < 5 || b.BaseRadius >= 10 {
			t.Errorf("ball %d base radius %f out of range", i, b.BaseRadius)
		}
		if b.Toggle != 0 && b.Toggle != 1 {
			t.Errorf("ball %d toggle %f not binary", i, b.Toggle)
		}
		if b.Radius < 0.5 || b.Radius >= 2 {
			t.Errorf("ball %d radius %f out of range", i, b.Radius)
		}
	}
}

func TestOrbitPrefixStable(t *testing.T) {
	// Constants depend on the index only, not on the ball count.
	small := NewOrbit(5, 0.3, 1)
	large := NewOrbit(50, 0.3, 1)
	for i := 0; i < small.Len(); i++ {
		if small.Ball(i) != large.Ball(i) {
			t.Errorf("ball %d differs between counts", i)
		}
	}
}

func TestOrbitTrajectoryReproducible(t *testing.T) {
	a := NewOrbit(20, 0.5, 1.2)
	b := NewOrbit(20, 0.5, 1.2)
	s := Surface{Width: 640, Height: 480}

	for tick := 0; tick < 600; tick++ {
		a.Advance(1.0/60, s)
		b.Advance(1.0/60, s)
	}
	for i := 0; i < a.Len(); i++ {
		ca, ra := a.At(i)
		cb, rb := b.At(i)
		if ca != cb || ra != rb {
			t.Errorf("ball %d diverged: %+v/%f vs %+v/%f", i, ca, ra, cb, rb)
		}
	}
}

func TestOrbitClosedForm(t *testing.T) {
	const speed, clump = 0.3, 1.5
	o := NewOrbit(10, speed, clump)
	for tick := 0; tick < 90; tick++ {
		o.Advance(1.0/60, Surface{})
	}
	tm := o.Elapsed()

	for i := 0; i < o.Len(); i++ {
		b := o.Ball(i)
		wantX := math.Cos(b.Phase+tm*speed*b.RateFactor) * b.BaseRadius * clump
		wantY := math.Sin(b.Phase+tm*speed*b.RateFactor*(1+b.Toggle)) * b.BaseRadius * clump
		c, _ := o.At(i)
		if math.Abs(c.X-wantX) > 1e-9 || math.Abs(c.Y-wantY) > 1e-9 {
			t.Errorf("ball %d at %+v, want (%f,%f)", i, c, wantX, wantY)
		}
	}
}

func TestHashRange(t *testing.T) {
	for i := 1; i <= 1000; i++ {
		h1 := hash31(float64(i))
		h2 := hash33(h1)
		for k := 0; k < 3; k++ {
			if h1[k] < 0 || h1[k] >= 1 || h2[k] < 0 || h2[k] >= 1 {
				t.Fatalf("hash of %d out of [0,1): %v %v", i, h1, h2)
			}
		}
	}
}

func TestNewSelectsPolicy(t *testing.T) {
	e := config.Default().Effect
	s := Surface{Width: 100, Height: 100}
	rng := rand.New(rand.NewPCG(3, 4))

	if _, ok := New(&e, s, rng).(*RandomWalk); !ok {
		t.Error("expected random walk by default")
	}
	e.Motion = config.MotionOrbit
	sim := New(&e, s, rng)
	if _, ok := sim.(*Orbit); !ok {
		t.Error("expected orbit policy")
	}
	if sim.Len() != e.BallCount {
		t.Errorf("expected %d balls, got %d", e.BallCount, sim.Len())
	}
}

func TestNewCapsBallCount(t *testing.T) {
	e := config.Default().Effect
	e.BallCount = 80
	sim := New(&e, Surface{Width: 10, Height: 10}, rand.New(rand.NewPCG(1, 1)))
	if sim.Len() != config.MaxBalls {
		t.Errorf("expected %d balls, got %d", config.MaxBalls, sim.Len())
	}
}
