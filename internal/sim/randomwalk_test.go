package sim

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func newTestWalk(n int) (*RandomWalk, Surface) {
	s := Surface{Width: 800, Height: 600}
	return NewRandomWalk(n, 0.3, s, rand.New(rand.NewPCG(1, 2))), s
}

func TestRandomWalkSpawn(t *testing.T) {
	w, s := newTestWalk(50)
	if w.Len() != 50 {
		t.Fatalf("expected 50 balls, got %d", w.Len())
	}
	for i := 0; i < w.Len(); i++ {
		b := w.Ball(i)
		if math.Abs(b.Pos.X) > s.Width/2 || math.Abs(b.Pos.Y) > s.Height/2 {
			t.Errorf("ball %d spawned outside surface: %+v", i, b.Pos)
		}
		if b.Radius < 1.5 || b.Radius >= 3 {
			t.Errorf("ball %d radius %f outside [1.5,3)", i, b.Radius)
		}
		if math.Abs(b.Vel.X) > 0.3*50/2 || math.Abs(b.Vel.Y) > 0.3*50/2 {
			t.Errorf("ball %d velocity too large: %+v", i, b.Vel)
		}
	}
}

func TestRandomWalkReflection(t *testing.T) {
	s := Surface{Width: 100, Height: 100}
	w := &RandomWalk{
		balls: []Ball{{Pos: r2.Vec{X: 49, Y: -49.5}, Vel: r2.Vec{X: 120, Y: -60}, Radius: 2}},
		halfH: 50,
	}

	w.Advance(1.0/60, s)
	b := w.Ball(0)
	if b.Vel.X != -120 {
		t.Errorf("expected X velocity exactly inverted to -120, got %f", b.Vel.X)
	}
	if b.Vel.Y != 60 {
		t.Errorf("expected Y velocity exactly inverted to 60, got %f", b.Vel.Y)
	}

	// The next step moves back inside without flipping again.
	w.Advance(1.0/60, s)
	b = w.Ball(0)
	if b.Vel.X != -120 || b.Vel.Y != 60 {
		t.Errorf("velocity flipped twice: %+v", b.Vel)
	}
}

func TestRandomWalkStaysBounded(t *testing.T) {
	w, s := newTestWalk(50)
	const dt = 1.0 / 60

	for tick := 0; tick < 20000; tick++ {
		w.Advance(dt, s)
		for i := 0; i < w.Len(); i++ {
			b := w.Ball(i)
			slackX := math.Abs(b.Vel.X)*dt + 1e-9
			slackY := math.Abs(b.Vel.Y)*dt + 1e-9
			if math.Abs(b.Pos.X) > s.Width/2+slackX || math.Abs(b.Pos.Y) > s.Height/2+slackY {
				t.Fatalf("tick %d ball %d escaped: pos %+v vel %+v", tick, i, b.Pos, b.Vel)
			}
		}
	}
}

func TestRandomWalkShrinkingSurface(t *testing.T) {
	w := &RandomWalk{
		balls: []Ball{{Pos: r2.Vec{X: 300, Y: 0}, Vel: r2.Vec{X: -10, Y: 0}, Radius: 2}},
		halfH: 300,
	}
	small := Surface{Width: 200, Height: 200}

	// Already moving inward: no flip even though the ball is outside.
	for i := 0; i < 10; i++ {
		w.Advance(1.0/60, small)
		if w.Ball(0).Vel.X != -10 {
			t.Fatalf("step %d: inward ball was flipped", i)
		}
	}
}

func TestRandomWalkFieldUnits(t *testing.T) {
	s := Surface{Width: 400, Height: 200}
	w := &RandomWalk{
		balls: []Ball{{Pos: r2.Vec{X: 50, Y: -100}, Radius: 2.5}},
	}
	w.Advance(0, s)

	c, r := w.At(0)
	if math.Abs(c.X-0.5) > 1e-12 || math.Abs(c.Y+1) > 1e-12 {
		t.Errorf("expected centre (0.5,-1), got %+v", c)
	}
	if r != 2.5 {
		t.Errorf("expected radius 2.5, got %f", r)
	}
}

func TestRandomWalkEmptySurfaceIsNoop(t *testing.T) {
	w, _ := newTestWalk(3)
	before := w.Ball(0)
	w.Advance(1, Surface{})
	if w.Ball(0) != before {
		t.Error("advance on empty surface moved a ball")
	}
}

func BenchmarkRandomWalkAdvance(b *testing.B) {
	w, s := newTestWalk(50)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Advance(1.0/60, s)
	}
}
