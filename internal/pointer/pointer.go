// Package pointer tracks the raw pointer and eases the cursor ball toward it.
package pointer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/sim"
)

// State is written by pointer events and read once per tick.
// Raw coordinates are surface relative with y growing downward; the eased
// position is reported with y growing upward, matching fragment coordinates.
type State struct {
	raw    r2.Vec
	inside bool
	seen   bool

	pos     r2.Vec
	last    r2.Vec
	started bool

	smoothing   float64
	interactive bool
	idle        config.CursorIdle
	speed       float64
}

// New returns a pointer state for the given effect.
func New(e *config.Effect) *State {
	return &State{
		smoothing:   e.HoverSmoothness,
		interactive: e.EnableMouseInteraction,
		idle:        e.CursorIdle,
		speed:       e.Speed,
	}
}

// Move records a pointer position relative to the surface's top-left corner.
// Ignored when mouse interaction is disabled.
func (p *State) Move(x, y float64) {
	if !p.interactive {
		return
	}
	p.raw = r2.Vec{X: x, Y: y}
	p.inside = true
	p.seen = true
}

// Enter marks the pointer as over the surface.
func (p *State) Enter() {
	if p.interactive {
		p.inside = true
	}
}

// Leave marks the pointer as outside the surface.
func (p *State) Leave() {
	p.inside = false
}

// Inside reports whether the pointer is over the surface.
func (p *State) Inside() bool { return p.inside }

// Position is the eased cursor ball position in bottom-up pixels.
func (p *State) Position() r2.Vec { return p.pos }

// Update advances the eased position one tick toward the current target and returns it.
func (p *State) Update(s sim.Surface, elapsed float64) r2.Vec {
	center := s.Center()
	if !p.interactive {
		p.pos = center
		return p.pos
	}
	if !p.started {
		p.pos = center
		p.last = center
		p.started = true
	}
	p.pos = Step(p.pos, p.target(s, elapsed), p.smoothing)
	return p.pos
}

func (p *State) target(s sim.Surface, elapsed float64) r2.Vec {
	switch {
	case p.inside && p.seen:
		p.last = r2.Vec{X: p.raw.X, Y: s.Height - p.raw.Y}
		return p.last
	case p.idle == config.CursorIdleOrbit:
		return IdlePath(s, elapsed*p.speed)
	default:
		return p.last
	}
}

// Step moves pos the fraction f of the remaining distance to target.
func Step(pos, target r2.Vec, f float64) r2.Vec {
	return r2.Add(pos, r2.Scale(f, r2.Sub(target, pos)))
}

// IdlePath is an ellipse around the surface centre used while the pointer is away.
func IdlePath(s sim.Surface, phase float64) r2.Vec {
	c := s.Center()
	return r2.Vec{
		X: c.X + math.Cos(phase)*s.Width*config.IdleOrbitFraction,
		Y: c.Y + math.Sin(phase)*s.Height*config.IdleOrbitFraction,
	}
}
