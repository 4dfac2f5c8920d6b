// Package driver runs the metaball effect one tick at a time.
//
// A Driver is Idle until its surface becomes visible. Becoming visible
// initializes the backend and starts a fresh simulation; becoming hidden
// releases the backend and drops all simulation state, so the next start
// begins from scratch. The host calls Tick and Draw once per frame from a
// single goroutine; pointer events are written between ticks.
package driver

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/pointer"
	"github.com/iburimskiy/metaballs/internal/sim"
	"github.com/iburimskiy/metaballs/internal/uniforms"
)

// Backend draws packed frames. Init acquires GPU resources and Release frees them.
type Backend interface {
	Init() error
	Draw(u *uniforms.FrameUniforms)
	Release()
}

// Pulse reports a level in [0,1] that swells the cursor ball.
type Pulse interface {
	Level() float64
}

// State is the driver lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Driver.
type Options struct {
	Backend   Backend
	Logger    *slog.Logger // nil uses slog.Default()
	Pulse     Pulse        // optional
	PulseGain float64
}

type Driver struct {
	effect  config.Effect
	backend Backend
	logger  *slog.Logger
	pulse   Pulse
	gain    float64
	dt      float64

	state    State
	disabled bool
	closed   bool

	pointer *pointer.State
	packer  *uniforms.Packer
	sim     sim.Simulator
	rng     *rand.Rand
	ticks   uint64
	elapsed float64
	packed  bool
}

// New validates e and returns an idle driver.
func New(e config.Effect, opts Options) (*Driver, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("effect: %w", err)
	}
	if opts.Backend == nil {
		return nil, fmt.Errorf("driver: nil backend")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &Driver{
		effect:  e,
		backend: opts.Backend,
		logger:  logger,
		pulse:   opts.Pulse,
		gain:    opts.PulseGain,
		dt:      e.Timestep(),
		pointer: pointer.New(&e),
	}
	return d, nil
}

// Effect returns the configuration the driver was built from.
func (d *Driver) Effect() config.Effect { return d.effect }

// Pointer is the pointer state event handlers write into. It is replaced on every start.
func (d *Driver) Pointer() *pointer.State { return d.pointer }

// State is the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Disabled reports whether the backend failed to initialize. A disabled driver never runs.
func (d *Driver) Disabled() bool { return d.disabled }

// Ticks is the number of ticks since the last start.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Elapsed is the simulated time since the last start, in seconds.
func (d *Driver) Elapsed() float64 { return d.elapsed }

// BallCount is the number of simulated balls, 0 before the first tick.
func (d *Driver) BallCount() int {
	if d.sim == nil {
		return 0
	}
	return d.sim.Len()
}

// Frame is the last packed frame, or nil when nothing has been packed since the last start.
func (d *Driver) Frame() *uniforms.FrameUniforms {
	if !d.packed {
		return nil
	}
	return d.packer.Frame()
}

// SetVisible feeds the host's visibility signal.
func (d *Driver) SetVisible(visible bool) {
	switch {
	case visible && d.state == Idle:
		d.start()
	case !visible && d.state == Running:
		d.stop()
	}
}

func (d *Driver) start() {
	if d.disabled || d.closed {
		return
	}
	if err := d.backend.Init(); err != nil {
		// No rendering backend: the effect renders nothing, silently.
		d.logger.Debug("metaballs disabled", "error", err)
		d.disabled = true
		return
	}

	packer, err := uniforms.NewPacker(&d.effect)
	if err != nil {
		// Unreachable after Validate.
		d.backend.Release()
		d.logger.Debug("metaballs disabled", "error", err)
		d.disabled = true
		return
	}

	seed := d.effect.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	d.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	d.packer = packer
	d.pointer = pointer.New(&d.effect)
	d.sim = nil
	d.ticks = 0
	d.elapsed = 0
	d.packed = false
	d.state = Running
	d.logger.Debug("metaballs started", "motion", d.effect.Motion, "balls", d.effect.BallCount)
}

func (d *Driver) stop() {
	d.backend.Release()
	d.state = Idle
	d.sim = nil
	d.packer = nil
	d.packed = false
	d.logger.Debug("metaballs stopped", "ticks", d.ticks)
}

// Tick advances one fixed timestep on surface s and repacks the uniforms.
// It does nothing while idle or while the surface is empty.
func (d *Driver) Tick(s sim.Surface) {
	if d.state != Running || s.Empty() {
		return
	}
	if d.sim == nil {
		d.sim = sim.New(&d.effect, s, d.rng)
	}

	d.sim.Advance(d.dt, s)
	d.elapsed += d.dt
	d.ticks++

	mouse := d.pointer.Update(s, d.elapsed)

	var pulse float64
	if d.pulse != nil {
		pulse = d.gain * d.pulse.Level()
	}
	d.packer.Pack(uniforms.Source{
		Surface: s,
		Elapsed: d.elapsed,
		Mouse:   mouse,
		Sim:     d.sim,
		Pulse:   pulse,
	})
	d.packed = true
}

// Draw hands the last packed frame to the backend.
func (d *Driver) Draw() {
	if d.state != Running || !d.packed {
		return
	}
	d.backend.Draw(d.packer.Frame())
}

// Close stops the driver for good and releases the backend.
func (d *Driver) Close() {
	d.SetVisible(false)
	d.closed = true
}
