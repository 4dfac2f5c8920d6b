// Package uniforms packs simulator, pointer and configuration state into the
// fixed layout read by the metaball shader.
package uniforms

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/sim"
)

// BallStride is the number of floats per ball: x, y, radius.
const BallStride = 3

// FrameUniforms is the per-frame snapshot handed to the shader. Slots past
// BallCount keep whatever an earlier frame wrote; readers must honour BallCount.
type FrameUniforms struct {
	Resolution     [2]float32
	Time           float32
	Mouse          [2]float32 // pixels, y up
	Color          [3]float32
	CursorColor    [3]float32
	AnimationSize  float32
	CursorBallSize float32
	ClumpFactor    float32
	BallCount      int
	Balls          [config.MaxBalls * BallStride]float32
	Transparent    bool
	Adaptive       bool
}

// Ball returns the centre and radius stored in slot i.
func (u *FrameUniforms) Ball(i int) (x, y, r float32) {
	j := i * BallStride
	return u.Balls[j], u.Balls[j+1], u.Balls[j+2]
}

// Source is everything Pack reads.
type Source struct {
	Surface sim.Surface
	Elapsed float64
	Mouse   r2.Vec
	Sim     sim.Simulator // may be nil
	Pulse   float64       // extra cursor radius, as a fraction of the configured size
}

// Packer owns the uniform buffer. It is written only by Pack and must be
// treated as read-only between Pack calls.
type Packer struct {
	buf        FrameUniforms
	baseCursor float64
}

// NewPacker prepares a buffer holding the immutable fields of e.
func NewPacker(e *config.Effect) (*Packer, error) {
	primary, cursor, err := e.Palette()
	if err != nil {
		return nil, err
	}
	p := &Packer{}
	p.buf.Color = rgb32(primary)
	p.buf.CursorColor = rgb32(cursor)
	p.buf.AnimationSize = float32(e.AnimationSize)
	p.buf.CursorBallSize = float32(e.CursorBallSize)
	p.buf.ClumpFactor = float32(e.ClumpFactor)
	p.buf.Transparent = e.EnableTransparency
	p.buf.Adaptive = e.Edge == config.EdgeAdaptive
	p.baseCursor = e.CursorBallSize
	return p, nil
}

func rgb32(c config.RGB) [3]float32 {
	return [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
}

// Pack writes src into the buffer and returns it. Balls past config.MaxBalls are ignored.
func (p *Packer) Pack(src Source) *FrameUniforms {
	u := &p.buf
	u.Resolution = [2]float32{float32(src.Surface.Width), float32(src.Surface.Height)}
	u.Time = float32(src.Elapsed)
	u.Mouse = [2]float32{float32(src.Mouse.X), float32(src.Mouse.Y)}
	u.CursorBallSize = float32(p.baseCursor * (1 + src.Pulse))

	n := 0
	if src.Sim != nil {
		n = min(src.Sim.Len(), config.MaxBalls)
	}
	for i := 0; i < n; i++ {
		c, r := src.Sim.At(i)
		j := i * BallStride
		u.Balls[j] = float32(c.X)
		u.Balls[j+1] = float32(c.Y)
		u.Balls[j+2] = float32(r)
	}
	u.BallCount = n
	return u
}

// Frame returns the most recently packed buffer.
func (p *Packer) Frame() *FrameUniforms { return &p.buf }

// Values writes the frame into dst keyed by shader uniform name and returns
// it, allocating dst when nil. Slices in dst alias u.
func (u *FrameUniforms) Values(dst map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, 12)
	}
	dst["Resolution"] = u.Resolution[:]
	dst["Time"] = u.Time
	dst["Mouse"] = u.Mouse[:]
	dst["Color"] = u.Color[:]
	dst["CursorColor"] = u.CursorColor[:]
	dst["AnimationSize"] = u.AnimationSize
	dst["CursorBallSize"] = u.CursorBallSize
	dst["ClumpFactor"] = u.ClumpFactor
	dst["BallCount"] = float32(u.BallCount)
	dst["Balls"] = u.Balls[:]
	dst["Transparency"] = flag(u.Transparent)
	dst["Adaptive"] = flag(u.Adaptive)
	return dst
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
