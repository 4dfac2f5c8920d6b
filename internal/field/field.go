// Package field is the CPU rendition of the metaball fragment program. It
// evaluates exactly what the GPU shader evaluates per pixel and is used by
// the headless renderer and to check the shader math.
package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/uniforms"
)

const (
	// Colour mix guard for an empty field.
	minTotal = 1e-4
	// Floor for the screen-space derivative in the adaptive edge.
	minDerivative = 1e-6
)

// Value is the field of a ball centred at c with radius r, sampled at p:
// r²/|p-c|². It diverges to +Inf at the centre, which is the expected
// metaball behaviour and is not clamped.
func Value(c r2.Vec, r float64, p r2.Vec) float64 {
	return r * r / r2.Norm2(r2.Sub(p, c))
}

// Sample is the field at one point split into its two sources.
type Sample struct {
	Balls  float64
	Cursor float64
}

// Total is the summed field.
func (s Sample) Total() float64 { return s.Balls + s.Cursor }

// CursorShare is the cursor ball's fraction of the field, used to mix colours.
func (s Sample) CursorShare() float64 {
	if math.IsInf(s.Cursor, 1) {
		return 1
	}
	return s.Cursor / max(s.Total(), minTotal)
}

// ToField converts a pixel coordinate (y up) to field units centred on the surface.
func ToField(px r2.Vec, u *uniforms.FrameUniforms) r2.Vec {
	res := r2.Vec{X: float64(u.Resolution[0]), Y: float64(u.Resolution[1])}
	scale := float64(u.AnimationSize) / res.Y
	return r2.Scale(scale, r2.Sub(px, r2.Scale(0.5, res)))
}

// At samples the field at pixel coordinate px (y up).
func At(u *uniforms.FrameUniforms, px r2.Vec) Sample {
	p := ToField(px, u)

	var s Sample
	for i := 0; i < min(u.BallCount, config.MaxBalls); i++ {
		x, y, r := u.Ball(i)
		s.Balls += Value(r2.Vec{X: float64(x), Y: float64(y)}, float64(r), p)
	}

	mouse := ToField(r2.Vec{X: float64(u.Mouse[0]), Y: float64(u.Mouse[1])}, u)
	s.Cursor = Value(mouse, float64(u.CursorBallSize), p)
	return s
}

// FixedEdge thresholds the field over a constant band around 1.
func FixedEdge(total float64) float64 {
	return Smoothstep(1-config.Softness*0.1, 1+config.Softness*0.1, total)
}

// AdaptiveEdge thresholds the field over a band scaled by its screen-space
// rate of change fw, giving roughly one pixel of anti-aliasing at any zoom.
func AdaptiveEdge(total, fw float64) float64 {
	fw = Clamp(fw, minDerivative, 1)
	return Smoothstep(-1, 1, (total-config.AdaptiveIsoValue)/fw)
}

// Shade returns the premultiplied colour and alpha of the pixel at px (y up).
func Shade(u *uniforms.FrameUniforms, px r2.Vec) (rgb [3]float64, alpha float64) {
	s := At(u, px)
	total := s.Total()

	var edge float64
	if u.Adaptive {
		dx := At(u, r2.Add(px, r2.Vec{X: 1})).Total()
		dy := At(u, r2.Add(px, r2.Vec{Y: 1})).Total()
		edge = AdaptiveEdge(total, math.Abs(dx-total)+math.Abs(dy-total))
	} else {
		edge = FixedEdge(total)
	}

	share := s.CursorShare()
	for i := range rgb {
		rgb[i] = Lerp(float64(u.Color[i]), float64(u.CursorColor[i]), share) * edge
	}

	alpha = 1
	if u.Transparent {
		alpha = edge
	}
	return rgb, alpha
}
