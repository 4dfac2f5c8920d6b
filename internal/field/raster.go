package field

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/metaballs/internal/uniforms"
)

// Raster renders frames on the CPU into an image. It satisfies the frame
// driver's backend contract and is used for headless snapshots.
type Raster struct {
	img    *image.RGBA
	frames int
}

func NewRaster() *Raster {
	return &Raster{}
}

func (r *Raster) Init() error {
	r.frames = 0
	return nil
}

// Draw shades every pixel of a surface sized to u.Resolution.
func (r *Raster) Draw(u *uniforms.FrameUniforms) {
	w, h := int(u.Resolution[0]), int(u.Resolution[1])
	if w <= 0 || h <= 0 {
		return
	}
	if r.img == nil || r.img.Bounds().Dx() != w || r.img.Bounds().Dy() != h {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Fragment centres, y up.
			px := r2.Vec{X: float64(x) + 0.5, Y: float64(h-y) - 0.5}
			rgb, a := Shade(u, px)
			r.img.SetRGBA(x, y, color.RGBA{
				R: toByte(rgb[0]),
				G: toByte(rgb[1]),
				B: toByte(rgb[2]),
				A: toByte(a),
			})
		}
	}
	r.frames++
}

func (r *Raster) Release() {
	r.img = nil
}

// Image is the last drawn frame, or nil.
func (r *Raster) Image() *image.RGBA { return r.img }

// Frames is the number of frames drawn since Init.
func (r *Raster) Frames() int { return r.frames }

// WritePNG encodes the last drawn frame.
func (r *Raster) WritePNG(w io.Writer) error {
	if r.img == nil {
		return fmt.Errorf("no frame drawn")
	}
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}
