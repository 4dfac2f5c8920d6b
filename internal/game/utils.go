package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/metaballs/internal/config"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toNRGBA converts a parsed config colour for use as a dialog default.
func toNRGBA(c config.RGB) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c[0])*255 + 0.5),
		G: uint8(clamp01(c[1])*255 + 0.5),
		B: uint8(clamp01(c[2])*255 + 0.5),
		A: 255,
	}
}

// insideSurface reports whether a cursor position lies on a w by h surface.
func insideSurface(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
