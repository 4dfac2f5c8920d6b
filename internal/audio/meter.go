// Package audio plays a sound file and turns what is playing into a pulse level.
package audio

import "math"

// Meter turns sample windows into a smoothed loudness level in [0,1].
type Meter struct {
	smoothing float64
	level     float64
}

func NewMeter(smoothing float64) *Meter {
	return &Meter{smoothing: smoothing}
}

// Update folds one window of stereo samples into the level and returns it.
func (m *Meter) Update(samples [][2]float64) float64 {
	var mag float64
	if len(samples) > 0 {
		var sumSquares float64
		for _, s := range samples {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(len(samples)))
		mag = math.Pow(rms, 0.3) // compress so quiet passages still move the ball
	}
	m.level = m.smoothing*m.level + (1-m.smoothing)*mag
	m.level = clamp01(m.level)
	return m.level
}

// Level is the last computed level.
func (m *Meter) Level() float64 { return m.level }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
