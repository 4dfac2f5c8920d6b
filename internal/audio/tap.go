package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the effect can measure what is currently playing.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot copies up to the last n samples into dst, oldest first, and returns the filled prefix.
func (t *Tap) Snapshot(dst [][2]float64, n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	dst = dst[:0]
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		dst = append(dst, t.buffer[idx])
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return dst
}
