package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"

	"github.com/iburimskiy/metaballs/internal/config"
)

// counter emits samples 1, 2, 3, ... on both channels.
func counter() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			next++
			samples[i] = [2]float64{next, next}
		}
		return len(samples), true
	})
}

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func TestTapSnapshotOrder(t *testing.T) {
	tap := NewTap(counter(), 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf) // 10 samples through an 8-slot ring

	got := tap.Snapshot(nil, 4)
	want := []float64{7, 8, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i][0] != want[i] {
			t.Errorf("sample %d = %f, want %f", i, got[i][0], want[i])
		}
	}

	// Requests past the ring size are capped.
	if all := tap.Snapshot(nil, 100); len(all) != 8 || all[0][0] != 3 || all[7][0] != 10 {
		t.Errorf("unexpected full snapshot %v", all)
	}
}

func TestTapReusesDst(t *testing.T) {
	tap := NewTap(counter(), 16)
	tap.Stream(make([][2]float64, 16))
	dst := make([][2]float64, 0, 16)
	got := tap.Snapshot(dst, 16)
	if &got[0] != &dst[:1][0] {
		t.Error("snapshot did not reuse dst")
	}
}

func TestMeterSilence(t *testing.T) {
	m := NewMeter(0.6)
	if lvl := m.Update(make([][2]float64, 64)); lvl != 0 {
		t.Errorf("expected 0 for silence, got %f", lvl)
	}
	if lvl := m.Update(nil); lvl != 0 {
		t.Errorf("expected 0 for no samples, got %f", lvl)
	}
}

func TestMeterSmoothing(t *testing.T) {
	m := NewMeter(0.6)
	window := make([][2]float64, 64)
	tap := NewTap(constant(0.25), 64)
	tap.Stream(window)
	window = tap.Snapshot(window, 64)

	mag := math.Pow(0.25, 0.3)
	first := m.Update(window)
	if math.Abs(first-0.4*mag) > 1e-12 {
		t.Errorf("first level %f, want %f", first, 0.4*mag)
	}
	second := m.Update(window)
	if math.Abs(second-(0.6*first+0.4*mag)) > 1e-12 {
		t.Errorf("second level %f", second)
	}

	for i := 0; i < 200; i++ {
		m.Update(window)
	}
	if math.Abs(m.Level()-mag) > 1e-6 {
		t.Errorf("expected convergence to %f, got %f", mag, m.Level())
	}
}

func TestMeterClamps(t *testing.T) {
	m := NewMeter(0)
	if lvl := m.Update([][2]float64{{4, 4}}); lvl != 1 {
		t.Errorf("expected clamp to 1, got %f", lvl)
	}
}

func TestPlayerIdle(t *testing.T) {
	p := NewPlayer(config.Default().Audio)
	if p.Loaded() || p.Level() != 0 {
		t.Error("fresh player should be silent")
	}
	if pos, total := p.Position(); pos != 0 || total != 0 {
		t.Error("fresh player has a position")
	}
	p.TogglePause()
	if p.Paused() {
		t.Error("pause toggled without a file")
	}
	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestPlayerUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("la la"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(config.Default().Audio)
	if err := p.Load(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if err := p.Load(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}
