package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/metaballs/internal/config"
)

const windowSamples = 2048

// ErrUnsupported is returned for file types with no decoder.
var ErrUnsupported = errors.New("unsupported file type")

// Player loops one audio file through a Tap and reports its level.
// Level and Position are called from the game loop; the speaker goroutine
// only touches the tap.
type Player struct {
	cfg config.AudioConfig

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	meter    *Meter
	window   [][2]float64
	initDone bool
	paused   bool
}

func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		cfg:    cfg,
		meter:  NewMeter(cfg.Smoothing),
		window: make([][2]float64, 0, windowSamples),
	}
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Load stops any current file and starts looping path.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		// Re-init when sample rate changes
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeCurrent()

	p.tap = NewTap(beep.Loop(-1, streamer), p.cfg.RingSize)
	p.ctrl = &beep.Ctrl{Streamer: p.tap}
	p.file = f
	p.streamer = streamer
	p.format = format
	p.paused = false
	p.meter = NewMeter(p.cfg.Smoothing)

	speaker.Play(p.ctrl)
	return nil
}

// Loaded reports whether a file is playing or paused.
func (p *Player) Loaded() bool { return p.ctrl != nil }

// TogglePause pauses or resumes playback.
func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Level is the smoothed loudness of what was played most recently.
// It is 0 when nothing is loaded and decays to 0 while paused.
func (p *Player) Level() float64 {
	if p.tap == nil {
		return 0
	}
	if p.paused {
		return p.meter.Update(nil)
	}
	p.window = p.tap.Snapshot(p.window, windowSamples)
	return p.meter.Update(p.window)
}

// Current is the level from the last Level call, without advancing the meter.
func (p *Player) Current() float64 { return p.meter.Level() }

// Position returns the playback position within the file and its length.
func (p *Player) Position() (pos, total time.Duration) {
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	n, length := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(n), p.format.SampleRate.D(length)
}

// Close stops playback and closes the file.
func (p *Player) Close() error {
	if p.initDone {
		speaker.Clear()
	}
	return p.closeCurrent()
}

func (p *Player) closeCurrent() error {
	var errs []error
	if p.streamer != nil {
		errs = append(errs, p.streamer.Close())
		p.streamer = nil
	}
	if p.file != nil {
		errs = append(errs, p.file.Close())
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
	return errors.Join(errs...)
}
