// Package game hosts the metaball effect in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/metaballs/internal/audio"
	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/driver"
	"github.com/iburimskiy/metaballs/internal/sim"
)

// Options configures the windowed viewer.
type Options struct {
	Logger    *slog.Logger
	SavePath  string // where W writes the active configuration
	AudioPath string // optional file to play on start
}

type Game struct {
	cfg     *config.Config
	opts    Options
	logger  *slog.Logger
	backend *shaderBackend
	driver  *driver.Driver
	player  *audio.Player

	// surface size from Layout
	width, height int

	// pointer edge detection
	wasInside bool

	showHUD bool
	lastErr error
}

// New builds the viewer. The effect starts once the window is visible.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g := &Game{
		cfg:     cfg,
		opts:    opts,
		logger:  opts.Logger,
		backend: &shaderBackend{},
		player:  audio.NewPlayer(cfg.Audio),
	}
	if err := g.rebuild(cfg.Effect); err != nil {
		return nil, err
	}
	if opts.AudioPath != "" {
		if err := g.player.Load(opts.AudioPath); err != nil {
			return nil, fmt.Errorf("loading audio: %w", err)
		}
		g.logger.Info("audio loaded", "path", opts.AudioPath)
	}
	return g, nil
}

// rebuild replaces the running effect with one built from e.
func (g *Game) rebuild(e config.Effect) error {
	d, err := driver.New(e, driver.Options{
		Backend:   g.backend,
		Logger:    g.logger,
		Pulse:     g.player,
		PulseGain: g.cfg.Audio.Gain,
	})
	if err != nil {
		return err
	}
	if g.driver != nil {
		g.driver.Close()
	}
	g.driver = d
	g.cfg.Effect = e
	return nil
}

func (g *Game) surface() sim.Surface {
	return sim.Surface{Width: float64(g.width), Height: float64(g.height)}
}

func (g *Game) Update() error {
	if err := g.handleHotkeys(); err != nil {
		return err
	}

	// A minimized window is the desktop equivalent of scrolling out of view.
	g.driver.SetVisible(!ebiten.IsWindowMinimized() && g.width > 0 && g.height > 0)

	g.feedPointer()
	g.driver.Tick(g.surface())
	return nil
}

// feedPointer turns the cursor position into enter, move and leave events.
func (g *Game) feedPointer() {
	if !g.cfg.Effect.EnableMouseInteraction {
		return
	}
	p := g.driver.Pointer()
	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && insideSurface(x, y, g.width, g.height)

	switch {
	case inside && !g.wasInside:
		p.Enter()
		p.Move(float64(x), float64(y))
	case inside:
		p.Move(float64(x), float64(y))
	case g.wasInside:
		p.Leave()
	}
	g.wasInside = inside
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.target = screen
	g.driver.Draw()
	g.backend.target = nil

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("FPS %.1f  TPS %.1f  %s  balls %d  ticks %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.driver.State(), g.driver.BallCount(), g.driver.Ticks())
	if g.driver.Disabled() {
		status += "  (no shader backend)"
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	audioLine := "O: open audio  C/Shift+C: colours  W: save  H: hide"
	if g.player.Loaded() {
		pos, total := g.player.Position()
		audioLine = fmt.Sprintf("%s / %s  level %.2f", formatDuration(pos), formatDuration(total), g.player.Current())
		if g.player.Paused() {
			audioLine += "  paused"
		}
	}
	ebitenutil.DebugPrintAt(screen, audioLine, 12, 28)

	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, 44)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops the effect and the audio.
func (g *Game) Close() {
	g.driver.Close()
	if err := g.player.Close(); err != nil {
		g.logger.Warn("closing audio", "error", err)
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, opts Options) error {
	g, err := New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Effect.TickRate)

	err = ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Effect.EnableTransparency,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
