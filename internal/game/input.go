package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/metaballs/internal/config"
)

func (g *Game) handleHotkeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.report(g.openAudioDialog())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.report(g.pickColor(ebiten.IsKeyPressed(ebiten.KeyShift)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.report(g.saveConfig())
	}
	return nil
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	g.logger.Error("viewer action failed", "error", err)
}

func (g *Game) openAudioDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := g.player.Load(filename); err != nil {
		return err
	}
	g.logger.Info("audio loaded", "path", filename)
	return nil
}

// pickColor asks for a new primary colour, or the cursor colour when cursor
// is set, and restarts the effect with it.
func (g *Game) pickColor(cursor bool) error {
	e := g.cfg.Effect
	current, title := e.Color, "Ball Color"
	if cursor {
		current, title = e.CursorBallColor, "Cursor Ball Color"
	}
	initial, err := config.ParseColor(current)
	if err != nil {
		return err
	}

	picked, err := zenity.SelectColor(zenity.Title(title), zenity.Color(toNRGBA(initial)))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	if cursor {
		e.CursorBallColor = config.ColorString(picked)
	} else {
		e.Color = config.ColorString(picked)
	}
	if err := g.rebuild(e); err != nil {
		return err
	}
	g.logger.Info("colour changed", "color", e.Color, "cursor_ball_color", e.CursorBallColor)
	return nil
}

func (g *Game) saveConfig() error {
	if err := g.cfg.WriteYAML(g.opts.SavePath); err != nil {
		return err
	}
	g.logger.Info("config saved", "path", g.opts.SavePath)
	return nil
}
