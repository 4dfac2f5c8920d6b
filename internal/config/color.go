package config

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// RGB is a colour with components in [0,1].
type RGB [3]float64

// ParseColor decomposes a CSS colour string. "#RRGGBB" yields (R/255, G/255, B/255).
func ParseColor(str string) (RGB, error) {
	c, err := css.Parse(str)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", str, err)
	}
	return RGB{c.R, c.G, c.B}, nil
}

// MustParseColor is like ParseColor but panics on error. Only use it on validated input.
func MustParseColor(str string) RGB {
	c, err := ParseColor(str)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorString formats an arbitrary colour as "#rrggbb", dropping alpha.
func ColorString(clr color.Color) string {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette returns the parsed primary and cursor colours.
func (e *Effect) Palette() (primary, cursor RGB, err error) {
	if primary, err = ParseColor(e.Color); err != nil {
		return RGB{}, RGB{}, err
	}
	if cursor, err = ParseColor(e.CursorBallColor); err != nil {
		return RGB{}, RGB{}, err
	}
	return primary, cursor, nil
}
