// Package palette holds the per-mode color themes shared by the desktop and
// terminal surfaces.
package palette

import (
	"fmt"
	"image/color"

	"pomodoro/internal/core/model"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the pair of background colors used while a mode is active.
type Theme struct {
	Root  string
	Frame string
}

var themes = map[model.Mode]Theme{
	model.ModePomodoro:   {Root: "#c95e54", Frame: "#ce6e66"},
	model.ModeShortBreak: {Root: "#5d8f94", Frame: "#6e9a9f"},
	model.ModeLongBreak:  {Root: "#527ba0", Frame: "#6588aa"},
}

// Foreground is the text color drawn on every theme.
const Foreground = "#ffffff"

// For returns the theme of mode; unknown modes get the Pomodoro theme.
func For(mode model.Mode) Theme {
	if theme, ok := themes[mode]; ok {
		return theme
	}
	return themes[model.ModePomodoro]
}

// RGBA parses a #rrggbb color.
func RGBA(hex string) (color.NRGBA, error) {
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	red, green, blue := parsed.RGB255()
	return color.NRGBA{R: red, G: green, B: blue, A: 255}, nil
}

// MustRGBA parses a #rrggbb color or panics.
func MustRGBA(hex string) color.NRGBA {
	parsed, err := RGBA(hex)
	if err != nil {
		panic(err)
	}
	return parsed
}
