package ui

import (
	"fyne.io/fyne/v2"

	"AreaBoard/internal/state"
)

// Preference keys.
const (
	prefColor      = "color"
	prefPointColor = "pointColor"
	prefOpacity    = "opacity"
	prefFill       = "fill"
	prefShowLine   = "showLine"
	prefKeyDelete  = "keyDelete"
	prefLineWidth  = "lineWidth"
	prefWidth      = "width"
	prefHeight     = "height"
)

// Config is the application configuration: the board size and the style new
// layers start with.
type Config struct {
	Width      int
	Height     int
	Color      string
	PointColor string
	Opacity    float64
	Fill       bool
	ShowLine   bool
	KeyDelete  bool
	LineWidth  float64
	Reverse    bool
}

// DefaultConfig matches the area defaults on an 800x600 board.
func DefaultConfig() Config {
	d := state.DefaultOptions()
	return Config{
		Width:     800,
		Height:    600,
		Color:     "red",
		Opacity:   d.Opacity,
		Fill:      d.Fill,
		ShowLine:  d.ShowLine,
		KeyDelete: d.KeyDelete,
		LineWidth: d.LineWidth,
	}
}

// LoadConfig reads the persisted configuration, falling back to
// DefaultConfig for unset keys.
func LoadConfig(p fyne.Preferences) Config {
	d := DefaultConfig()
	return Config{
		Width:      p.IntWithFallback(prefWidth, d.Width),
		Height:     p.IntWithFallback(prefHeight, d.Height),
		Color:      p.StringWithFallback(prefColor, d.Color),
		PointColor: p.StringWithFallback(prefPointColor, d.PointColor),
		Opacity:    p.FloatWithFallback(prefOpacity, d.Opacity),
		Fill:       p.BoolWithFallback(prefFill, d.Fill),
		ShowLine:   p.BoolWithFallback(prefShowLine, d.ShowLine),
		KeyDelete:  p.BoolWithFallback(prefKeyDelete, d.KeyDelete),
		LineWidth:  p.FloatWithFallback(prefLineWidth, d.LineWidth),
	}
}

// Save persists c. Reverse is a per-session toggle and is not stored.
func (c Config) Save(p fyne.Preferences) {
	p.SetInt(prefWidth, c.Width)
	p.SetInt(prefHeight, c.Height)
	p.SetString(prefColor, c.Color)
	p.SetString(prefPointColor, c.PointColor)
	p.SetFloat(prefOpacity, c.Opacity)
	p.SetBool(prefFill, c.Fill)
	p.SetBool(prefShowLine, c.ShowLine)
	p.SetBool(prefKeyDelete, c.KeyDelete)
	p.SetFloat(prefLineWidth, c.LineWidth)
}

// Options converts c into area options. Invalid colours are reported
// before any area is built.
func (c Config) Options() ([]state.Option, error) {
	col, err := state.ParseColor(c.Color)
	if err != nil {
		return nil, err
	}
	opts := []state.Option{
		state.WithColor(col),
		state.WithOpacity(c.Opacity),
		state.WithFill(c.Fill),
		state.WithShowLine(c.ShowLine),
		state.WithKeyDelete(c.KeyDelete),
		state.WithLineWidth(c.LineWidth),
		state.WithReverse(c.Reverse),
	}
	if c.PointColor != "" {
		pc, err := state.ParseColor(c.PointColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, state.WithPointColor(pc))
	}
	return opts, nil
}
