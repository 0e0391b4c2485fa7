package state

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Options is the style and behaviour configuration of an Area.
type Options struct {
	Color      color.Color
	PointColor color.Color // nil means Color
	Reverse    bool
	Opacity    float64
	ShowLine   bool
	Fill       bool
	KeyDelete  bool
	LineWidth  float64
	Handler    Handler
}

// DefaultOptions returns the configuration used when no Option overrides it.
func DefaultOptions() Options {
	return Options{
		Color:     colornames.Red,
		Opacity:   0.5,
		ShowLine:  true,
		Fill:      true,
		KeyDelete: true,
		LineWidth: 1,
		Handler:   NopHandler{},
	}
}

// Option configures an Area at creation.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.PointColor == nil {
		o.PointColor = o.Color
	}
	if o.Handler == nil {
		o.Handler = NopHandler{}
	}
	o.Opacity = clamp01(o.Opacity)
	return o
}

// WithColor sets the stroke and fill colour.
func WithColor(c color.Color) Option {
	return func(o *Options) { o.Color = c }
}

// WithPointColor sets the colour of point handles.
func WithPointColor(c color.Color) Option {
	return func(o *Options) { o.PointColor = c }
}

// WithReverse enables or disables cut-out rendering.
func WithReverse(on bool) Option {
	return func(o *Options) { o.Reverse = on }
}

// WithOpacity sets the opacity, clamped to [0, 1].
func WithOpacity(v float64) Option {
	return func(o *Options) { o.Opacity = v }
}

// WithShowLine enables or disables the outline stroke.
func WithShowLine(on bool) Option {
	return func(o *Options) { o.ShowLine = on }
}

// WithFill enables or disables filling the polygon.
func WithFill(on bool) Option {
	return func(o *Options) { o.Fill = on }
}

// WithKeyDelete enables or disables deleting selected points with the Delete key.
func WithKeyDelete(on bool) Option {
	return func(o *Options) { o.KeyDelete = on }
}

// WithLineWidth sets the outline width in pixels.
func WithLineWidth(w float64) Option {
	return func(o *Options) { o.LineWidth = w }
}

// WithHandler installs hooks.
func WithHandler(h Handler) Option {
	return func(o *Options) { o.Handler = h }
}

// clamp01 limits v to [0, 1]; NaN becomes 0.
func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
