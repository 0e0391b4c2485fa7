// Package surface provides drawing surfaces for areas: a raster that paints
// real pixels and a recorder that logs drawing calls.
package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"AreaBoard/internal/state"
)

type pathOp struct {
	kind int // opMove, opLine or opClose
	x, y float64
}

const (
	opMove = iota
	opLine
	opClose
)

// Raster is a pixel surface. Path coverage is rasterised with gg; the
// coverage is then composited onto the surface's own buffer so that both
// source-over and destination-out are available.
type Raster struct {
	img     *image.RGBA
	scratch *gg.Context

	mode      state.CompositeMode
	alpha     float64
	stroke    color.NRGBA
	fill      color.NRGBA
	lineWidth float64
	path      []pathOp

	onFlush func()
}

var (
	_ state.Surface = (*Raster)(nil)
	_ state.Flusher = (*Raster)(nil)
)

// NewRaster returns a transparent surface of the given size.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		scratch:   gg.NewContext(width, height),
		alpha:     1,
		stroke:    color.NRGBA{A: 0xff},
		fill:      color.NRGBA{A: 0xff},
		lineWidth: 1,
	}
}

// Image returns the surface's pixel buffer. It is updated in place by every
// drawing call.
func (r *Raster) Image() *image.RGBA { return r.img }

// SetOnFlush registers a callback run at the end of every redraw.
func (r *Raster) SetOnFlush(f func()) { r.onFlush = f }

// Flush implements state.Flusher.
func (r *Raster) Flush() {
	if r.onFlush != nil {
		r.onFlush()
	}
}

// Size implements state.Surface.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear makes every pixel transparent and discards the current path.
func (r *Raster) Clear() {
	clear(r.img.Pix)
	r.path = r.path[:0]
}

func (r *Raster) SetComposite(m state.CompositeMode) { r.mode = m }

func (r *Raster) SetAlpha(a float64) {
	switch {
	case a < 0, math.IsNaN(a):
		a = 0
	case a > 1:
		a = 1
	}
	r.alpha = a
}

func (r *Raster) SetStrokeColor(c color.Color) { r.stroke = toNRGBA(c) }
func (r *Raster) SetFillColor(c color.Color)   { r.fill = toNRGBA(c) }

func (r *Raster) SetLineWidth(w float64) {
	if w > 0 {
		r.lineWidth = w
	}
}

// FillRect paints a rectangle with the fill colour.
func (r *Raster) FillRect(x, y, w, h float64) {
	rect := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(r.img.Bounds())
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			r.blend(px, py, 0xff, r.fill)
		}
	}
}

func (r *Raster) BeginPath()          { r.path = r.path[:0] }
func (r *Raster) MoveTo(x, y float64) { r.path = append(r.path, pathOp{opMove, x, y}) }
func (r *Raster) LineTo(x, y float64) { r.path = append(r.path, pathOp{opLine, x, y}) }
func (r *Raster) ClosePath()          { r.path = append(r.path, pathOp{kind: opClose}) }

// Stroke outlines the current path. The path is kept for a following Fill.
func (r *Raster) Stroke() {
	r.paint(r.stroke, func(dc *gg.Context) error {
		dc.SetLineWidth(r.lineWidth)
		return dc.Stroke()
	})
}

// Fill fills the current path with the non-zero rule.
func (r *Raster) Fill() {
	r.paint(r.fill, func(dc *gg.Context) error {
		return dc.Fill()
	})
}

// paint renders the path's coverage on the scratch context and composites
// it with c.
func (r *Raster) paint(c color.NRGBA, draw func(dc *gg.Context) error) {
	if len(r.path) == 0 {
		return
	}
	dc := r.scratch
	dc.Clear()
	dc.ClearPath()
	for _, op := range r.path {
		switch op.kind {
		case opMove:
			dc.MoveTo(op.x, op.y)
		case opLine:
			dc.LineTo(op.x, op.y)
		case opClose:
			dc.ClosePath()
		}
	}
	dc.SetRGBA(1, 1, 1, 1)
	if err := draw(dc); err != nil {
		state.Logger().Debug("raster paint failed", "err", err)
		return
	}
	mask := gg.NewMaskFromAlpha(dc.Image())
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m := mask.At(x-b.Min.X, y-b.Min.Y); m != 0 {
				r.blend(x, y, m, c)
			}
		}
	}
}

// blend composites colour c with coverage m (0-255) at (x, y).
func (r *Raster) blend(x, y int, m uint8, c color.NRGBA) {
	sa := float64(m) / 255 * r.alpha * float64(c.A) / 255
	if sa == 0 {
		return
	}
	i := r.img.PixOffset(x, y)
	px := r.img.Pix[i : i+4 : i+4]
	switch r.mode {
	case state.DestinationOut:
		k := 1 - sa
		for j := range px {
			px[j] = uint8(float64(px[j])*k + 0.5)
		}
	default:
		k := 1 - sa
		px[0] = uint8(float64(c.R)*sa + float64(px[0])*k + 0.5)
		px[1] = uint8(float64(c.G)*sa + float64(px[1])*k + 0.5)
		px[2] = uint8(float64(c.B)*sa + float64(px[2])*k + 0.5)
		px[3] = uint8(255*sa + float64(px[3])*k + 0.5)
	}
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
