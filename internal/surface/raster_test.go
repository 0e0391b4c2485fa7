package surface

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"

	"AreaBoard/internal/state"
)

func square(r *Raster) {
	r.BeginPath()
	r.MoveTo(5, 5)
	r.LineTo(15, 5)
	r.LineTo(15, 15)
	r.LineTo(5, 15)
	r.ClosePath()
}

func TestRasterFill(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillColor(colornames.Red)
	square(r)
	r.Fill()

	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(1, 1))
}

func TestRasterAlpha(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillColor(colornames.Red)
	r.SetAlpha(0.5)
	square(r)
	r.Fill()

	assert.Equal(t, color.RGBA{R: 128, A: 128}, r.Image().RGBAAt(10, 10))
}

func TestRasterNaNAlphaPaintsNothing(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillColor(colornames.Red)
	r.SetAlpha(math.NaN())
	square(r)
	r.Fill()

	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(10, 10))
}

func TestRasterDestinationOut(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillColor(colornames.Red)
	r.FillRect(0, 0, 20, 20)
	r.SetComposite(state.DestinationOut)
	square(r)
	r.Fill()

	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(10, 10), "interior is punched out")
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(1, 1))
}

func TestRasterStrokeLeavesInteriorEmpty(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetStrokeColor(colornames.Blue)
	r.SetLineWidth(2)
	square(r)
	r.Stroke()

	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(10, 10))
	assert.NotZero(t, r.Image().RGBAAt(5, 10).A, "outline is painted")
}

func TestRasterClear(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetFillColor(colornames.Red)
	r.FillRect(0, 0, 4, 4)
	r.Clear()
	for _, b := range r.Image().Pix {
		if b != 0 {
			t.Fatal("pixels left after clear")
		}
	}
}

func TestRasterFillRectClipped(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetFillColor(colornames.Red)
	assert.NotPanics(t, func() { r.FillRect(-10, -10, 100, 100) })
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(3, 3))
}

func TestRasterDegeneratePath(t *testing.T) {
	r := NewRaster(10, 10)
	assert.NotPanics(t, func() {
		r.Fill()
		r.BeginPath()
		r.MoveTo(3, 3)
		r.ClosePath()
		r.Stroke()
		r.Fill()
	})
}

func TestRasterFlush(t *testing.T) {
	r := NewRaster(4, 4)
	n := 0
	r.SetOnFlush(func() { n++ })
	r.Flush()
	assert.Equal(t, 1, n)
	w, h := r.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
}

func TestAreaOnRaster(t *testing.T) {
	reg := state.NewRegistry()
	r := NewRaster(20, 20)
	a := state.NewArea(reg, "s", 0, r, nil, state.WithOpacity(1), state.WithShowLine(false))
	a.Load([]state.Coord{{5, 5}, {15, 5}, {15, 15}, {5, 15}})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(10, 10))

	a.Reverse()
	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(1, 1))

	a.Reverse()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Image().RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(1, 1))
}
