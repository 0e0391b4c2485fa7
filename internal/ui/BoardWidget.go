package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"AreaBoard/internal/area"
	"AreaBoard/internal/state"
	"AreaBoard/internal/surface"
)

// BoardWidget is the host surface: a fixed-size board with one raster image
// per layer and the point handles of every layer stacked above them.
type BoardWidget struct {
	widget.BaseWidget
	id       string
	width    int
	height   int
	layers   []*canvas.Image
	handles  []*handleWidget
	onTap    []func(x, y float64)
	readOnly bool

	// OnHover reports the pointer position; ok is false once it leaves.
	OnHover func(x, y float64, ok bool)
}

var (
	_ fyne.Widget       = (*BoardWidget)(nil)
	_ fyne.Tappable     = (*BoardWidget)(nil)
	_ desktop.Hoverable = (*BoardWidget)(nil)
	_ area.Host         = (*BoardWidget)(nil)
	_ state.Handle      = (*pointHandle)(nil)
	_ fyne.Draggable    = (*handleWidget)(nil)
	_ fyne.Tappable     = (*handleWidget)(nil)
)

// NewBoardWidget returns a board of the given pixel size.
func NewBoardWidget(width, height int) *BoardWidget {
	b := &BoardWidget{width: width, height: height}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) ID() string      { return b.id }
func (b *BoardWidget) SetID(id string) { b.id = id }

func (b *BoardWidget) PixelSize() (int, int) { return b.width, b.height }

// SetReadOnly makes the board ignore taps and handle gestures.
func (b *BoardWidget) SetReadOnly(on bool) { b.readOnly = on }

// NewSurface stacks a raster for a new layer above the existing ones.
func (b *BoardWidget) NewSurface(int) state.Surface {
	r := surface.NewRaster(b.width, b.height)
	img := canvas.NewImageFromImage(r.Image())
	img.ScaleMode = canvas.ImageScalePixels
	img.Resize(b.pixelSize())
	r.SetOnFlush(img.Refresh)
	b.layers = append(b.layers, img)
	b.Refresh()
	return r
}

// NewHandle creates the draggable marker for p.
func (b *BoardWidget) NewHandle(_ *state.Point, ev area.HandleEvents) state.Handle {
	w := newHandleWidget(b, ev)
	b.handles = append(b.handles, w)
	b.Refresh()
	return &pointHandle{w: w}
}

func (b *BoardWidget) removeHandle(w *handleWidget) {
	for i, h := range b.handles {
		if h == w {
			b.handles = append(b.handles[:i], b.handles[i+1:]...)
			break
		}
	}
	b.Refresh()
}

// OnTap registers a callback for taps on the board surface.
func (b *BoardWidget) OnTap(f func(x, y float64)) {
	b.onTap = append(b.onTap, f)
}

// Tapped reports the tap in board coordinates.
func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	if b.readOnly {
		return
	}
	for _, f := range b.onTap {
		f(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent)    { b.hover(e.Position, true) }
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) { b.hover(e.Position, true) }
func (b *BoardWidget) MouseOut()                        { b.hover(fyne.Position{}, false) }

func (b *BoardWidget) hover(pos fyne.Position, ok bool) {
	if b.OnHover != nil {
		b.OnHover(float64(pos.X), float64(pos.Y), ok)
	}
}

func (b *BoardWidget) pixelSize() fyne.Size {
	return fyne.NewSize(float32(b.width), float32(b.height))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	for _, img := range r.board.layers {
		objects = append(objects, img)
	}
	for _, h := range r.board.handles {
		objects = append(objects, h)
	}
	return objects
}

func (r *boardWidgetRenderer) Layout(fyne.Size) {
	size := r.board.pixelSize()
	r.background.Resize(size)
	for _, img := range r.board.layers {
		img.Move(fyne.NewPos(0, 0))
		img.Resize(size)
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return r.board.pixelSize() }

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.pixelSize())
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
