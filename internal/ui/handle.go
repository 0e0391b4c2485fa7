package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"AreaBoard/internal/area"
)

const handleRadius = 5

var selectedStroke = color.NRGBA{A: 0xff}

// handleWidget is the on-screen marker of a point. It forwards taps and
// drags to the area package, which decides whether they apply.
type handleWidget struct {
	widget.BaseWidget
	board    *BoardWidget
	ev       area.HandleEvents
	circle   *canvas.Circle
	x, y     float64
	dragging bool
}

func newHandleWidget(b *BoardWidget, ev area.HandleEvents) *handleWidget {
	w := &handleWidget{
		board:  b,
		ev:     ev,
		circle: canvas.NewCircle(color.Black),
	}
	w.ExtendBaseWidget(w)
	w.Resize(fyne.NewSize(2*handleRadius, 2*handleRadius))
	w.Hide()
	return w
}

func (w *handleWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.circle)
}

func (w *handleWidget) MinSize() fyne.Size {
	return fyne.NewSize(2*handleRadius, 2*handleRadius)
}

// Tapped toggles the point's selection. Taps on handles of inactive layers
// fall through to the board.
func (w *handleWidget) Tapped(e *fyne.PointEvent) {
	if w.board.readOnly {
		return
	}
	if !w.ev.Toggle() {
		w.board.Tapped(&fyne.PointEvent{Position: w.Position().Add(e.Position)})
	}
}

// Dragged moves the point by the drag delta. The first event of a gesture
// also reports the drag start.
func (w *handleWidget) Dragged(e *fyne.DragEvent) {
	if w.board.readOnly {
		return
	}
	if !w.dragging {
		w.dragging = true
		w.ev.DragStart()
	}
	w.ev.Drag(w.x+float64(e.Dragged.DX), w.y+float64(e.Dragged.DY))
}

func (w *handleWidget) DragEnd() {
	if !w.dragging {
		return
	}
	w.dragging = false
	w.ev.DragEnd()
}

// pointHandle adapts handleWidget to state.Handle. Move would clash with
// fyne.CanvasObject.Move, so the two are separate types.
type pointHandle struct {
	w *handleWidget
}

func (h *pointHandle) Move(x, y float64) {
	h.w.x, h.w.y = x, y
	h.w.BaseWidget.Move(fyne.NewPos(float32(x)-handleRadius, float32(y)-handleRadius))
}

func (h *pointHandle) SetColor(c color.Color) {
	h.w.circle.FillColor = c
	h.w.circle.Refresh()
}

func (h *pointHandle) SetSelected(on bool) {
	if on {
		h.w.circle.StrokeColor = selectedStroke
		h.w.circle.StrokeWidth = 2
	} else {
		h.w.circle.StrokeColor = color.Transparent
		h.w.circle.StrokeWidth = 0
	}
	h.w.circle.Refresh()
}

func (h *pointHandle) Show()   { h.w.Show() }
func (h *pointHandle) Hide()   { h.w.Hide() }
func (h *pointHandle) Remove() { h.w.board.removeHandle(h.w) }
