package state

import "image/color"

// CompositeMode selects how painted pixels combine with what is already on
// the surface.
type CompositeMode int

const (
	// SourceOver paints new pixels over the existing ones.
	SourceOver CompositeMode = iota
	// DestinationOut erases existing pixels where new ones are painted.
	DestinationOut
)

func (m CompositeMode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	}
	return "unknown"
}

// Surface is the retained raster painting API an Area draws on. It mirrors
// an HTML canvas 2D context reduced to what the redraw needs.
type Surface interface {
	Size() (width, height int)
	Clear()
	SetComposite(mode CompositeMode)
	SetAlpha(alpha float64)
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	FillRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()
}

// Flusher is implemented by surfaces that need to know when a redraw is
// complete, for example to push the new frame to the screen.
type Flusher interface {
	Flush()
}

// Handle is the host-side interactive representation of a point. It is
// distinct from the stroked and filled polygon.
type Handle interface {
	Move(x, y float64)
	SetColor(c color.Color)
	SetSelected(selected bool)
	Show()
	Hide()
	Remove()
}

// HandleFactory builds the handle for a newly created point.
type HandleFactory interface {
	NewHandle(p *Point) Handle
}

// HandleFactoryFunc adapts a function to HandleFactory.
type HandleFactoryFunc func(p *Point) Handle

// NewHandle calls f(p).
func (f HandleFactoryFunc) NewHandle(p *Point) Handle { return f(p) }

type nopHandle struct{}

func (nopHandle) Move(float64, float64) {}
func (nopHandle) SetColor(color.Color)  {}
func (nopHandle) SetSelected(bool)      {}
func (nopHandle) Show()                 {}
func (nopHandle) Hide()                 {}
func (nopHandle) Remove()               {}
