package area

import "AreaBoard/internal/state"

// Key names a key press delivered to Widget.Key. Values match fyne key names.
type Key string

// KeyDelete removes the selected points of the active layer.
const KeyDelete Key = "Delete"

// Host is the surface element areas are attached to. It positions drawing
// surfaces and point handles and turns native input into surface-local
// coordinates.
type Host interface {
	// ID returns the host's identity, or "" when none has been assigned.
	ID() string
	SetID(id string)
	PixelSize() (width, height int)
	// NewSurface stacks a new drawing surface for layer depth.
	NewSurface(depth int) state.Surface
	// NewHandle builds the visual handle of p. Gestures on the handle are
	// reported to ev.
	NewHandle(p *state.Point, ev HandleEvents) state.Handle
	// OnTap registers the callback for taps on the surface itself.
	OnTap(f func(x, y float64))
}

// HandleEvents receives the gestures recognised on a point handle.
type HandleEvents interface {
	DragStart()
	Drag(x, y float64)
	DragEnd()
	// Toggle flips the point's selection. It reports false when the point
	// is not on the active layer, in which case the tap belongs to the
	// surface.
	Toggle() bool
}
