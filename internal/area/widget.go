// Package area is the entry point for attaching polygon layers to host
// surfaces. It owns event routing: taps, key presses and handle gestures
// reach only the active layer of their surface.
package area

import (
	"errors"

	"github.com/google/uuid"

	"AreaBoard/internal/state"
)

// Widget creates layers on hosts and routes user interaction to them.
// Like the registry it wraps, it is used from the UI goroutine only.
type Widget struct {
	registry *state.Registry
	hosts    map[string]Host
	order    []string
}

// New returns a widget backed by reg. A nil reg gets a fresh registry.
func New(reg *state.Registry) *Widget {
	if reg == nil {
		reg = state.NewRegistry()
	}
	return &Widget{
		registry: reg,
		hosts:    make(map[string]Host),
	}
}

// Registry returns the layer registry.
func (w *Widget) Registry() *state.Registry { return w.registry }

// Create stacks a new layer on h and makes it active. Hosts without an id
// are given one.
func (w *Widget) Create(h Host, opts ...state.Option) (*state.Area, error) {
	id := h.ID()
	if id == "" {
		id = uuid.NewString()
		h.SetID(id)
	}
	w.registry.Ensure(id)

	depth := w.registry.NextDepth(id)
	a := state.NewArea(w.registry, id, depth, h.NewSurface(depth), &handleFactory{w: w, host: h}, opts...)
	if err := w.registry.Attach(a); err != nil {
		return nil, err
	}

	if _, ok := w.hosts[id]; !ok {
		w.hosts[id] = h
		w.order = append(w.order, id)
		h.OnTap(func(x, y float64) {
			w.Tap(id, x, y)
		})
	}
	return a, nil
}

// Layer makes layer n of h active and returns it.
func (w *Widget) Layer(h Host, n int) (*state.Area, error) {
	return w.registry.SetCurrent(h.ID(), n)
}

// Get returns layer n of h without changing the active layer.
func (w *Widget) Get(h Host, n int) (*state.Area, error) {
	return w.registry.Get(h.ID(), n)
}

// Active returns the active layer of h.
func (w *Widget) Active(h Host) (*state.Area, error) {
	return w.registry.Active(h.ID())
}

// Layers returns every layer of h, bottom to top.
func (w *Widget) Layers(h Host) []*state.Area {
	return w.registry.Layers(h.ID())
}

// Tap adds a point at (x, y) to the active layer of the surface.
func (w *Widget) Tap(surfaceID string, x, y float64) *state.Point {
	a, err := w.registry.Active(surfaceID)
	if err != nil {
		state.Logger().Debug("tap ignored", "surface", surfaceID, "err", err)
		return nil
	}
	return a.AddPoint(x, y)
}

// Key handles a key press for the whole application. Delete removes the
// selected points of every surface's active layer that has key deletion
// enabled. It returns the number of points removed.
func (w *Widget) Key(k Key) int {
	if k != KeyDelete {
		return 0
	}
	removed := 0
	for _, id := range w.order {
		a, err := w.registry.Active(id)
		if err != nil {
			continue
		}
		if !a.Options().KeyDelete {
			continue
		}
		removed += a.RemoveSelectedPoints()
	}
	if removed > 0 {
		state.Logger().Debug("selected points deleted", "count", removed)
	}
	return removed
}

// routable is the single active-layer gate for handle gestures.
func (w *Widget) routable(p *state.Point, gesture string) bool {
	if p.Area().IsActiveLayer() {
		return true
	}
	state.Logger().Debug("gesture on inactive layer ignored",
		"gesture", gesture, "surface", p.Area().SurfaceID(), "layer", p.Area().Depth())
	return false
}

type handleFactory struct {
	w    *Widget
	host Host
}

func (f *handleFactory) NewHandle(p *state.Point) state.Handle {
	return f.host.NewHandle(p, &pointEvents{w: f.w, p: p})
}

// pointEvents routes one handle's gestures through the widget's gate.
type pointEvents struct {
	w        *Widget
	p        *state.Point
	dragging bool
}

func (e *pointEvents) DragStart() {
	e.dragging = false
	if !e.w.routable(e.p, "drag-start") {
		return
	}
	e.dragging = true
	report(e.p.Area().BeginDrag(e.p))
}

func (e *pointEvents) Drag(x, y float64) {
	if !e.dragging || !e.w.routable(e.p, "drag") {
		return
	}
	report(e.p.Area().DragPoint(e.p, x, y))
}

func (e *pointEvents) DragEnd() {
	if !e.dragging {
		return
	}
	e.dragging = false
	if !e.w.routable(e.p, "drag-end") {
		return
	}
	report(e.p.Area().EndDrag(e.p))
}

func (e *pointEvents) Toggle() bool {
	if !e.w.routable(e.p, "toggle") {
		return false
	}
	report(e.p.Area().ToggleSelected(e.p))
	return true
}

// report logs gesture errors; nothing propagates out of an event handler.
func report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, state.ErrPointNotFound) {
		state.Logger().Debug("gesture on removed point", "err", err)
		return
	}
	state.Logger().Warn("gesture failed", "err", err)
}
