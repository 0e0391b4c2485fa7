package state

import (
	"fmt"
	"image/color"
	"log/slog"
)

// Area is one polygon layer bound to a host surface. It owns its point list
// and its drawing surface.
//
// An Area is not safe for concurrent use; every call is expected to come
// from the UI goroutine.
type Area struct {
	surfaceID string
	depth     int
	registry  *Registry
	surface   Surface
	handles   HandleFactory
	opts      Options

	points   []*Point
	hidden   bool
	revision uint64
}

// NewArea builds an area at layer depth on the host surface surfaceID. The
// area is not reachable through the registry until it is attached.
func NewArea(reg *Registry, surfaceID string, depth int, s Surface, handles HandleFactory, opts ...Option) *Area {
	if handles == nil {
		handles = HandleFactoryFunc(func(*Point) Handle { return nopHandle{} })
	}
	return &Area{
		surfaceID: surfaceID,
		depth:     depth,
		registry:  reg,
		surface:   s,
		handles:   handles,
		opts:      NewOptions(opts...),
	}
}

// SurfaceID returns the identifier of the host surface.
func (a *Area) SurfaceID() string { return a.surfaceID }

// Depth returns the area's layer index on its host surface.
func (a *Area) Depth() int { return a.depth }

// Surface returns the drawing surface the area paints on.
func (a *Area) Surface() Surface { return a.surface }

// Options returns a copy of the current configuration.
func (a *Area) Options() Options { return a.opts }

// Revision is incremented by every redraw.
func (a *Area) Revision() uint64 { return a.revision }

// Len returns the number of points.
func (a *Area) Len() int { return len(a.points) }

// Points returns the points in polygon order. The slice is a copy.
func (a *Area) Points() []*Point {
	out := make([]*Point, len(a.points))
	copy(out, a.points)
	return out
}

// PointsHidden reports whether point handles are currently hidden.
func (a *Area) PointsHidden() bool { return a.hidden }

// IsActiveLayer reports whether this area is the active layer of its host
// surface.
func (a *Area) IsActiveLayer() bool {
	return a.registry.Current(a.surfaceID) == a.depth
}

func (a *Area) log() *slog.Logger {
	return Logger().With("surface", a.surfaceID, "layer", a.depth)
}

// AddPoint appends a point at (x, y) and redraws. Coordinates outside the
// surface are accepted.
func (a *Area) AddPoint(x, y float64) *Point {
	p := a.appendPoint(x, y)
	a.Refresh()
	return p
}

func (a *Area) appendPoint(x, y float64) *Point {
	p := newPoint(x, y, a)
	p.attach(a.opts.PointColor)
	if a.hidden {
		p.handle.Hide()
	}
	a.points = append(a.points, p)
	a.opts.Handler.PointAdded(a, p)
	return p
}

func (a *Area) indexOf(id PointID) int {
	for i, p := range a.points {
		if p.id == id {
			return i
		}
	}
	return -1
}

// owns reports whether p is currently one of a's points.
func (a *Area) owns(p *Point) bool {
	return p != nil && p.area == a && a.indexOf(p.id) >= 0
}

// PointByID returns the point with the given id.
func (a *Area) PointByID(id PointID) (*Point, bool) {
	if i := a.indexOf(id); i >= 0 {
		return a.points[i], true
	}
	return nil, false
}

// RemovePoint removes the point with the given id and redraws. An unknown
// id is logged and reported as ErrPointNotFound; the area is unchanged.
func (a *Area) RemovePoint(id PointID) error {
	i := a.indexOf(id)
	if i < 0 {
		a.log().Warn("point does not exist", "point", id)
		return fmt.Errorf("remove point %s: %w", id, ErrPointNotFound)
	}
	p := a.points[i]
	a.points = append(a.points[:i], a.points[i+1:]...)
	p.handle.Remove()
	a.opts.Handler.PointRemoved(a, p)
	a.Refresh()
	return nil
}

// RemovePointRef removes p. Points of other areas are not found.
func (a *Area) RemovePointRef(p *Point) error {
	if p == nil || p.area != a {
		a.log().Warn("point does not belong to area")
		return fmt.Errorf("remove point: %w", ErrPointNotFound)
	}
	return a.RemovePoint(p.id)
}

// RemoveLastPoint removes the most recently added point.
func (a *Area) RemoveLastPoint() error {
	if len(a.points) == 0 {
		return fmt.Errorf("remove last point: %w", ErrPointNotFound)
	}
	return a.RemovePoint(a.points[len(a.points)-1].id)
}

// RemoveAllPoints removes every point in order, each with the usual
// removal side effects.
func (a *Area) RemoveAllPoints() {
	for len(a.points) > 0 {
		_ = a.RemovePoint(a.points[0].id)
	}
}

// HidePoints hides every handle. The polygon is unaffected.
func (a *Area) HidePoints() {
	a.hidden = true
	for _, p := range a.points {
		p.handle.Hide()
	}
}

// ShowPoints shows every handle.
func (a *Area) ShowPoints() {
	a.hidden = false
	for _, p := range a.points {
		p.handle.Show()
	}
}

// SelectedPoints returns the selected points in polygon order.
func (a *Area) SelectedPoints() []*Point {
	var out []*Point
	for _, p := range a.points {
		if p.selected {
			out = append(out, p)
		}
	}
	return out
}

// RemoveSelectedPoints removes every selected point and returns how many
// were removed.
func (a *Area) RemoveSelectedPoints() int {
	sel := a.SelectedPoints()
	for _, p := range sel {
		_ = a.RemovePoint(p.id)
	}
	return len(sel)
}

// ToggleSelected flips the selection of p and fires the matching hook.
func (a *Area) ToggleSelected(p *Point) error {
	if !a.owns(p) {
		return fmt.Errorf("toggle selection: %w", ErrPointNotFound)
	}
	p.setSelected(!p.selected)
	if p.selected {
		a.opts.Handler.PointSelected(a, p)
	} else {
		a.opts.Handler.PointUnselected(a, p)
	}
	return nil
}

// BeginDrag notifies the start of a drag of p.
func (a *Area) BeginDrag(p *Point) error {
	if !a.owns(p) {
		return fmt.Errorf("begin drag: %w", ErrPointNotFound)
	}
	a.opts.Handler.DragStarted(a, p)
	return nil
}

// DragPoint moves p to (x, y) and redraws.
func (a *Area) DragPoint(p *Point, x, y float64) error {
	if !a.owns(p) {
		return fmt.Errorf("drag point: %w", ErrPointNotFound)
	}
	p.SetPosition(x, y)
	a.Refresh()
	a.opts.Handler.Dragged(a, p)
	return nil
}

// EndDrag notifies the end of a drag of p.
func (a *Area) EndDrag(p *Point) error {
	if !a.owns(p) {
		return fmt.Errorf("end drag: %w", ErrPointNotFound)
	}
	a.opts.Handler.DragStopped(a, p)
	return nil
}

// Refresh repaints the drawing surface from the current state. With no
// points only the background is painted: a cleared surface, or the solid
// fill when the area is reversed.
func (a *Area) Refresh() {
	s := a.surface
	w, h := s.Size()

	s.Clear()
	s.SetComposite(SourceOver)
	s.SetAlpha(a.opts.Opacity)
	if a.opts.Reverse {
		s.SetFillColor(a.opts.Color)
		s.FillRect(0, 0, float64(w), float64(h))
		s.SetComposite(DestinationOut)
		s.SetAlpha(1)
	}

	if len(a.points) > 0 {
		s.BeginPath()
		s.MoveTo(a.points[0].x, a.points[0].y)
		for _, p := range a.points[1:] {
			s.LineTo(p.x, p.y)
		}
		s.ClosePath()

		s.SetStrokeColor(a.opts.Color)
		s.SetLineWidth(a.opts.LineWidth)
		if a.opts.ShowLine {
			s.Stroke()
		}
		if a.opts.Fill {
			s.SetFillColor(a.opts.Color)
			s.Fill()
		}
	}

	if f, ok := s.(Flusher); ok {
		f.Flush()
	}
	a.revision++
	a.log().Debug("redraw", "points", len(a.points), "revision", a.revision)
	a.opts.Handler.Redrawn(a)
}

// SetColor sets the polygon colour, recolours every handle and redraws.
func (a *Area) SetColor(c color.Color) {
	a.opts.Color = c
	for _, p := range a.points {
		p.SetColor(c)
	}
	a.Refresh()
}

// SetPointColor sets the colour of current and future handles.
func (a *Area) SetPointColor(c color.Color) {
	a.opts.PointColor = c
	for _, p := range a.points {
		p.SetColor(c)
	}
}

// ShowLine shows or hides the outline and redraws.
func (a *Area) ShowLine(on bool) {
	a.opts.ShowLine = on
	a.Refresh()
}

// SetFill enables or disables filling and redraws.
func (a *Area) SetFill(on bool) {
	a.opts.Fill = on
	a.Refresh()
}

// Reverse flips cut-out rendering and redraws.
func (a *Area) Reverse() {
	a.opts.Reverse = !a.opts.Reverse
	a.Refresh()
}

// SetOpacity sets the opacity, clamped to [0, 1], and redraws.
func (a *Area) SetOpacity(v float64) {
	a.opts.Opacity = clamp01(v)
	a.Refresh()
}

// SetKeyDelete enables or disables deleting selected points with the Delete key.
func (a *Area) SetKeyDelete(on bool) {
	a.opts.KeyDelete = on
}

// Serialize returns the point coordinates in polygon order.
func (a *Area) Serialize() []Coord {
	out := make([]Coord, 0, len(a.points))
	for _, p := range a.points {
		out = append(out, p.Coord())
	}
	return out
}

// SerializeJSON returns the JSON encoding of Serialize.
func (a *Area) SerializeJSON() (string, error) {
	return EncodeCoords(a.Serialize())
}

// Load appends every coordinate as a new point in order. Add hooks fire per
// point; the area is redrawn once at the end.
func (a *Area) Load(coords []Coord) {
	for _, c := range coords {
		a.appendPoint(c.X, c.Y)
	}
	a.Refresh()
}

// LoadJSON decodes a JSON point list and loads it. Malformed input returns
// an error wrapping ErrMalformedLoad and adds nothing.
func (a *Area) LoadJSON(data string) error {
	coords, err := ParseCoords([]byte(data))
	if err != nil {
		return err
	}
	a.Load(coords)
	return nil
}
