package state

import "image/color"

// Point is a single vertex of an Area's polygon.
type Point struct {
	id       PointID
	x, y     float64
	selected bool
	area     *Area
	handle   Handle
}

func newPoint(x, y float64, a *Area) *Point {
	p := &Point{
		id:   a.registry.clock.nextPointID(),
		x:    x,
		y:    y,
		area: a,
	}
	p.handle = a.handles.NewHandle(p)
	if p.handle == nil {
		p.handle = nopHandle{}
	}
	return p
}

// attach shows the handle at the point's position in color c.
func (p *Point) attach(c color.Color) {
	p.handle.SetColor(c)
	p.handle.Move(p.x, p.y)
	p.handle.Show()
}

// ID returns the point's identifier.
func (p *Point) ID() PointID { return p.id }

// X returns the surface-local x coordinate.
func (p *Point) X() float64 { return p.x }

// Y returns the surface-local y coordinate.
func (p *Point) Y() float64 { return p.y }

// Coord returns the serialised form of the point.
func (p *Point) Coord() Coord { return Coord{X: p.x, Y: p.y} }

// Area returns the owning area.
func (p *Point) Area() *Area { return p.area }

// Selected reports whether the point is selected.
func (p *Point) Selected() bool { return p.selected }

// Handle returns the host handle.
func (p *Point) Handle() Handle { return p.handle }

// SetPosition moves the point and its handle. It does not redraw the area.
func (p *Point) SetPosition(x, y float64) {
	p.x, p.y = x, y
	p.handle.Move(x, y)
}

// SetColor recolours the handle only.
func (p *Point) SetColor(c color.Color) {
	p.handle.SetColor(c)
}

func (p *Point) setSelected(on bool) {
	p.selected = on
	p.handle.SetSelected(on)
}
