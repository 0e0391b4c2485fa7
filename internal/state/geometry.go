package state

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds returns the bounding box of the points. ok is false for an area
// without points.
func (a *Area) Bounds() (r Rect, ok bool) {
	if len(a.points) == 0 {
		return Rect{}, false
	}
	minX, minY := a.points[0].x, a.points[0].y
	maxX, maxY := minX, minY
	for _, p := range a.points[1:] {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// Contains reports whether (x, y) is inside the polygon (even-odd rule).
// Polygons with fewer than three points contain nothing.
func (a *Area) Contains(x, y float64) bool {
	n := len(a.points)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		pi, pj := a.points[i], a.points[(i+1)%n]
		if (pi.y > y) != (pj.y > y) &&
			x < (pj.x-pi.x)*(y-pi.y)/(pj.y-pi.y)+pi.x {
			inside = !inside
		}
	}
	return inside
}

// Perimeter returns the length of the closed outline.
func (a *Area) Perimeter() float64 {
	n := len(a.points)
	var sum float64
	for i := 0; i < n && n > 1; i++ {
		p, q := a.points[i], a.points[(i+1)%n]
		sum += math.Hypot(q.x-p.x, q.y-p.y)
	}
	return sum
}

// SignedArea returns the shoelace area; positive for clockwise winding in
// screen coordinates.
func (a *Area) SignedArea() float64 {
	n := len(a.points)
	var sum float64
	for i := 0; i < n; i++ {
		p, q := a.points[i], a.points[(i+1)%n]
		sum += p.x*q.y - q.x*p.y
	}
	return sum / 2
}
