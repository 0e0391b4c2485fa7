package state

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Style is the wire form of an area's rendering options.
type Style struct {
	Color      string  `json:"color"`
	PointColor string  `json:"point_color,omitempty"`
	Reverse    bool    `json:"reverse"`
	Opacity    float64 `json:"opacity"`
	ShowLine   bool    `json:"show_line"`
	Fill       bool    `json:"fill"`
	LineWidth  float64 `json:"line_width,omitempty"`
}

// Snapshot is the complete drawable state of one layer.
type Snapshot struct {
	Surface string  `json:"surface"`
	Layer   int     `json:"layer"`
	Version uint64  `json:"version"`
	Style   Style   `json:"style"`
	Points  []Coord `json:"points"`
}

// Snapshot captures the area. Version is the area's revision.
func (a *Area) Snapshot() Snapshot {
	return Snapshot{
		Surface: a.surfaceID,
		Layer:   a.depth,
		Version: a.revision,
		Style: Style{
			Color:      FormatColor(a.opts.Color),
			PointColor: FormatColor(a.opts.PointColor),
			Reverse:    a.opts.Reverse,
			Opacity:    a.opts.Opacity,
			ShowLine:   a.opts.ShowLine,
			Fill:       a.opts.Fill,
			LineWidth:  a.opts.LineWidth,
		},
		Points: a.Serialize(),
	}
}

// Restore replaces the points and style with those of s and redraws once.
// Point hooks do not fire; Redrawn does.
func (a *Area) Restore(s Snapshot) error {
	c, err := ParseColor(s.Style.Color)
	if err != nil {
		return fmt.Errorf("restore layer %d: %w", a.depth, err)
	}
	pc := c
	if s.Style.PointColor != "" {
		if pc, err = ParseColor(s.Style.PointColor); err != nil {
			return fmt.Errorf("restore layer %d: %w", a.depth, err)
		}
	}

	for _, p := range a.points {
		p.handle.Remove()
	}
	a.points = a.points[:0]

	a.opts.Color = c
	a.opts.PointColor = pc
	a.opts.Reverse = s.Style.Reverse
	a.opts.Opacity = clamp01(s.Style.Opacity)
	a.opts.ShowLine = s.Style.ShowLine
	a.opts.Fill = s.Style.Fill
	if s.Style.LineWidth > 0 {
		a.opts.LineWidth = s.Style.LineWidth
	}

	for _, co := range s.Points {
		p := newPoint(co.X, co.Y, a)
		p.attach(a.opts.PointColor)
		if a.hidden {
			p.handle.Hide()
		}
		a.points = append(a.points, p)
	}
	a.Refresh()
	return nil
}

// Document is the saved form of every layer of one surface.
type Document struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Active int        `json:"active"`
	Layers []Snapshot `json:"layers"`
}

// ParseDocument decodes a saved document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLoad, err)
	}
	return &doc, nil
}

type layerKey struct {
	surface string
	layer   int
}

// Replica tracks the newest snapshot version seen for every layer so that
// duplicated or reordered snapshots are applied at most once. It is safe for
// concurrent use.
type Replica struct {
	mu       sync.Mutex
	versions map[layerKey]uint64
	clock    Clock
}

// NewReplica returns an empty replica.
func NewReplica() *Replica {
	return &Replica{versions: make(map[layerKey]uint64)}
}

// Accept reports whether s is newer than anything seen for its layer, and
// records it if so.
func (r *Replica) Accept(s Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := layerKey{s.Surface, s.Layer}
	if seen, ok := r.versions[k]; ok && s.Version <= seen {
		Logger().Debug("stale snapshot ignored", "surface", s.Surface, "layer", s.Layer,
			"version", s.Version, "seen", seen)
		return false
	}
	r.versions[k] = s.Version
	r.clock.Update(s.Version)
	return true
}

// Seen returns the newest version recorded for a layer.
func (r *Replica) Seen(surface string, layer int) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[layerKey{surface, layer}]
	return v, ok
}

// Latest returns the highest version seen on any layer.
func (r *Replica) Latest() uint64 {
	return r.clock.Now()
}
