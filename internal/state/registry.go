package state

import (
	"fmt"
	"sort"
)

// Entry is the layer table of one host surface.
type Entry struct {
	current int
	content []*Area
}

// Current returns the active layer index.
func (e *Entry) Current() int { return e.current }

// Len returns the number of layers.
func (e *Entry) Len() int { return len(e.content) }

// Registry maps host surface ids to their stacked layers and the index of
// the active one. It also allocates point ids for every area it holds.
//
// Create one per application or session and pass it to the façade. A
// Registry is not safe for concurrent use.
type Registry struct {
	entries map[string]*Entry
	clock   Clock
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Ensure returns the entry for surfaceID, creating an empty one if needed.
func (r *Registry) Ensure(surfaceID string) *Entry {
	e, ok := r.entries[surfaceID]
	if !ok {
		e = &Entry{}
		r.entries[surfaceID] = e
		Logger().Debug("registry entry created", "surface", surfaceID)
	}
	return e
}

// NextDepth returns the depth the next attached area will get.
func (r *Registry) NextDepth(surfaceID string) int {
	if e, ok := r.entries[surfaceID]; ok {
		return len(e.content)
	}
	return 0
}

// Attach appends a to its surface's layers and makes it active. The area
// must have been built with NextDepth.
func (r *Registry) Attach(a *Area) error {
	if a.registry != r {
		return fmt.Errorf("attach layer: area belongs to another registry")
	}
	e := r.Ensure(a.surfaceID)
	if a.depth != len(e.content) {
		return fmt.Errorf("attach layer %d to surface %s with %d layers: %w",
			a.depth, a.surfaceID, len(e.content), ErrLayerOutOfRange)
	}
	e.content = append(e.content, a)
	e.current = a.depth
	Logger().Info("layer attached", "surface", a.surfaceID, "layer", a.depth)
	return nil
}

func (r *Registry) entry(surfaceID string) (*Entry, error) {
	e, ok := r.entries[surfaceID]
	if !ok || len(e.content) == 0 {
		return nil, fmt.Errorf("surface %q: %w", surfaceID, ErrUnknownSurface)
	}
	return e, nil
}

// SetCurrent switches the active layer and returns it.
func (r *Registry) SetCurrent(surfaceID string, index int) (*Area, error) {
	e, err := r.entry(surfaceID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(e.content) {
		return nil, fmt.Errorf("select layer %d of %d: %w", index, len(e.content), ErrLayerOutOfRange)
	}
	e.current = index
	Logger().Info("layer selected", "surface", surfaceID, "layer", index)
	return e.content[index], nil
}

// Get returns the layer at index.
func (r *Registry) Get(surfaceID string, index int) (*Area, error) {
	e, err := r.entry(surfaceID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(e.content) {
		return nil, fmt.Errorf("get layer %d of %d: %w", index, len(e.content), ErrLayerOutOfRange)
	}
	return e.content[index], nil
}

// Active returns the active layer.
func (r *Registry) Active(surfaceID string) (*Area, error) {
	e, err := r.entry(surfaceID)
	if err != nil {
		return nil, err
	}
	return e.content[e.current], nil
}

// Current returns the active layer index, or -1 for an unknown surface.
func (r *Registry) Current(surfaceID string) int {
	e, ok := r.entries[surfaceID]
	if !ok || len(e.content) == 0 {
		return -1
	}
	return e.current
}

// Layers returns the layers of surfaceID bottom to top. The slice is a copy.
func (r *Registry) Layers(surfaceID string) []*Area {
	e, ok := r.entries[surfaceID]
	if !ok {
		return nil
	}
	out := make([]*Area, len(e.content))
	copy(out, e.content)
	return out
}

// Surfaces returns every surface id with at least one layer, sorted.
func (r *Registry) Surfaces() []string {
	ids := make([]string, 0, len(r.entries))
	for id, e := range r.entries {
		if len(e.content) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
