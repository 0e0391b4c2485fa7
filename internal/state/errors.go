package state

import "errors"

var (
	// ErrPointNotFound is returned when a point id is not part of the area.
	// It is informational: the area is left unchanged.
	ErrPointNotFound = errors.New("point not found")

	// ErrMalformedLoad is returned when load input is not a point list.
	ErrMalformedLoad = errors.New("malformed point data")

	// ErrLayerOutOfRange is returned for a layer index outside the surface's layers.
	ErrLayerOutOfRange = errors.New("layer index out of range")

	// ErrUnknownSurface is returned when no layer was ever attached to a surface id.
	ErrUnknownSurface = errors.New("unknown surface")
)
