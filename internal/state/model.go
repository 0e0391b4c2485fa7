package state

import (
	"encoding/json"
	"fmt"
)

// Coord is the serialised form of a point.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ParseCoords decodes the JSON form of a point list.
func ParseCoords(data []byte) ([]Coord, error) {
	var coords []Coord
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLoad, err)
	}
	return coords, nil
}

// EncodeCoords returns the JSON form of a point list.
func EncodeCoords(coords []Coord) (string, error) {
	if coords == nil {
		coords = []Coord{}
	}
	data, err := json.Marshal(coords)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
