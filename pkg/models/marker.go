package models

import (
	"errors"
	"strconv"
	"strings"
)

// Marker selects the sprite drawn for an item or player.
type Marker int

const (
	MarkerAdd Marker = iota
	MarkerCircle
	MarkerCrossCircle
	MarkerHeart
	MarkerMultiply
	MarkerSquare
	MarkerStar
	MarkerTriangle
)

var markerNames = []string{
	"add",
	"circle",
	"crosscircle",
	"heart",
	"multiply",
	"square",
	"star",
	"triangle",
}

// MarkerNames lists the named markers in index order.
func MarkerNames() []string {
	out := make([]string, len(markerNames))
	copy(out, markerNames)
	return out
}

// Known reports whether the marker has a sprite.
func (m Marker) Known() bool { return m >= 0 && int(m) < len(markerNames) }

func (m Marker) String() string {
	if m.Known() {
		return markerNames[m]
	}
	return "marker(" + strconv.Itoa(int(m)) + ")"
}

// ParseMarker accepts a marker name ("star") or a decimal index. Numeric
// values are not range checked.
func ParseMarker(s string) (Marker, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range markerNames {
		if n == name {
			return Marker(i), nil
		}
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, &ParseError{Field: "marker_type", Value: s, Err: errors.New("unknown marker")}
	}
	return Marker(n), nil
}
