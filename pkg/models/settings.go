package models

import (
	"image"
	"strconv"

	"github.com/gravitas-games/hexgrid/pkg/hex"
)

// Defaults for a freshly created map.
const (
	DefaultWidth  = 20
	DefaultHeight = 15
	DefaultRadius = 30
	DefaultName   = "new_map"
)

// MapSettings describes the map extent and drawing scale.
type MapSettings struct {
	Width  int    // columns
	Height int    // rows
	Radius int    // hexagon radius in pixels
	Name   string
}

// DefaultSettings returns the settings used for `new` without arguments.
func DefaultSettings() MapSettings {
	return MapSettings{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Radius: DefaultRadius,
		Name:   DefaultName,
	}
}

// ParseSettings builds MapSettings from `width|height|radius|name`.
func ParseSettings(fields []string) (MapSettings, error) {
	if len(fields) != 4 {
		return MapSettings{}, fieldCountError(TagSet, 4, fields)
	}
	w, err := parseInt("width_cells", fields[0])
	if err != nil {
		return MapSettings{}, err
	}
	h, err := parseInt("height_cells", fields[1])
	if err != nil {
		return MapSettings{}, err
	}
	r, err := parseInt("hex_radius", fields[2])
	if err != nil {
		return MapSettings{}, err
	}
	return MapSettings{Width: w, Height: h, Radius: r, Name: fields[3]}, nil
}

func (s MapSettings) Tag() Tag { return TagSet }

func (s MapSettings) Fields() []string {
	return []string{
		strconv.Itoa(s.Width),
		strconv.Itoa(s.Height),
		strconv.Itoa(s.Radius),
		s.Name,
	}
}

// Layout returns the pixel layout for this map's radius.
func (s MapSettings) Layout() hex.Layout {
	return hex.NewLayout(s.Radius)
}

// CanvasSize is the full-resolution image size for the map.
func (s MapSettings) CanvasSize() image.Point {
	return s.Layout().CanvasSize(s.Width, s.Height)
}
