package hex

import (
	"image"
	"math"
)

// Ratio is the hexagon half-height to radius ratio, sqrt(3)/2.
var Ratio = math.Sqrt(3) / 2

// Point is a pixel-space coordinate. Y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Layout maps offset positions to pixels for flat-sided hexagons of the given
// radius (centre to corner). Columns are 1.5*Radius apart; odd columns are
// shifted up by half a cell.
type Layout struct {
	Radius float64
}

// NewLayout returns a layout for an integer hex radius as stored in map settings.
func NewLayout(radius int) Layout {
	return Layout{Radius: float64(radius)}
}

// height is the centre-to-edge distance.
func (l Layout) height() float64 { return Ratio * l.Radius }

// Center returns the absolute pixel centre of p.
func (l Layout) Center(p Position) Point {
	h := l.height()
	x := float64(p.Col) * l.Radius * 1.5
	y := float64(2*p.Row)*h - float64(p.Col&1)*h
	return Point{X: x, Y: y}
}

// Outline returns the six corners of p starting at the left vertex, with the
// first corner repeated at the end to close the polygon.
func (l Layout) Outline(p Position) [7]Point {
	c := l.Center(p)
	r := l.Radius
	h := l.height()
	return [7]Point{
		{c.X - r, c.Y},
		{c.X - r/2, c.Y + h},
		{c.X + r/2, c.Y + h},
		{c.X + r, c.Y},
		{c.X + r/2, c.Y - h},
		{c.X - r/2, c.Y - h},
		{c.X - r, c.Y},
	}
}

// TitleAnchor is the point above the centre where the cell label is drawn.
func (l Layout) TitleAnchor(p Position) Point {
	c := l.Center(p)
	return Point{X: c.X, Y: c.Y - l.height()}
}

// spriteInset is the distance from the centre to a sprite edge.
func (l Layout) spriteInset() int {
	return int((1.5 - Ratio) * l.Radius)
}

// SpriteSide is the edge length of the square marker sprite.
func (l Layout) SpriteSide() int {
	return int(2 * (1.5 - Ratio) * l.Radius)
}

// SpriteOrigin is the top-left paste point for a SpriteSide square centred on p.
func (l Layout) SpriteOrigin(p Position) image.Point {
	c := l.Center(p)
	d := l.spriteInset()
	return image.Point{X: int(c.X) - d, Y: int(c.Y) - d}
}

// CanvasSize returns the pixel size needed to draw a width x height map.
func (l Layout) CanvasSize(width, height int) image.Point {
	w := l.Radius * 1.5 * (float64(width) + 0.7)
	h := l.height() * (float64(height) + 0.5) * 2
	return image.Point{X: int(w), Y: int(h)}
}
