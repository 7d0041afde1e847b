package render

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/vector"

	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// ErrResourceNotFound is returned when a marker type has no sprite.
var ErrResourceNotFound = errors.New("render: resource not found")

// spriteFunc traces a marker into a side x side box at (ox, oy).
type spriteFunc func(z *vector.Rasterizer, ox, oy, side float32)

var sprites = map[models.Marker]spriteFunc{
	models.MarkerAdd:         traceAdd,
	models.MarkerCircle:      traceCircleMarker,
	models.MarkerCrossCircle: traceCrossCircle,
	models.MarkerHeart:       traceHeart,
	models.MarkerMultiply:    traceMultiply,
	models.MarkerSquare:      traceSquare,
	models.MarkerStar:        traceStar,
	models.MarkerTriangle:    traceTriangle,
}

// lookupSprite resolves a marker type to its tracer.
func lookupSprite(m models.Marker) (spriteFunc, error) {
	fn, ok := sprites[m]
	if !ok {
		return nil, fmt.Errorf("%w: marker type %d", ErrResourceNotFound, int(m))
	}
	return fn, nil
}

func tracePolygon(z *vector.Rasterizer, pts []hex.Point) {
	if len(pts) == 0 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// traceSegment adds a w-wide quad along a->b.
func traceSegment(z *vector.Rasterizer, a, b hex.Point, w float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	tracePolygon(z, []hex.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

// traceCircle adds a circle; reverse winds it the other way so it can cut
// a hole in a previously traced shape.
func traceCircle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	const steps = 48
	for i := 0; i <= steps; i++ {
		k := i
		if reverse {
			k = steps - i
		}
		a := 2 * math.Pi * float64(k) / steps
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func traceRing(z *vector.Rasterizer, cx, cy, r, width float32) {
	traceCircle(z, cx, cy, r, false)
	traceCircle(z, cx, cy, r-width, true)
}

func traceAdd(z *vector.Rasterizer, ox, oy, side float32) {
	t := side / 5
	c := side / 2
	tracePolygon(z, rect(ox+c-t/2, oy+side*0.1, t, side*0.8))
	tracePolygon(z, rect(ox+side*0.1, oy+c-t/2, side*0.8, t))
}

func traceCircleMarker(z *vector.Rasterizer, ox, oy, side float32) {
	traceRing(z, ox+side/2, oy+side/2, side*0.45, side/7)
}

func traceCrossCircle(z *vector.Rasterizer, ox, oy, side float32) {
	traceRing(z, ox+side/2, oy+side/2, side*0.45, side/8)
	traceMultiply(z, ox+side*0.22, oy+side*0.22, side*0.56)
}

func traceMultiply(z *vector.Rasterizer, ox, oy, side float32) {
	w := float64(side) / 6
	x0, y0 := float64(ox)+float64(side)*0.15, float64(oy)+float64(side)*0.15
	x1, y1 := float64(ox)+float64(side)*0.85, float64(oy)+float64(side)*0.85
	traceSegment(z, hex.Point{X: x0, Y: y0}, hex.Point{X: x1, Y: y1}, w)
	traceSegment(z, hex.Point{X: x1, Y: y0}, hex.Point{X: x0, Y: y1}, w)
}

func traceSquare(z *vector.Rasterizer, ox, oy, side float32) {
	m := side * 0.15
	tracePolygon(z, rect(ox+m, oy+m, side-2*m, side-2*m))
}

func traceTriangle(z *vector.Rasterizer, ox, oy, side float32) {
	tracePolygon(z, []hex.Point{
		{X: float64(ox + side/2), Y: float64(oy + side*0.1)},
		{X: float64(ox + side*0.92), Y: float64(oy + side*0.85)},
		{X: float64(ox + side*0.08), Y: float64(oy + side*0.85)},
	})
}

func traceStar(z *vector.Rasterizer, ox, oy, side float32) {
	cx, cy := float64(ox+side/2), float64(oy+side/2)
	outer := float64(side) * 0.48
	inner := outer * 0.4
	pts := make([]hex.Point, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, hex.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	tracePolygon(z, pts)
}

func traceHeart(z *vector.Rasterizer, ox, oy, side float32) {
	s := side
	z.MoveTo(ox+s/2, oy+s*0.9)
	z.CubeTo(ox, oy+s*0.55, ox+s*0.1, oy, ox+s/2, oy+s*0.28)
	z.CubeTo(ox+s*0.9, oy, ox+s, oy+s*0.55, ox+s/2, oy+s*0.9)
	z.ClosePath()
}

func rect(x, y, w, h float32) []hex.Point {
	return []hex.Point{
		{X: float64(x), Y: float64(y)},
		{X: float64(x + w), Y: float64(y)},
		{X: float64(x + w), Y: float64(y + h)},
		{X: float64(x), Y: float64(y + h)},
	}
}
