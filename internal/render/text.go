package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gravitas-games/hexgrid/pkg/hex"
)

// textAnchor picks the vertical reference for drawn text.
type textAnchor int

const (
	anchorTop    textAnchor = iota // text hangs below the point
	anchorMiddle                   // text is centred on the point
)

func newTitleFace(size int) (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse title font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title face: %w", err)
	}
	return face, nil
}

// drawText draws s horizontally centred on at.
func drawText(dst *image.RGBA, face font.Face, s string, at hex.Point, anchor textAnchor, c color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	m := face.Metrics()
	width := d.MeasureString(s)
	x := fixed.Int26_6(at.X*64) - width/2
	y := fixed.Int26_6(at.Y * 64)
	switch anchor {
	case anchorTop:
		y += m.Ascent
	case anchorMiddle:
		y += (m.Ascent - m.Descent) / 2
	}
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(s)
}
