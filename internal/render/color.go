package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/gravitas-games/hexgrid/pkg/models"
)

// ParseHexColor converts "#RRGGBB" or "#RGB" to an opaque colour.
func ParseHexColor(s string) (color.NRGBA, error) {
	if !models.IsColorString(s) {
		return color.NRGBA{}, fmt.Errorf("render: invalid color %q", s)
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
