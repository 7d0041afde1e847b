package hex

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidLabel is wrapped by ParseError when the text is not a grid label.
var ErrInvalidLabel = errors.New("hex: invalid position label")

var labelPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// Position is an offset coordinate on the map. Column 1 is "A", so the
// top-left labelled cell is A1 == Position{Col: 1, Row: 1}.
type Position struct {
	Col int
	Row int
}

// ParseError reports label text that could not be turned into a Position.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hex: cannot parse position %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewPosition builds a Position from a column/row pair. No range check is
// applied; a non-positive column yields an unlabelled position.
func NewPosition(col, row int) Position {
	return Position{Col: col, Row: row}
}

// ParseLabel converts a label such as "A1", "aa3" or "Z9" to a Position.
// Column letters use bijective base-26 (A=1 ... Z=26, AA=27).
func ParseLabel(text string) (Position, error) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	m := labelPattern.FindStringSubmatch(upper)
	if m == nil {
		return Position{}, &ParseError{Input: text, Err: ErrInvalidLabel}
	}

	col := 0
	for _, c := range []byte(m[1]) {
		d := int(c-'A') + 1
		if col > (math.MaxInt-d)/26 {
			return Position{}, &ParseError{Input: text, Err: errors.New("column out of range")}
		}
		col = col*26 + d
	}

	row, err := strconv.Atoi(m[2])
	if err != nil {
		return Position{}, &ParseError{Input: text, Err: err}
	}
	return Position{Col: col, Row: row}, nil
}

// MustParseLabel is ParseLabel for constant labels; it panics on error.
func MustParseLabel(text string) Position {
	p, err := ParseLabel(text)
	if err != nil {
		panic(err)
	}
	return p
}

// ColumnLetters encodes a column number in bijective base-26.
// Columns <= 0 have no letters and return "".
func ColumnLetters(col int) string {
	if col <= 0 {
		return ""
	}
	var buf []byte
	for n := col; n > 0; {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// FormatLabel is the inverse of ParseLabel. Positions with a non-positive
// column are unlabelled and format to "".
func FormatLabel(p Position) string {
	if p.Col <= 0 {
		return ""
	}
	return ColumnLetters(p.Col) + strconv.Itoa(p.Row)
}

// Labelled reports whether the position has a text label.
func (p Position) Labelled() bool { return p.Col > 0 }

// String returns the label form, or "" for unlabelled positions.
func (p Position) String() string { return FormatLabel(p) }

// ToAxial converts the offset position to axial coordinates. Odd columns sit
// half a row higher than even ones, matching Layout.Center.
func (p Position) ToAxial() Axial {
	return Axial{Q: p.Col, R: p.Row - (p.Col+(p.Col&1))/2}
}

// AxialToPosition is the inverse of Position.ToAxial.
func AxialToPosition(a Axial) Position {
	return Position{Col: a.Q, Row: a.R + (a.Q+(a.Q&1))/2}
}
