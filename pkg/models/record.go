package models

import (
	"strconv"

	"github.com/gravitas-games/hexgrid/pkg/hex"
)

// Tag identifies a section of the save file.
type Tag string

const (
	TagSet    Tag = "set"
	TagColor  Tag = "color"
	TagFloor  Tag = "floor"
	TagItem   Tag = "item"
	TagUser   Tag = "user"
	TagPlayer Tag = "player"
)

// CanonicalTags is the order sections are written in.
var CanonicalTags = []Tag{TagSet, TagColor, TagFloor, TagItem, TagUser, TagPlayer}

// ParseTag accepts a known tag name with or without angle brackets.
func ParseTag(s string) (Tag, bool) {
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		s = s[1 : len(s)-1]
	}
	for _, t := range CanonicalTags {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// String returns the bracketed tag line, e.g. "<floor>".
func (t Tag) String() string { return "<" + string(t) + ">" }

// Record is one line of a save-file section. Fields are returned raw, in the
// fixed on-disk order; escaping is the codec's job.
type Record interface {
	Tag() Tag
	Fields() []string
}

// Positioned is a record that occupies a map cell.
type Positioned interface {
	Record
	Position() hex.Position
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Err: err}
	}
	return n, nil
}

func parsePos(value string) (hex.Position, error) {
	p, err := hex.ParseLabel(value)
	if err != nil {
		return hex.Position{}, &ParseError{Field: "position", Value: value, Err: err}
	}
	return p, nil
}
