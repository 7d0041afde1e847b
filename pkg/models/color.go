package models

import (
	"errors"
	"fmt"
	"regexp"
)

// Tombstone marks a deleted colour slot. It never equals a real colour.
const Tombstone Color = "_DELETED_"

// White is the fallback for unresolvable colour indices.
const White = "#FFFFFF"

var colorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// IsColorString reports whether s is a "#RGB" or "#RRGGBB" colour.
func IsColorString(s string) bool { return colorPattern.MatchString(s) }

// Color is one entry of a ColorTable.
type Color string

// ParseColor builds a Color from a single-field `<color>` record.
func ParseColor(fields []string) (Color, error) {
	if len(fields) != 1 {
		return "", fieldCountError(TagColor, 1, fields)
	}
	return Color(fields[0]), nil
}

func (c Color) Tag() Tag         { return TagColor }
func (c Color) Fields() []string { return []string{string(c)} }

// Deleted reports whether the slot has been tombstoned.
func (c Color) Deleted() bool { return c == Tombstone }

// Matches compares against a colour string. Tombstones match nothing.
func (c Color) Matches(s string) bool {
	if c.Deleted() {
		return false
	}
	return string(c) == s
}

// ColorTable is an append-only palette. Deleting tombstones a slot so every
// index handed out stays valid for the table's lifetime.
type ColorTable struct {
	entries []Color
}

// NewColorTable seeds a table with the given colours, in order, without
// deduplication.
func NewColorTable(colors ...string) *ColorTable {
	t := &ColorTable{}
	for _, c := range colors {
		t.entries = append(t.entries, Color(c))
	}
	return t
}

// Len returns the number of slots including tombstones.
func (t *ColorTable) Len() int { return len(t.entries) }

// At returns the raw slot value.
func (t *ColorTable) At(i int) (Color, bool) {
	if i < 0 || i >= len(t.entries) {
		return "", false
	}
	return t.entries[i], true
}

// Get returns the colour string at i; tombstoned or missing slots report false.
func (t *ColorTable) Get(i int) (string, bool) {
	c, ok := t.At(i)
	if !ok || c.Deleted() {
		return "", false
	}
	return string(c), true
}

// Index returns the first live slot equal to s, or -1.
func (t *ColorTable) Index(s string) int {
	for i, c := range t.entries {
		if c.Matches(s) {
			return i
		}
	}
	return -1
}

// Add returns the index of s, appending it when it is not present yet.
func (t *ColorTable) Add(s string) int {
	if i := t.Index(s); i >= 0 {
		return i
	}
	t.entries = append(t.entries, Color(s))
	return len(t.entries) - 1
}

// Append adds a slot verbatim, tombstones included. Used when loading a file
// where the line position is the index.
func (t *ColorTable) Append(c Color) int {
	t.entries = append(t.entries, c)
	return len(t.entries) - 1
}

// Set replaces the colour in slot i.
func (t *ColorTable) Set(i int, s string) error {
	if i < 0 || i >= len(t.entries) {
		return fmt.Errorf("models: color index %d out of range (len %d)", i, len(t.entries))
	}
	if Color(s) == Tombstone {
		return errors.New("models: use Delete to tombstone a color")
	}
	t.entries[i] = Color(s)
	return nil
}

// Delete tombstones slot i.
func (t *ColorTable) Delete(i int) error {
	if i < 0 || i >= len(t.entries) {
		return fmt.Errorf("models: color index %d out of range (len %d)", i, len(t.entries))
	}
	t.entries[i] = Tombstone
	return nil
}

// Entries returns a copy of every slot in index order.
func (t *ColorTable) Entries() []Color {
	out := make([]Color, len(t.entries))
	copy(out, t.entries)
	return out
}
