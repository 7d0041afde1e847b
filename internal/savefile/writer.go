package savefile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// Encode writes g in the canonical section order. Every section tag is
// written even when it has no records. Nothing is written when a record
// would not decode back to itself; the error is an *EncodeError.
func Encode(w io.Writer, g *grid.Grid) error {
	if err := checkEncodable(g); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tag := range models.CanonicalTags {
		if _, err := fmt.Fprintln(bw, tag.String()); err != nil {
			return fmt.Errorf("failed to write %s: %w", tag, err)
		}
		for _, rec := range sectionRecords(g, tag) {
			if _, err := fmt.Fprintln(bw, joinFields(rec.Fields())); err != nil {
				return fmt.Errorf("failed to write %s record: %w", tag, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush save data: %w", err)
	}
	return nil
}

func checkEncodable(g *grid.Grid) error {
	for _, tag := range models.CanonicalTags {
		for i, rec := range sectionRecords(g, tag) {
			if reason := unencodable(rec); reason != "" {
				return &EncodeError{Tag: tag.String(), Index: i, Reason: reason}
			}
		}
	}
	return nil
}

// unencodable returns why rec cannot be written, or "" when it can.
func unencodable(rec models.Record) string {
	if p, ok := rec.(models.Positioned); ok {
		pos := p.Position()
		back, err := hex.ParseLabel(hex.FormatLabel(pos))
		if err != nil || back != pos {
			return fmt.Sprintf("position col=%d row=%d has no label", pos.Col, pos.Row)
		}
	}
	// blank lines are skipped on decode, which would shift every later index
	if c, ok := rec.(models.Color); ok && strings.TrimSpace(string(c)) == "" {
		return "empty color entry"
	}
	for _, f := range rec.Fields() {
		if strings.ContainsAny(f, "\r\n") {
			return fmt.Sprintf("field %q contains a line break", f)
		}
	}
	return ""
}

// sectionRecords lists the records stored under tag.
func sectionRecords(g *grid.Grid, tag models.Tag) []models.Record {
	var out []models.Record
	switch tag {
	case models.TagSet:
		out = append(out, g.Settings())
	case models.TagColor:
		for _, c := range g.Colors().Entries() {
			out = append(out, c)
		}
	case models.TagFloor:
		for _, f := range g.Floors() {
			out = append(out, f)
		}
	case models.TagItem:
		for _, it := range g.Items() {
			out = append(out, it)
		}
	case models.TagUser:
		for _, u := range g.Users() {
			out = append(out, u)
		}
	case models.TagPlayer:
		for _, p := range g.Players() {
			out = append(out, p)
		}
	}
	return out
}
