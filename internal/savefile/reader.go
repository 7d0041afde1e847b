package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/pkg/logger"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

const (
	// Header is the optional first line of a save file.
	Header = "GRIDMAP 0.1"
	// Extension is the conventional save file suffix.
	Extension = ".hgdata"

	headerPrefix = "GRIDMAP "
)

var tagLine = regexp.MustCompile(`^<\w+>$`)

// decoder carries the per-file state while lines are streamed in.
type decoder struct {
	g    *grid.Grid
	tag  models.Tag // current section, "" before the first known tag or inside an unknown one
	seen mapset.Set[models.Tag]
	line int
}

// Decode reads a save file into a new Grid. A record that cannot be
// converted stops decoding with a *DecodeError; unknown sections are
// logged and skipped.
func Decode(r io.Reader) (*grid.Grid, error) {
	d := &decoder{
		g:    grid.New(models.DefaultSettings()),
		seen: mapset.New[models.Tag](),
	}

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			d.line++
			if derr := d.feed(strings.TrimRight(raw, "\r\n")); derr != nil {
				return nil, derr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("savefile: failed to read line %d: %w", d.line+1, err)
		}
	}

	if !d.seen.Has(models.TagSet) {
		logger.Log.WithField("settings", d.g.Settings()).Warn("save file has no <set> section, using defaults")
	}
	return d.g, nil
}

func (d *decoder) feed(line string) error {
	if d.line == 1 && strings.HasPrefix(line, headerPrefix) {
		if line != Header {
			logger.Log.WithField("header", line).Warn("unexpected save file version, reading as " + Header)
		}
		return nil
	}

	if tagLine.MatchString(line) {
		tag, ok := models.ParseTag(line)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"line": d.line,
				"tag":  line,
			}).Warn("unknown section tag, skipping its lines")
			d.tag = ""
			return nil
		}
		d.tag = tag
		d.seen.Put(tag)
		return nil
	}

	if d.tag == "" || strings.TrimSpace(line) == "" {
		return nil
	}

	if err := d.record(splitLine(line)); err != nil {
		return &DecodeError{Line: d.line, Tag: d.tag.String(), Raw: line, Err: err}
	}
	return nil
}

// record converts one split line according to the current section.
func (d *decoder) record(fields []string) error {
	switch d.tag {
	case models.TagSet:
		s, err := models.ParseSettings(fields)
		if err != nil {
			return err
		}
		d.g.SetSettings(s)
	case models.TagColor:
		c, err := models.ParseColor(fields)
		if err != nil {
			return err
		}
		d.g.Colors().Append(c)
	case models.TagFloor:
		f, err := models.ParseFloor(fields)
		if err != nil {
			return err
		}
		if d.g.SetFloor(f) {
			d.duplicate(f.Pos.String())
		}
	case models.TagItem:
		it, err := models.ParseItem(fields)
		if err != nil {
			return err
		}
		if d.g.SetItem(it) {
			d.duplicate(it.Pos.String())
		}
	case models.TagUser:
		u, err := models.ParseUser(fields)
		if err != nil {
			return err
		}
		if d.g.SetUser(u) {
			d.duplicate(u.UserID)
		}
	case models.TagPlayer:
		p, err := models.ParsePlayer(fields)
		if err != nil {
			return err
		}
		if d.g.SetPlayer(p) {
			d.duplicate(p.Pos.String())
		}
	}
	return nil
}

func (d *decoder) duplicate(key string) {
	logger.Log.WithFields(logrus.Fields{
		"line": d.line,
		"tag":  d.tag.String(),
		"key":  key,
	}).Debug("duplicate record replaces earlier one")
}
