package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/render"
	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/logger"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// Exec runs one command line and returns its printable result.
func (s *Session) Exec(line string) (string, error) {
	cmd, ok := ParseCommand(line)
	if !ok {
		return "", nil
	}
	return s.handleCommand(cmd)
}

// handleCommand routes commands to their handlers
func (s *Session) handleCommand(cmd Command) (string, error) {
	logger.Log.WithFields(logrus.Fields{
		"command": cmd.Name,
		"args":    cmd.Args,
	}).Debug("executing command")

	switch cmd.Name {
	case CmdNew:
		return s.handleNew(cmd.Args)
	case CmdLoad:
		return s.handleLoad(cmd.Args)
	case CmdSave:
		return s.handleSave(cmd.Args)
	case CmdShow:
		return s.handleShow(cmd.Args)
	case CmdAdd:
		return s.handleAdd(cmd.Args)
	case CmdDel:
		return s.handleDel(cmd.Args)
	case CmdRemove:
		return s.handleRemove(cmd.Args)
	case CmdFill:
		return s.handleFill(cmd.Args)
	case CmdDistance:
		return s.handleDistance(cmd.Args)
	case CmdRoute:
		return s.handleRoute(cmd.Args)
	case CmdRing:
		return s.handleRing(cmd.Args)
	case CmdRender:
		return s.handleRender(cmd.Args)
	case CmdRecent:
		return s.handleRecent(cmd.Args)
	case CmdClear:
		s.Replace(grid.New(s.grid.Settings()), s.path)
		s.dirty = true
		return "map cleared", nil
	case CmdHelp:
		return helpText(), nil
	case CmdExit:
		if s.dirty {
			logger.Log.Warn("exiting with unsaved changes")
		}
		return "", ErrExit
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
}

func helpText() string {
	lines := make([]string, 0, len(commandOrder))
	for _, name := range commandOrder {
		lines = append(lines, usage[name])
	}
	return strings.Join(lines, "\n")
}

func (s *Session) handleNew(args []string) (string, error) {
	if len(args) > 3 {
		return "", usageErr(CmdNew, "too many arguments")
	}
	settings := s.config.MapSettings()
	if len(args) > 0 {
		w, err := strconv.Atoi(args[0])
		if err != nil || w <= 0 {
			return "", usageErr(CmdNew, fmt.Sprintf("bad width %q", args[0]))
		}
		settings.Width = w
	}
	if len(args) > 1 {
		h, err := strconv.Atoi(args[1])
		if err != nil || h <= 0 {
			return "", usageErr(CmdNew, fmt.Sprintf("bad height %q", args[1]))
		}
		settings.Height = h
	}
	if len(args) > 2 {
		settings.Name = args[2]
	}
	s.Replace(grid.New(settings), "")
	return fmt.Sprintf("new map %q %dx%d", settings.Name, settings.Width, settings.Height), nil
}

func (s *Session) handleLoad(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageErr(CmdLoad, "")
	}
	if err := s.Load(args[0]); err != nil {
		return "", err
	}
	st := s.GetStatus()
	return fmt.Sprintf("loaded %q from %s (%d floors, %d items, %d players)", st.Name, st.Path, st.Floors, st.Items, st.Players), nil
}

func (s *Session) handleSave(args []string) (string, error) {
	if len(args) > 1 {
		return "", usageErr(CmdSave, "too many arguments")
	}
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	saved, err := s.Save(path)
	if err != nil {
		return "", err
	}
	return "saved " + saved, nil
}

func (s *Session) handleShow(args []string) (string, error) {
	if len(args) == 0 {
		st := s.GetStatus()
		return fmt.Sprintf("%s %dx%d r=%d path=%q dirty=%t\ncolors=%d floors=%d items=%d players=%d users=%d occupied=%d",
			st.Name, st.Width, st.Height, st.Radius, st.Path, st.Dirty,
			st.Colors, st.Floors, st.Items, st.Players, st.Users, st.Occupied), nil
	}

	if args[0] == "pos" {
		if len(args) != 2 {
			return "", usageErr(CmdShow, "")
		}
		pos, err := hex.ParseLabel(args[1])
		if err != nil {
			return "", err
		}
		return s.describe(s.grid.Lookup(pos)), nil
	}

	tag, ok := models.ParseTag(args[0])
	if !ok || len(args) != 1 {
		return "", usageErr(CmdShow, fmt.Sprintf("unknown section %q", args[0]))
	}
	var records []models.Record
	switch tag {
	case models.TagSet:
		records = append(records, s.grid.Settings())
	case models.TagColor:
		for i, c := range s.grid.Colors().Entries() {
			records = append(records, indexed{i: i, r: c})
		}
	case models.TagFloor:
		for _, f := range s.grid.Floors() {
			records = append(records, f)
		}
	case models.TagItem:
		for _, it := range s.grid.Items() {
			records = append(records, it)
		}
	case models.TagPlayer:
		for _, p := range s.grid.Players() {
			records = append(records, p)
		}
	case models.TagUser:
		for _, u := range s.grid.Users() {
			records = append(records, u)
		}
	}
	return formatRecords(records), nil
}

// indexed prefixes a palette entry with its slot.
type indexed struct {
	i int
	r models.Record
}

func (x indexed) Tag() models.Tag { return x.r.Tag() }
func (x indexed) Fields() []string {
	return append([]string{strconv.Itoa(x.i)}, x.r.Fields()...)
}

func formatRecords(records []models.Record) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, strings.Join(r.Fields(), " | "))
	}
	return strings.Join(lines, "\n")
}

func (s *Session) describe(pc grid.PositionConfig) string {
	if pc.Empty() {
		return pc.Pos.String() + ": empty"
	}
	var parts []string
	if pc.Floor != nil {
		parts = append(parts, "floor "+s.grid.ResolveColor(pc.Floor.Color))
	}
	if pc.Item != nil {
		parts = append(parts, fmt.Sprintf("item %d %q %s", pc.Item.ID, pc.Item.Name, pc.Item.Marker))
	}
	if pc.Player != nil {
		parts = append(parts, fmt.Sprintf("player %d %q user=%s %s", pc.Player.ID, pc.Player.Name, pc.Player.UserID, pc.Player.Marker))
	}
	return pc.Pos.String() + ": " + strings.Join(parts, "; ")
}

// colorArg accepts a colour string, adding it to the palette, or the index of
// a live palette entry.
func (s *Session) colorArg(arg string) (int, error) {
	if models.IsColorString(arg) {
		n := s.grid.Colors().Len()
		i := s.grid.AddColor(arg)
		if i == n {
			s.dirty = true
		}
		return i, nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB or a palette index", arg)
	}
	if _, ok := s.grid.Colors().Get(i); !ok {
		return 0, fmt.Errorf("color index %d is not a live palette entry", i)
	}
	return i, nil
}

func (s *Session) positionArg(cmd, arg string) (hex.Position, error) {
	pos, err := hex.ParseLabel(arg)
	if err != nil {
		return hex.Position{}, err
	}
	if !s.grid.InBounds(pos) {
		first, last := s.grid.Bounds()
		return hex.Position{}, usageErr(cmd, fmt.Sprintf("%s is outside %s..%s", pos, first, last))
	}
	return pos, nil
}

func (s *Session) handleAdd(args []string) (string, error) {
	if len(args) == 0 {
		return "", usageErr(CmdAdd, "")
	}
	kind, rest := args[0], args[1:]
	switch kind {
	case "color":
		if len(rest) != 1 || !models.IsColorString(rest[0]) {
			return "", usageErr(CmdAdd, "")
		}
		i, _ := s.colorArg(rest[0])
		return fmt.Sprintf("color %d = %s", i, rest[0]), nil

	case "user":
		if len(rest) != 2 {
			return "", usageErr(CmdAdd, "")
		}
		replaced := s.grid.SetUser(models.User{UserID: rest[0], Hash: rest[1]})
		s.dirty = true
		return upserted("user "+rest[0], replaced), nil

	case "floor":
		if len(rest) != 2 {
			return "", usageErr(CmdAdd, "")
		}
		pos, err := s.positionArg(CmdAdd, rest[0])
		if err != nil {
			return "", err
		}
		c, err := s.colorArg(rest[1])
		if err != nil {
			return "", err
		}
		replaced := s.grid.SetFloor(models.Floor{Pos: pos, Color: c})
		s.touched(pos)
		return upserted("floor "+pos.String(), replaced), nil

	case "item":
		if len(rest) < 4 {
			return "", usageErr(CmdAdd, "")
		}
		pos, marker, c, err := s.placementArgs(rest)
		if err != nil {
			return "", err
		}
		id := s.grid.NextItemID()
		if existing := s.grid.Lookup(pos).Item; existing != nil {
			id = existing.ID
		}
		it := models.Item{ID: id, Name: strings.Join(rest[3:], " "), Color: c, Marker: marker, Pos: pos}
		replaced := s.grid.SetItem(it)
		s.touched(pos)
		return upserted(fmt.Sprintf("item %d at %s", id, pos), replaced), nil

	case "player":
		if len(rest) < 5 {
			return "", usageErr(CmdAdd, "")
		}
		pos, marker, c, err := s.placementArgs(rest)
		if err != nil {
			return "", err
		}
		userID := rest[len(rest)-1]
		if _, ok := s.grid.User(userID); !ok {
			logger.Log.WithField("user_id", userID).Warn("player references an unknown user")
		}
		id := s.grid.NextPlayerID()
		if existing := s.grid.Lookup(pos).Player; existing != nil {
			id = existing.ID
		}
		p := models.Player{
			ID:     id,
			Name:   strings.Join(rest[3:len(rest)-1], " "),
			UserID: userID,
			Color:  c,
			Marker: marker,
			Pos:    pos,
		}
		replaced := s.grid.SetPlayer(p)
		s.touched(pos)
		return upserted(fmt.Sprintf("player %d at %s", id, pos), replaced), nil
	}
	return "", usageErr(CmdAdd, fmt.Sprintf("unknown kind %q", kind))
}

// placementArgs parses `<pos> <marker> <color>` shared by items and players.
func (s *Session) placementArgs(args []string) (hex.Position, models.Marker, int, error) {
	pos, err := s.positionArg(CmdAdd, args[0])
	if err != nil {
		return hex.Position{}, 0, 0, err
	}
	marker, err := models.ParseMarker(args[1])
	if err != nil {
		return hex.Position{}, 0, 0, err
	}
	if !marker.Known() {
		logger.Log.WithField("marker", int(marker)).Warn("marker type has no sprite")
	}
	c, err := s.colorArg(args[2])
	if err != nil {
		return hex.Position{}, 0, 0, err
	}
	return pos, marker, c, nil
}

func upserted(what string, replaced bool) string {
	if replaced {
		return "replaced " + what
	}
	return "added " + what
}

func (s *Session) handleDel(args []string) (string, error) {
	if len(args) != 2 || args[0] != "color" {
		return "", usageErr(CmdDel, "")
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return "", usageErr(CmdDel, fmt.Sprintf("bad index %q", args[1]))
	}
	if err := s.grid.DeleteColor(i); err != nil {
		return "", err
	}
	s.invalidate()
	return fmt.Sprintf("color %d deleted", i), nil
}

func (s *Session) handleRemove(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageErr(CmdRemove, "")
	}
	tag, ok := models.ParseTag(args[0])
	if !ok || (tag != models.TagFloor && tag != models.TagItem && tag != models.TagPlayer) {
		return "", usageErr(CmdRemove, fmt.Sprintf("cannot remove %q", args[0]))
	}
	pos, err := hex.ParseLabel(args[1])
	if err != nil {
		return "", err
	}
	if !s.grid.RemoveAt(tag, pos) {
		return fmt.Sprintf("no %s at %s", args[0], pos), nil
	}
	s.invalidate()
	return fmt.Sprintf("removed %s at %s", args[0], pos), nil
}

func (s *Session) handleFill(args []string) (string, error) {
	if len(args) == 2 && args[0] == "all" {
		c, err := s.colorArg(args[1])
		if err != nil {
			return "", err
		}
		cells := s.grid.Cells()
		for _, pos := range cells {
			s.grid.SetFloor(models.Floor{Pos: pos, Color: c})
		}
		s.invalidate()
		return fmt.Sprintf("filled %d cells", len(cells)), nil
	}
	if len(args) != 3 {
		return "", usageErr(CmdFill, "")
	}
	center, err := s.positionArg(CmdFill, args[0])
	if err != nil {
		return "", err
	}
	radius, err := strconv.Atoi(args[1])
	if err != nil || radius < 0 {
		return "", usageErr(CmdFill, fmt.Sprintf("bad radius %q", args[1]))
	}
	c, err := s.colorArg(args[2])
	if err != nil {
		return "", err
	}

	var filled []hex.Position
	for _, pos := range hex.Disk(center, radius) {
		if !s.grid.InBounds(pos) {
			continue
		}
		s.grid.SetFloor(models.Floor{Pos: pos, Color: c})
		filled = append(filled, pos)
	}
	s.touched(filled...)
	return fmt.Sprintf("filled %d cells", len(filled)), nil
}

func (s *Session) handleDistance(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageErr(CmdDistance, "")
	}
	a, err := hex.ParseLabel(args[0])
	if err != nil {
		return "", err
	}
	b, err := hex.ParseLabel(args[1])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(hex.Distance(a, b)), nil
}

// handleRoute finds a path through in-bounds cells that hold no item.
func (s *Session) handleRoute(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageErr(CmdRoute, "")
	}
	start, err := s.positionArg(CmdRoute, args[0])
	if err != nil {
		return "", err
	}
	goal, err := s.positionArg(CmdRoute, args[1])
	if err != nil {
		return "", err
	}

	blocked := mapset.New[hex.Position]()
	for _, it := range s.grid.Items() {
		blocked.Put(it.Pos)
	}
	path := hex.Route(start, goal, func(p hex.Position) bool {
		if p == start || p == goal {
			return true
		}
		return s.grid.InBounds(p) && !blocked.Has(p)
	})
	if path == nil {
		return fmt.Sprintf("no route from %s to %s", start, goal), nil
	}
	labels := make([]string, len(path))
	for i, p := range path {
		labels[i] = p.String()
	}
	return strings.Join(labels, " "), nil
}

// handleRing lists the in-bounds cells exactly k steps from pos.
func (s *Session) handleRing(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageErr(CmdRing, "")
	}
	center, err := s.positionArg(CmdRing, args[0])
	if err != nil {
		return "", err
	}
	k, err := strconv.Atoi(args[1])
	if err != nil || k < 0 {
		return "", usageErr(CmdRing, fmt.Sprintf("bad distance %q", args[1]))
	}
	var labels []string
	for _, p := range hex.Ring(center, k) {
		if s.grid.InBounds(p) {
			labels = append(labels, p.String())
		}
	}
	if len(labels) == 0 {
		return fmt.Sprintf("no cells %d from %s", k, center), nil
	}
	return strings.Join(labels, " "), nil
}

func (s *Session) handleRecent(args []string) (string, error) {
	switch {
	case len(args) == 0:
		return strings.Join(s.Recent(), "\n"), nil
	case len(args) == 1 && args[0] == "clear":
		if err := s.workspace.Clear(); err != nil {
			return "", err
		}
		return "recent files cleared", nil
	}
	return "", usageErr(CmdRecent, "")
}

func (s *Session) handleRender(args []string) (string, error) {
	if len(args) == 0 || len(args) > 2 {
		return "", usageErr(CmdRender, "")
	}
	raw := false
	if len(args) == 2 {
		if args[1] != "--raw" {
			return "", usageErr(CmdRender, fmt.Sprintf("unknown flag %q", args[1]))
		}
		raw = true
	}
	c, err := s.Canvas()
	if err != nil {
		return "", err
	}
	img := c.Output(raw)
	if err := render.WriteFile(args[0], img); err != nil {
		return "", err
	}
	size := img.Bounds().Size()
	return fmt.Sprintf("rendered %dx%d to %s", size.X, size.Y, args[0]), nil
}

// IsExit reports whether err ends the command loop.
func IsExit(err error) bool { return errors.Is(err, ErrExit) }
