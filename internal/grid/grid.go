package grid

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/logger"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// Grid is the editable map: one settings record, a colour palette, three
// position-keyed collections and the user list. It is not safe for
// concurrent use.
type Grid struct {
	settings models.MapSettings
	colors   *models.ColorTable

	floors  []models.Floor
	items   []models.Item
	players []models.Player
	users   []models.User
}

// PositionConfig is everything drawn on one cell. It is computed on demand
// and never stored.
type PositionConfig struct {
	Pos    hex.Position
	Floor  *models.Floor
	Item   *models.Item
	Player *models.Player
}

// Empty reports whether nothing occupies the cell.
func (pc PositionConfig) Empty() bool {
	return pc.Floor == nil && pc.Item == nil && pc.Player == nil
}

// New creates an empty grid with the given settings.
func New(settings models.MapSettings) *Grid {
	return &Grid{
		settings: settings,
		colors:   models.NewColorTable(),
	}
}

// NewDefault creates an empty grid with default settings.
func NewDefault() *Grid {
	return New(models.DefaultSettings())
}

// Settings returns the map settings.
func (g *Grid) Settings() models.MapSettings { return g.settings }

// SetSettings replaces the map settings.
func (g *Grid) SetSettings(s models.MapSettings) { g.settings = s }

// Layout is the pixel layout for the current radius.
func (g *Grid) Layout() hex.Layout { return g.settings.Layout() }

// Colors exposes the palette. Indices handed out stay valid for the life of
// the grid.
func (g *Grid) Colors() *models.ColorTable { return g.colors }

// AddColor returns the index of c, appending it if new.
func (g *Grid) AddColor(c string) int { return g.colors.Add(c) }

// DeleteColor tombstones a palette slot. Entities keep their index and
// resolve to the fallback colour afterwards.
func (g *Grid) DeleteColor(i int) error { return g.colors.Delete(i) }

// ResolveColor returns the colour string for index i. Missing or deleted
// slots resolve to white and log a warning.
func (g *Grid) ResolveColor(i int) string {
	if c, ok := g.colors.Get(i); ok {
		return c
	}
	logger.Log.WithFields(logrus.Fields{
		"index":  i,
		"colors": g.colors.Len(),
	}).Warn("color index does not resolve, using white")
	return models.White
}

func upsert[T models.Positioned](list []T, e T) ([]T, bool) {
	for i := range list {
		if list[i].Position() == e.Position() {
			list[i] = e
			return list, true
		}
	}
	return append(list, e), false
}

func removeAt[T models.Positioned](list []T, pos hex.Position) ([]T, bool) {
	for i := range list {
		if list[i].Position() == pos {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// SetFloor places f, replacing any floor already on its cell. It reports
// whether a floor was replaced.
func (g *Grid) SetFloor(f models.Floor) bool {
	var replaced bool
	g.floors, replaced = upsert(g.floors, f)
	return replaced
}

// SetItem places it, replacing any item already on its cell.
func (g *Grid) SetItem(it models.Item) bool {
	var replaced bool
	g.items, replaced = upsert(g.items, it)
	return replaced
}

// SetPlayer places p, replacing any player already on its cell.
func (g *Grid) SetPlayer(p models.Player) bool {
	var replaced bool
	g.players, replaced = upsert(g.players, p)
	return replaced
}

// SetUser stores u, replacing a user with the same id.
func (g *Grid) SetUser(u models.User) bool {
	for i := range g.users {
		if g.users[i].UserID == u.UserID {
			g.users[i] = u
			return true
		}
	}
	g.users = append(g.users, u)
	return false
}

// Upsert dispatches a positioned record to its collection.
func (g *Grid) Upsert(e models.Positioned) (bool, error) {
	switch v := e.(type) {
	case models.Floor:
		return g.SetFloor(v), nil
	case models.Item:
		return g.SetItem(v), nil
	case models.Player:
		return g.SetPlayer(v), nil
	default:
		return false, fmt.Errorf("grid: cannot upsert %T", e)
	}
}

// RemoveAt deletes the record of the given kind on pos.
func (g *Grid) RemoveAt(tag models.Tag, pos hex.Position) bool {
	var removed bool
	switch tag {
	case models.TagFloor:
		g.floors, removed = removeAt(g.floors, pos)
	case models.TagItem:
		g.items, removed = removeAt(g.items, pos)
	case models.TagPlayer:
		g.players, removed = removeAt(g.players, pos)
	}
	return removed
}

// Lookup merges the floor, item and player on pos.
func (g *Grid) Lookup(pos hex.Position) PositionConfig {
	pc := PositionConfig{Pos: pos}
	for i := range g.floors {
		if g.floors[i].Pos == pos {
			f := g.floors[i]
			pc.Floor = &f
			break
		}
	}
	for i := range g.items {
		if g.items[i].Pos == pos {
			it := g.items[i]
			pc.Item = &it
			break
		}
	}
	for i := range g.players {
		if g.players[i].Pos == pos {
			p := g.players[i]
			pc.Player = &p
			break
		}
	}
	return pc
}

// Floors returns a copy of the floor collection in insertion order.
func (g *Grid) Floors() []models.Floor { return append([]models.Floor(nil), g.floors...) }

// Items returns a copy of the item collection in insertion order.
func (g *Grid) Items() []models.Item { return append([]models.Item(nil), g.items...) }

// Players returns a copy of the player collection in insertion order.
func (g *Grid) Players() []models.Player { return append([]models.Player(nil), g.players...) }

// Users returns a copy of the user collection.
func (g *Grid) Users() []models.User { return append([]models.User(nil), g.users...) }

// User looks up a user by id.
func (g *Grid) User(id string) (models.User, bool) {
	for _, u := range g.users {
		if u.UserID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// NextItemID is one past the highest item id, so ids freed by a removal
// are never handed out again.
func (g *Grid) NextItemID() int {
	next := 1
	for _, it := range g.items {
		next = max(next, it.ID+1)
	}
	return next
}

// NextPlayerID is one past the highest player id.
func (g *Grid) NextPlayerID() int {
	next := 1
	for _, p := range g.players {
		next = max(next, p.ID+1)
	}
	return next
}

// Occupied returns every cell holding at least one record.
func (g *Grid) Occupied() mapset.Set[hex.Position] {
	set := mapset.New[hex.Position]()
	for _, f := range g.floors {
		set.Put(f.Pos)
	}
	for _, it := range g.items {
		set.Put(it.Pos)
	}
	for _, p := range g.players {
		set.Put(p.Pos)
	}
	return set
}

// Bounds returns the first and last labelled cells.
func (g *Grid) Bounds() (first, last hex.Position) {
	return hex.NewPosition(1, 1), hex.NewPosition(g.settings.Width, g.settings.Height)
}

// InBounds reports whether pos is one of the labelled cells of the map.
func (g *Grid) InBounds(pos hex.Position) bool {
	return pos.Col >= 1 && pos.Col <= g.settings.Width &&
		pos.Row >= 1 && pos.Row <= g.settings.Height
}

// Cells returns every labelled cell, column by column.
func (g *Grid) Cells() []hex.Position {
	if g.settings.Width <= 0 || g.settings.Height <= 0 {
		return nil
	}
	out := make([]hex.Position, 0, g.settings.Width*g.settings.Height)
	for col := 1; col <= g.settings.Width; col++ {
		for row := 1; row <= g.settings.Height; row++ {
			out = append(out, hex.NewPosition(col, row))
		}
	}
	return out
}
