package models

import (
	"strconv"

	"github.com/gravitas-games/hexgrid/pkg/hex"
)

// Floor colours a single map cell.
type Floor struct {
	Pos   hex.Position
	Color int // index into the map's ColorTable
}

// ParseFloor builds a Floor from `position_label|color_index`.
func ParseFloor(fields []string) (Floor, error) {
	if len(fields) != 2 {
		return Floor{}, fieldCountError(TagFloor, 2, fields)
	}
	pos, err := parsePos(fields[0])
	if err != nil {
		return Floor{}, err
	}
	color, err := parseInt("color_index", fields[1])
	if err != nil {
		return Floor{}, err
	}
	return Floor{Pos: pos, Color: color}, nil
}

func (f Floor) Tag() Tag                { return TagFloor }
func (f Floor) Position() hex.Position { return f.Pos }

func (f Floor) Fields() []string {
	return []string{hex.FormatLabel(f.Pos), strconv.Itoa(f.Color)}
}

// Item is a marker placed on a cell.
type Item struct {
	ID     int
	Name   string
	Color  int
	Marker Marker
	Pos    hex.Position
}

// ParseItem builds an Item from `id|name|color_index|marker_type|position_label`.
func ParseItem(fields []string) (Item, error) {
	if len(fields) != 5 {
		return Item{}, fieldCountError(TagItem, 5, fields)
	}
	id, err := parseInt("id", fields[0])
	if err != nil {
		return Item{}, err
	}
	color, err := parseInt("color_index", fields[2])
	if err != nil {
		return Item{}, err
	}
	marker, err := parseInt("marker_type", fields[3])
	if err != nil {
		return Item{}, err
	}
	pos, err := parsePos(fields[4])
	if err != nil {
		return Item{}, err
	}
	return Item{ID: id, Name: fields[1], Color: color, Marker: Marker(marker), Pos: pos}, nil
}

func (i Item) Tag() Tag                { return TagItem }
func (i Item) Position() hex.Position { return i.Pos }

func (i Item) Fields() []string {
	return []string{
		strconv.Itoa(i.ID),
		i.Name,
		strconv.Itoa(i.Color),
		strconv.Itoa(int(i.Marker)),
		hex.FormatLabel(i.Pos),
	}
}

// Player is a user-controlled marker on a cell.
type Player struct {
	ID     int
	Name   string
	UserID string
	Color  int
	Marker Marker
	Pos    hex.Position
}

// ParsePlayer builds a Player from
// `id|name|user_id|color_index|marker_type|position_label`.
func ParsePlayer(fields []string) (Player, error) {
	if len(fields) != 6 {
		return Player{}, fieldCountError(TagPlayer, 6, fields)
	}
	id, err := parseInt("id", fields[0])
	if err != nil {
		return Player{}, err
	}
	color, err := parseInt("color_index", fields[3])
	if err != nil {
		return Player{}, err
	}
	marker, err := parseInt("marker_type", fields[4])
	if err != nil {
		return Player{}, err
	}
	pos, err := parsePos(fields[5])
	if err != nil {
		return Player{}, err
	}
	return Player{
		ID:     id,
		Name:   fields[1],
		UserID: fields[2],
		Color:  color,
		Marker: Marker(marker),
		Pos:    pos,
	}, nil
}

func (p Player) Tag() Tag                { return TagPlayer }
func (p Player) Position() hex.Position { return p.Pos }

func (p Player) Fields() []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.UserID,
		strconv.Itoa(p.Color),
		strconv.Itoa(int(p.Marker)),
		hex.FormatLabel(p.Pos),
	}
}

// User is an account players can belong to. Hash is stored opaquely.
type User struct {
	UserID string
	Hash   string
}

// ParseUser builds a User from `user_id|credential_hash`.
func ParseUser(fields []string) (User, error) {
	if len(fields) != 2 {
		return User{}, fieldCountError(TagUser, 2, fields)
	}
	return User{UserID: fields[0], Hash: fields[1]}, nil
}

func (u User) Tag() Tag         { return TagUser }
func (u User) Fields() []string { return []string{u.UserID, u.Hash} }
