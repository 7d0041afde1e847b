// Package editor holds the editing session and the line-oriented command
// interpreter that drives it.
package editor

import (
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/internal/render"
	"github.com/gravitas-games/hexgrid/internal/savefile"
	"github.com/gravitas-games/hexgrid/internal/workspace"
	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/logger"
)

// Session is one open map plus the state around it
type Session struct {
	CreatedAt time.Time

	grid  *grid.Grid
	path  string
	dirty bool

	// canvas is kept between render commands and patched cell by cell
	canvas *render.Canvas

	config    *config.Config
	workspace *workspace.Workspace
}

// Status summarises the session
type Status struct {
	Name     string
	Path     string
	Dirty    bool
	Width    int
	Height   int
	Radius   int
	Colors   int
	Floors   int
	Items    int
	Players  int
	Users    int
	Occupied int
}

// NewSession creates a session holding a blank map built from the config
// defaults. ws may be nil.
func NewSession(cfg *config.Config, ws *workspace.Workspace) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if ws == nil {
		ws, _ = workspace.New(nil, cfg.Workspace.MaxRecent)
	}
	s := &Session{
		CreatedAt: time.Now(),
		grid:      grid.New(cfg.MapSettings()),
		config:    cfg,
		workspace: ws,
	}
	logger.Log.WithFields(logrus.Fields{
		"name":   cfg.Map.Name,
		"width":  cfg.Map.Width,
		"height": cfg.Map.Height,
	}).Debug("session created")
	return s
}

// Grid returns the open map.
func (s *Session) Grid() *grid.Grid { return s.grid }

// Path returns the file the map was last loaded from or saved to.
func (s *Session) Path() string { return s.path }

// Dirty reports unsaved edits.
func (s *Session) Dirty() bool { return s.dirty }

// Replace swaps in a new map and forgets the cached canvas.
func (s *Session) Replace(g *grid.Grid, path string) {
	s.grid = g
	s.path = path
	s.dirty = false
	s.canvas = nil
}

// Load opens a save file.
func (s *Session) Load(path string) error {
	g, err := savefile.Load(path)
	if err != nil {
		return err
	}
	s.Replace(g, path)
	s.remember(path)
	return nil
}

// Save writes the map to path, or to the current path when path is empty.
// A path without an extension gets savefile.Extension.
func (s *Session) Save(path string) (string, error) {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return "", ErrNoPath
	}
	if filepath.Ext(path) == "" {
		path += savefile.Extension
	}
	if err := savefile.Save(path, s.grid); err != nil {
		return "", err
	}
	s.path = path
	s.dirty = false
	s.remember(path)
	return path, nil
}

func (s *Session) remember(path string) {
	if err := s.workspace.Push(path); err != nil {
		logger.Log.WithError(err).Warn("failed to record recent file")
	}
}

// Recent lists recently used files, newest first.
func (s *Session) Recent() []string { return s.workspace.Recent() }

// touched marks pos edited and patches the cached canvas.
func (s *Session) touched(positions ...hex.Position) {
	s.dirty = true
	if s.canvas == nil {
		return
	}
	for _, pos := range positions {
		s.canvas.DrawCell(pos)
	}
}

// invalidate marks the map edited in a way a cell repaint cannot express.
func (s *Session) invalidate() {
	s.dirty = true
	s.canvas = nil
}

// Canvas returns the cached canvas, drawing a fresh one if needed.
func (s *Session) Canvas() (*render.Canvas, error) {
	if s.canvas != nil {
		return s.canvas, nil
	}
	opts, err := render.OptionsFromConfig(s.config.Render)
	if err != nil {
		return nil, err
	}
	c, err := render.NewCanvas(s.grid, opts)
	if err != nil {
		return nil, err
	}
	c.Draw()
	s.canvas = c
	return c, nil
}

// GetStatus returns the current session status.
func (s *Session) GetStatus() Status {
	set := s.grid.Settings()
	return Status{
		Name:     set.Name,
		Path:     s.path,
		Dirty:    s.dirty,
		Width:    set.Width,
		Height:   set.Height,
		Radius:   set.Radius,
		Colors:   s.grid.Colors().Len(),
		Floors:   len(s.grid.Floors()),
		Items:    len(s.grid.Items()),
		Players:  len(s.grid.Players()),
		Users:    len(s.grid.Users()),
		Occupied: s.grid.Occupied().Size(),
	}
}
