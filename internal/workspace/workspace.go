// Package workspace remembers recently opened map files in the platform
// app-data directory.
package workspace

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/pkg/logger"
)

const (
	recentObject   = "workspace"
	recentProperty = "recent"

	defaultMaxRecent = 10
)

type recentFile struct {
	Paths []string `yaml:"paths"`
}

// Workspace tracks recent files. A nil store keeps the list in memory only.
type Workspace struct {
	store  *gdata.Manager
	max    int
	recent []string
}

// Open connects to the app-data store named in cfg. If the store cannot be
// opened the workspace still works without persistence.
func Open(cfg config.WorkspaceConfig) *Workspace {
	store, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"app":   cfg.AppName,
			"error": err,
		}).Warn("app-data storage unavailable, recent files will not persist")
		store = nil
	}
	w, err := New(store, cfg.MaxRecent)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to load recent files")
	}
	return w
}

// New wraps an existing store. The returned workspace is always usable; the
// error reports a list that could not be read.
func New(store *gdata.Manager, limit int) (*Workspace, error) {
	if limit <= 0 {
		limit = defaultMaxRecent
	}
	w := &Workspace{store: store, max: limit}
	return w, w.load()
}

// Persistent reports whether the workspace writes to disk.
func (w *Workspace) Persistent() bool { return w.store != nil }

func (w *Workspace) load() error {
	if w.store == nil || !w.store.ObjectPropExists(recentObject, recentProperty) {
		return nil
	}
	data, err := w.store.LoadObjectProp(recentObject, recentProperty)
	if err != nil {
		return fmt.Errorf("failed to load recent files: %w", err)
	}
	var rf recentFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("failed to unmarshal recent files: %w", err)
	}
	w.recent = rf.Paths
	if len(w.recent) > w.max {
		w.recent = w.recent[:w.max]
	}
	return nil
}

func (w *Workspace) save() error {
	if w.store == nil {
		return nil
	}
	data, err := yaml.Marshal(recentFile{Paths: w.recent})
	if err != nil {
		return fmt.Errorf("failed to marshal recent files: %w", err)
	}
	if err := w.store.SaveObjectProp(recentObject, recentProperty, data); err != nil {
		return fmt.Errorf("failed to save recent files: %w", err)
	}
	return nil
}

// Push moves path to the front of the list, dropping the oldest entry past
// the limit.
func (w *Workspace) Push(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if i := slices.Index(w.recent, path); i >= 0 {
		w.recent = slices.Delete(w.recent, i, i+1)
	}
	w.recent = slices.Insert(w.recent, 0, path)
	if len(w.recent) > w.max {
		w.recent = w.recent[:w.max]
	}
	return w.save()
}

// Recent returns the list, most recent first.
func (w *Workspace) Recent() []string { return slices.Clone(w.recent) }

// Clear forgets every entry.
func (w *Workspace) Clear() error {
	w.recent = nil
	return w.save()
}
