package savefile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/pkg/logger"
)

// Load reads and decodes the save file at path. The file is read whole
// before decoding, so a read failure never yields a partial grid.
func Load(path string) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	g, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"path":    path,
		"floors":  len(g.Floors()),
		"items":   len(g.Items()),
		"players": len(g.Players()),
	}).Info("map loaded")
	return g, nil
}

// Save encodes g and writes it to path. Data goes to a temporary file in
// the same directory first and is renamed into place, so a failed save
// leaves any previous file intact.
func Save(path string, g *grid.Grid) error {
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	logger.Log.WithField("path", path).Info("map saved")
	return nil
}
