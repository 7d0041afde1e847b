package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for output paths that are neither PNG
// nor JPEG.
var ErrUnsupportedFormat = fmt.Errorf("render: unsupported image format")

// WriteFile encodes img by the extension of path (.png, .jpg, .jpeg).
func WriteFile(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(f *os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}
