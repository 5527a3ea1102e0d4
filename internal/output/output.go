// Package output writes rendered frames to disk.
package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// FormatFromPath picks the encoder from the file extension, falling back
// to fallback when the extension is not recognised.
func FormatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return fallback
}

// Encode writes img to w in the named format
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Write creates any missing directories and saves img to path. The format
// comes from the extension when it has one, otherwise from format.
func Write(path string, img image.Image, format string) (err error) {
	format = FormatFromPath(path, format)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
