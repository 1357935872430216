package fileio

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/goccy/go-json"
)

// WritePNG encodes img as a PNG at path, creating parent directories.
// Unless keepAlpha is set, the alpha channel is discarded and every pixel is written opaque.
func WritePNG(path string, img image.Image, keepAlpha bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	out := img
	if !keepAlpha {
		out = DropAlpha(img)
	}

	if err := imgio.Save(path, out, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DropAlpha returns a copy of img with its color channels kept as stored and alpha set to opaque
func DropAlpha(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	if src, ok := img.(*image.NRGBA); ok {
		copy(out.Pix, src.Pix)
	} else {
		draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	}

	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// WriteJSON writes v as indented JSON to path, replacing any existing file atomically
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes the JSON file at path into v
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
