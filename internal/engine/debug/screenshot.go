// Package debug captures frames of the clipmap preview to disk.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// ErrUnknownImageFormat is returned for extensions other than png and bmp.
var ErrUnknownImageFormat = errors.New("unknown image format")

// Capture writes timestamped screenshots into a directory.
type Capture struct {
	dir    string
	prefix string
	format string
	now    func() time.Time
}

// NewCapture creates a capture handler. format is "png" or "bmp".
func NewCapture(dir, prefix, format string) (*Capture, error) {
	format = strings.ToLower(format)
	if format != "png" && format != "bmp" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
	return &Capture{dir: dir, prefix: prefix, format: format, now: time.Now}, nil
}

// Filename returns the path the next capture would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", c.prefix, c.now().Format("2006-01-02_15-04-05"), c.format)
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// Save writes img and returns the file name.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	if err := SaveImage(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveImage writes img to path, picking the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "png" && format != "bmp" {
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes img as png or bmp.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", strings.ToUpper(format), err)
	}
	return nil
}

// FlipRows converts bottom-up RGBA rows, as OpenGL returns them, into an image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	if len(pixels) < row*height {
		return img
	}
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}
