package debug

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	return img
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{"png", "bmp"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testImage(), format); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			var decoded image.Image
			var err error
			if format == "png" {
				decoded, err = png.Decode(&buf)
			} else {
				decoded, err = bmp.Decode(&buf)
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			r, g, b, _ := decoded.At(1, 1).RGBA()
			if r>>8 != 200 || g>>8 != 10 || b>>8 != 30 {
				t.Errorf("pixel (1,1) = %d,%d,%d", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(), "gif")
	if !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("got %v, want ErrUnknownImageFormat", err)
	}
	if _, err := NewCapture("", "shot", "tga"); !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("NewCapture: got %v, want ErrUnknownImageFormat", err)
	}
}

func TestCaptureSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")

	c, err := NewCapture(dir, "planet", "BMP")
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	c.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	name, err := c.Save(testImage())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(dir, "planet_2024-05-06_07-08-09.bmp")
	if name != want {
		t.Errorf("name = %q, want %q", name, want)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}

func TestSaveImageExtension(t *testing.T) {
	dir := t.TempDir()

	if err := SaveImage(filepath.Join(dir, "a.png"), testImage()); err != nil {
		t.Errorf("png: %v", err)
	}
	if err := SaveImage(filepath.Join(dir, "a.jpg"), testImage()); !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("jpg: got %v, want ErrUnknownImageFormat", err)
	}
}

func TestFlipRows(t *testing.T) {
	// 1x3 image, bottom-up: red, green, blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	}

	img := FlipRows(pixels, 1, 3)

	want := [][4]uint8{{0, 0, 255, 255}, {0, 255, 0, 255}, {255, 0, 0, 255}}
	for y, w := range want {
		c := img.RGBAAt(0, y)
		if got := [4]uint8{c.R, c.G, c.B, c.A}; got != w {
			t.Errorf("row %d = %v, want %v", y, got, w)
		}
	}
}

func TestFlipRowsShortBuffer(t *testing.T) {
	img := FlipRows([]byte{1, 2, 3}, 2, 2)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("short buffer should leave the image blank")
		}
	}
}
