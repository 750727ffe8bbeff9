package export

import (
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
)

// Coverage map colors.
var (
	levelPalette = []color.RGBA{
		{0x4c, 0x9a, 0xd8, 0xff},
		{0x5c, 0xb8, 0x5c, 0xff},
		{0xe8, 0xc3, 0x4a, 0xff},
		{0xe0, 0x7b, 0x39, 0xff},
		{0x9b, 0x59, 0xb6, 0xff},
		{0x7f, 0x8c, 0x8d, 0xff},
	}
	edgeColor  = color.RGBA{0x20, 0x20, 0x20, 0xff}
	morphColor = color.RGBA{0xd0, 0x20, 0x20, 0xff}
	emptyColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// CoverageImage draws the tile layout from above, px pixels square and +Y up.
// Fill color encodes the level, dark lines mark tile edges and red lines mark
// morphing edges.
func CoverageImage(tiles []clipmap.Descriptor, px int) *image.RGBA {
	px = max(px, 1)
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	if len(tiles) == 0 {
		return img
	}

	extent, finest := 0.0, math.Inf(1)
	for _, d := range tiles {
		extent = max(extent, math.Abs(d.X), math.Abs(d.Y), math.Abs(d.X+d.Scale), math.Abs(d.Y+d.Scale))
		finest = min(finest, d.Scale)
	}
	pixel := 2 * extent / float64(px)

	for py := 0; py < px; py++ {
		wy := extent - (float64(py)+0.5)*pixel
		for pxi := 0; pxi < px; pxi++ {
			wx := -extent + (float64(pxi)+0.5)*pixel
			img.SetRGBA(pxi, py, coverageColor(tiles, wx, wy, pixel, finest))
		}
	}
	return img
}

func coverageColor(tiles []clipmap.Descriptor, wx, wy, pixel, finest float64) color.RGBA {
	for _, d := range tiles {
		tx, ty := (wx-d.X)/d.Scale, (wy-d.Y)/d.Scale
		if tx < 0 || tx >= 1 || ty < 0 || ty >= 1 {
			continue
		}

		w := pixel / d.Scale
		onEdge := func(edge clipmap.Morph, dist float64) (color.RGBA, bool) {
			if dist >= w {
				return color.RGBA{}, false
			}
			if d.Morph&edge != 0 {
				return morphColor, true
			}
			return edgeColor, true
		}
		for _, e := range []struct {
			edge clipmap.Morph
			dist float64
		}{
			{clipmap.MorphTop, 1 - ty},
			{clipmap.MorphRight, 1 - tx},
			{clipmap.MorphBottom, ty},
			{clipmap.MorphLeft, tx},
		} {
			if c, ok := onEdge(e.edge, e.dist); ok {
				return c
			}
		}

		level := int(math.Round(math.Log2(d.Scale / finest)))
		return levelPalette[min(max(level, 0), len(levelPalette)-1)]
	}
	return emptyColor
}

// WriteCoverageBMP encodes the coverage map of g as a BMP image.
func WriteCoverageBMP(w io.Writer, g *clipmap.Geometry, px int) error {
	cfg := g.Config
	return bmp.Encode(w, CoverageImage(clipmap.Layout(cfg.Scale, cfg.Resolution, cfg.Levels), px))
}
