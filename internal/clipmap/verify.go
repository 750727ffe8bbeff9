package clipmap

import (
	"fmt"
	"math"
)

// Report is the outcome of one named check.
type Report struct {
	Name string
	Err  error
}

// Verify runs the structural checks on g in a fixed order.
func Verify(g *Geometry) []Report {
	cfg := g.Config
	return []Report{
		{"coverage", CheckCoverage(Layout(cfg.Scale, cfg.Resolution, cfg.Levels), cfg.Scale, cfg.Levels)},
		{"indices", CheckIndices(g.Buffers, cfg.Resolution)},
		{"seams", CheckSeams(cfg)},
	}
}

// CheckSeams reports whether the outer edge vertices of each shell land on
// the lattice of the next one. That needs an even resolution.
func CheckSeams(cfg Config) error {
	if cfg.Levels > 0 && cfg.Resolution%2 != 0 {
		return fmt.Errorf("%w: odd resolution %d", ErrSeams, cfg.Resolution)
	}
	return nil
}

// CheckIndices verifies that every triangle of b references vertices of the
// tile that owns it.
func CheckIndices(b *Buffers, resolution int) error {
	perTile := VerticesPerTile(resolution)
	perTileIndices := resolution * resolution * 6
	if perTileIndices == 0 || len(b.Indices)%perTileIndices != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of tiles", ErrIndexRange, len(b.Indices))
	}

	for i, idx := range b.Indices {
		tile := i / perTileIndices
		lo, hi := tile*perTile, (tile+1)*perTile
		if int(idx) < lo || int(idx) >= hi || int(idx) >= b.VertexCount() {
			return fmt.Errorf("%w: index %d = %d, tile %d owns [%d, %d)", ErrIndexRange, i, idx, tile, lo, hi)
		}
	}
	return nil
}

// CheckCoverage rasterizes the layout at the finest scale and verifies that,
// for every shell scale s, the tiles of scale <= s cover [-2s, 2s]² exactly
// once.
func CheckCoverage(tiles []Descriptor, baseScale float64, levels int) error {
	finest := FinestScale(baseScale, levels)
	if levels == 0 {
		return checkSquare(tiles, finest, finest, 1)
	}
	for level := 0; level < levels; level++ {
		s := math.Ldexp(finest, level)
		if err := checkSquare(tiles, finest, s, 2<<level); err != nil {
			return err
		}
	}
	return nil
}

// checkSquare counts coverage of the cells in [-half, half)² (finest units)
// by tiles no larger than limit.
func checkSquare(tiles []Descriptor, finest, limit float64, half int) error {
	size := 2 * half
	cells := make([]uint8, size*size)

	for i, d := range tiles {
		if d.Scale > limit {
			continue
		}
		x0 := int(math.Round(d.X/finest)) + half
		y0 := int(math.Round(d.Y/finest)) + half
		n := int(math.Round(d.Scale / finest))
		if x0 < 0 || y0 < 0 || x0+n > size || y0+n > size {
			return fmt.Errorf("%w: tile %d at (%g, %g) leaves the square of scale %g", ErrCoverage, i, d.X, d.Y, limit)
		}
		for y := y0; y < y0+n; y++ {
			for x := x0; x < x0+n; x++ {
				cells[y*size+x]++
			}
		}
	}

	for i, c := range cells {
		if c != 1 {
			return fmt.Errorf("%w: cell (%d, %d) covered %d times at scale %g",
				ErrCoverage, i%size-half, i/size-half, c, limit)
		}
	}
	return nil
}
