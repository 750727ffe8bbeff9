package clipmap

import "math"

// snapEpsilon absorbs the rounding error of i*step when testing whether a
// coordinate sits on the coarser (2*step) lattice.
const snapEpsilon = 1e-10

// BuildTile generates the vertex grid and local triangle list of one tile.
//
// The grid has (resolution+1)² vertices in row-major order (y outer, x inner).
// Vertices are blended toward the lattice of a tile twice as coarse by the
// morph weight of their tile-space position, so they meet the next ring's
// vertices exactly at the flagged edges.
func BuildTile(d Descriptor, resolution int) Tile {
	res1 := resolution + 1
	step := d.Scale / float64(resolution)
	scale := float32(d.Scale)

	t := Tile{
		Descriptor: d,
		Positions:  make([]float32, 0, res1*res1*3),
		Scales:     make([]float32, 0, res1*res1),
		Indices:    make([]uint32, 0, resolution*resolution*6),
	}

	for iy := 0; iy < res1; iy++ {
		ly := float64(iy) * step
		ty := 2 * (ly/d.Scale - 0.5)
		for ix := 0; ix < res1; ix++ {
			lx := float64(ix) * step
			tx := 2 * (lx/d.Scale - 0.5)

			m := MorphWeight(tx, ty, d.Morph)

			px, py := d.X+lx, d.Y+ly
			nx, ny := px, py
			if !onCoarseLattice(lx, step) {
				nx -= step
			}
			if !onCoarseLattice(ly, step) {
				ny -= step
			}

			t.Positions = append(t.Positions,
				float32((1-m)*px+m*nx),
				float32((1-m)*py+m*ny),
				0,
			)
			t.Scales = append(t.Scales, scale)
		}
	}

	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			self := uint32(y*res1 + x)
			right := self + 1
			down := self + uint32(res1)
			rightDown := down + 1

			t.Indices = append(t.Indices,
				self, right, rightDown,
				self, rightDown, down,
			)
		}
	}

	return t
}

// onCoarseLattice reports whether the local coordinate v lies on a multiple
// of 2*step. The remainder is compared against both ends of the interval
// since i*step may round to just below an even multiple.
func onCoarseLattice(v, step float64) bool {
	r := math.Mod(v, 2*step)
	return r <= snapEpsilon || 2*step-r <= snapEpsilon
}
