package clipmap

import "fmt"

// Merge concatenates the tiles, in order, into one set of buffers and
// rewrites each tile's local indices to global vertex indices.
//
// Buffers are allocated once at their final size. Merge fails if the total
// vertex count does not fit the index format or if a tile references a
// vertex outside its own block.
func Merge(tiles []Tile, format IndexFormat) (*Buffers, error) {
	var vertices, indices uint64
	for i := range tiles {
		vertices += uint64(tiles[i].VertexCount())
		indices += uint64(len(tiles[i].Indices))
	}
	if vertices > format.MaxVertices() {
		return nil, fmt.Errorf("%w: %d vertices, %s addresses at most %d",
			ErrCapacity, vertices, format, format.MaxVertices())
	}

	b := &Buffers{
		Positions: make([]float32, 0, vertices*3),
		Indices:   make([]uint32, 0, indices),
		Scales:    make([]float32, 0, vertices),
		Format:    format,
	}

	for i := range tiles {
		t := &tiles[i]
		n := uint32(t.VertexCount())
		base := uint32(len(b.Scales))
		if t.Descriptor.IndexOffset != base {
			return nil, fmt.Errorf("%w: tile %d starts at vertex %d, offset says %d",
				ErrIndexRange, i, base, t.Descriptor.IndexOffset)
		}

		for _, idx := range t.Indices {
			if idx >= n {
				return nil, fmt.Errorf("%w: tile %d index %d, tile has %d vertices",
					ErrIndexRange, i, idx, n)
			}
			b.Indices = append(b.Indices, base+idx)
		}
		b.Positions = append(b.Positions, t.Positions...)
		b.Scales = append(b.Scales, t.Scales...)
	}

	return b, nil
}
