package clipmap

import "math"

// shellTile is one tile of a shell, in units of the shell scale.
type shellTile struct {
	x, y  float64
	morph Morph
}

// shell lists the twelve tiles of a ring around [-s, s]², walking
// top -> right -> bottom -> left. The last tile of each edge is the corner
// shared with the next edge and blends toward both.
//
//	      -->
//	+---+---+---+---+
//	| L | T | T | T |
//	+---+---+---+---+
//	| L |   |   | R |  |
//	+---+---+---+---+  v
//	| L |   |   | R |
//	+---+---+---+---+
//	| B | B | B | R |
//	+---+---+---+---+
//	        <--
var shell = [12]shellTile{
	{-1, 1, MorphTop},
	{0, 1, MorphTop},
	{1, 1, MorphTopRight},

	{1, 0, MorphRight},
	{1, -1, MorphRight},
	{1, -2, MorphRightBottom},

	{0, -2, MorphBottom},
	{-1, -2, MorphBottom},
	{-2, -2, MorphBottomLeft},

	{-2, -1, MorphLeft},
	{-2, 0, MorphLeft},
	{-2, 1, MorphLeftTop},
}

// center lists the 2x2 block around the origin, in units of the finest scale.
var center = [4]shellTile{
	{0, 0, MorphNone},
	{-1, 0, MorphNone},
	{-1, -1, MorphNone},
	{0, -1, MorphNone},
}

// TileCount returns the number of tiles of a clipmap with the given levels.
func TileCount(levels int) int {
	return len(center) + len(shell)*levels
}

// VerticesPerTile returns the vertex count of a single tile.
// The resolution must have passed Config.Validate.
func VerticesPerTile(resolution int) int {
	return (resolution + 1) * (resolution + 1)
}

// tileVertices is VerticesPerTile in 64 bits. ok is false when the count
// does not fit.
func tileVertices(resolution int) (n uint64, ok bool) {
	if resolution < 0 {
		return 0, false
	}
	side := uint64(resolution) + 1
	if side > math.MaxUint32 {
		return 0, false
	}
	return side * side, true
}

// vertexTotal returns the vertex count of a whole clipmap in 64 bits.
// ok is false when the count does not fit.
func vertexTotal(resolution, levels int) (n uint64, ok bool) {
	perTile, ok := tileVertices(resolution)
	if !ok || levels < 0 {
		return 0, false
	}
	tiles := uint64(TileCount(levels))
	if perTile > math.MaxUint64/tiles {
		return 0, false
	}
	return perTile * tiles, true
}

// FinestScale returns the edge length of the center block tiles.
func FinestScale(baseScale float64, levels int) float64 {
	return math.Ldexp(baseScale, -levels)
}

// Layout enumerates the tiles of the clipmap in emission order: the center
// block, then one shell per level from the finest scale outward. The order
// defines the vertex numbering of the merged buffers.
//
// IndexOffset is computed in 32 bits; callers must check the total vertex
// count against the index format first (New does).
func Layout(baseScale float64, resolution, levels int) []Descriptor {
	finest := FinestScale(baseScale, levels)
	perTile, _ := tileVertices(resolution)

	tiles := make([]Descriptor, 0, TileCount(levels))
	emit := func(st shellTile, s float64) {
		tiles = append(tiles, Descriptor{
			X:           st.x * s,
			Y:           st.y * s,
			Scale:       s,
			Morph:       st.morph,
			IndexOffset: uint32(perTile * uint64(len(tiles))),
		})
	}

	for _, st := range center {
		emit(st, finest)
	}
	for level := 0; level < levels; level++ {
		s := math.Ldexp(finest, level)
		for _, st := range shell {
			emit(st, s)
		}
	}
	return tiles
}
