// Package clipmap builds the static geometric clipmap mesh for the planet
// surface: a dense center block wrapped in square shells that double in size,
// with vertices near shell edges pulled toward the coarser lattice outside.
package clipmap

import "fmt"

// Descriptor places one tile of the clipmap.
type Descriptor struct {
	X, Y        float64 // world-space origin (lower-left corner)
	Scale       float64 // edge length in world units
	Morph       Morph
	IndexOffset uint32 // first vertex this tile occupies in the merged buffer
}

// Tile holds the buffers of one built tile.
// Indices are local to the tile and get IndexOffset added during Merge.
type Tile struct {
	Descriptor Descriptor
	Positions  []float32 // x, y, z per vertex
	Scales     []float32 // one per vertex
	Indices    []uint32  // 3 per triangle
}

// VertexCount returns the number of vertices of the tile.
func (t *Tile) VertexCount() int {
	return len(t.Scales)
}

// Buffers is the merged mesh payload handed to the renderer.
// The slices must be treated as read-only once published.
//
// Indices holds exactly three entries per triangle and no padding: trailing
// zeros would draw degenerate triangles through vertex 0, outside the tile
// that owns them.
type Buffers struct {
	Positions []float32
	Indices   []uint32
	Scales    []float32
	Format    IndexFormat
}

// VertexCount returns the number of vertices in the buffers.
func (b *Buffers) VertexCount() int {
	return len(b.Scales)
}

// TriangleCount returns the number of triangles in the index buffer.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// ByteSize returns the GPU footprint of the buffers in their index format.
func (b *Buffers) ByteSize() int {
	return (len(b.Positions)+len(b.Scales))*4 + len(b.Indices)*b.Format.ByteSize()
}

// Indices16 returns the index buffer narrowed to 16 bits.
// It fails unless the buffers were merged for IndexUint16.
func (b *Buffers) Indices16() ([]uint16, error) {
	if b.Format != IndexUint16 {
		return nil, fmt.Errorf("%w: buffers use %s indices", ErrCapacity, b.Format)
	}
	out := make([]uint16, len(b.Indices))
	for i, idx := range b.Indices {
		out[i] = uint16(idx)
	}
	return out, nil
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// IndexFormat is the integer width of the index buffer.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// MaxVertices returns how many distinct vertices the format can address.
func (f IndexFormat) MaxVertices() uint64 {
	switch f {
	case IndexUint32:
		return 1 << 32
	default:
		return 1 << 16
	}
}

// ByteSize returns the size of one index in bytes.
func (f IndexFormat) ByteSize() int {
	if f == IndexUint32 {
		return 4
	}
	return 2
}

func (f IndexFormat) String() string {
	switch f {
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return fmt.Sprintf("IndexFormat(%d)", int(f))
	}
}

// ParseIndexFormat converts a config string to an IndexFormat.
// The empty string selects IndexUint16.
func ParseIndexFormat(s string) (IndexFormat, error) {
	switch s {
	case "", "uint16", "u16":
		return IndexUint16, nil
	case "uint32", "u32":
		return IndexUint32, nil
	default:
		return 0, fmt.Errorf("%w: unknown index format %q", ErrInvalidConfig, s)
	}
}
