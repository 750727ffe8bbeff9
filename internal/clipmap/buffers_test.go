package clipmap

import (
	"errors"
	"slices"
	"testing"
)

func buildLayout(scale float64, res, levels int) []Tile {
	layout := Layout(scale, res, levels)
	tiles := make([]Tile, len(layout))
	for i, d := range layout {
		tiles[i] = BuildTile(d, res)
	}
	return tiles
}

func TestMergeOffsetsIndices(t *testing.T) {
	tiles := buildLayout(1, 2, 0)
	b, err := Merge(tiles, IndexUint16)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if b.VertexCount() != 4*9 {
		t.Fatalf("expected 36 vertices, got %d", b.VertexCount())
	}
	if len(b.Indices) != 4*24 {
		t.Fatalf("expected 96 indices, got %d", len(b.Indices))
	}

	// Second tile's first quad is the resolution-2 pattern shifted by 9.
	want := []uint32{9, 10, 13, 9, 13, 12}
	if got := b.Indices[24:30]; !slices.Equal(got, want) {
		t.Errorf("tile 1 first quad = %v, want %v", got, want)
	}
}

func TestMergeConcatenatesInOrder(t *testing.T) {
	tiles := buildLayout(1, 3, 1)
	b, err := Merge(tiles, IndexUint32)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	var pos, scales []float32
	for _, tile := range tiles {
		pos = append(pos, tile.Positions...)
		scales = append(scales, tile.Scales...)
	}
	if !slices.Equal(b.Positions, pos) {
		t.Error("positions are not the in-order concatenation of the tiles")
	}
	if !slices.Equal(b.Scales, scales) {
		t.Error("scales are not the in-order concatenation of the tiles")
	}
	if cap(b.Positions) != len(b.Positions) || cap(b.Indices) != len(b.Indices) {
		t.Error("buffers should be allocated at their exact final size")
	}
}

func TestMergeIndicesUnpadded(t *testing.T) {
	for _, levels := range []int{0, 1, 3} {
		b, err := Merge(buildLayout(0.5, 4, levels), IndexUint16)
		if err != nil {
			t.Fatalf("levels %d: Merge failed: %v", levels, err)
		}
		triangles := TileCount(levels) * 4 * 4 * 2
		if len(b.Indices) != 3*triangles || cap(b.Indices) != len(b.Indices) {
			t.Errorf("levels %d: %d indices (cap %d), want exactly %d",
				levels, len(b.Indices), cap(b.Indices), 3*triangles)
		}
		if err := CheckIndices(b, 4); err != nil {
			t.Errorf("levels %d: %v", levels, err)
		}
	}
}

func TestMergeCapacity(t *testing.T) {
	tiles := buildLayout(1, 200, 0) // 4 * 201² vertices
	if _, err := Merge(tiles, IndexUint16); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity, got %v", err)
	}
	if _, err := Merge(tiles, IndexUint32); err != nil {
		t.Errorf("uint32 merge failed: %v", err)
	}
}

func TestMergeRejectsForeignIndex(t *testing.T) {
	tiles := buildLayout(1, 2, 0)
	tiles[1].Indices[0] = 9 // one past the tile's last vertex
	if _, err := Merge(tiles, IndexUint16); !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestMergeRejectsWrongOffset(t *testing.T) {
	tiles := buildLayout(1, 2, 0)
	tiles[0], tiles[1] = tiles[1], tiles[0]
	if _, err := Merge(tiles, IndexUint16); !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange for reordered tiles, got %v", err)
	}
}

func TestIndices16WrongFormat(t *testing.T) {
	b, err := Merge(buildLayout(1, 2, 0), IndexUint32)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if _, err := b.Indices16(); err == nil {
		t.Error("expected Indices16 to fail on uint32 buffers")
	}
}

func TestMergeEmpty(t *testing.T) {
	b, err := Merge(nil, IndexUint16)
	if err != nil {
		t.Fatalf("Merge(nil) failed: %v", err)
	}
	if b.VertexCount() != 0 || b.TriangleCount() != 0 {
		t.Errorf("expected empty buffers, got %d vertices %d triangles", b.VertexCount(), b.TriangleCount())
	}
}

func TestBuffersByteSize(t *testing.T) {
	tests := []struct {
		format IndexFormat
		want   int
	}{
		// 36 vertices: 432 position bytes + 144 scale bytes, 96 indices.
		{IndexUint16, 432 + 144 + 96*2},
		{IndexUint32, 432 + 144 + 96*4},
	}

	for _, tt := range tests {
		b, err := Merge(buildLayout(1, 2, 0), tt.format)
		if err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if got := b.ByteSize(); got != tt.want {
			t.Errorf("%s: ByteSize = %d, want %d", tt.format, got, tt.want)
		}
	}
}
