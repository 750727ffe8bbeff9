package clipmap

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestNewDemoScenario(t *testing.T) {
	g, err := New(Config{Scale: 0.5, Resolution: 16, Levels: 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if g.TileCount() != 40 {
		t.Errorf("expected 40 tiles, got %d", g.TileCount())
	}
	if g.VertexCount() != 11560 {
		t.Errorf("expected 11560 vertices, got %d", g.VertexCount())
	}
	if g.TriangleCount() != 40*16*16*2 {
		t.Errorf("expected %d triangles, got %d", 40*16*16*2, g.TriangleCount())
	}
	if g.Buffers.Format != IndexUint16 {
		t.Errorf("expected uint16 indices, got %s", g.Buffers.Format)
	}
	if _, err := g.Buffers.Indices16(); err != nil {
		t.Errorf("Indices16 failed: %v", err)
	}
}

func TestNewCounts(t *testing.T) {
	tests := []struct {
		scale  float64
		res    int
		levels int
	}{
		{1, 1, 0},
		{1, 2, 1},
		{0.5, 16, 3},
		{10, 8, 6},
		{3, 5, 2},
	}

	for _, tt := range tests {
		g, err := New(Config{Scale: tt.scale, Resolution: tt.res, Levels: tt.levels, IndexFormat: IndexUint32})
		if err != nil {
			t.Fatalf("New(%+v) failed: %v", tt, err)
		}
		tiles := 4 + 12*tt.levels
		verts := tiles * (tt.res + 1) * (tt.res + 1)
		tris := tiles * tt.res * tt.res * 2

		if g.VertexCount() != verts {
			t.Errorf("%+v: %d vertices, want %d", tt, g.VertexCount(), verts)
		}
		if len(g.Buffers.Positions) != verts*3 {
			t.Errorf("%+v: %d position floats, want %d", tt, len(g.Buffers.Positions), verts*3)
		}
		if g.TriangleCount() != tris {
			t.Errorf("%+v: %d triangles, want %d", tt, g.TriangleCount(), tris)
		}
	}
}

func TestNewIndicesStayInOwningTile(t *testing.T) {
	const res = 6
	g, err := New(Config{Scale: 1, Resolution: res, Levels: 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	perTile := (res + 1) * (res + 1)
	perTileIndices := res * res * 6
	for i, idx := range g.Buffers.Indices {
		if int(idx) >= g.VertexCount() {
			t.Fatalf("index %d = %d, mesh has %d vertices", i, idx, g.VertexCount())
		}
		tile := i / perTileIndices
		lo, hi := tile*perTile, (tile+1)*perTile
		if int(idx) < lo || int(idx) >= hi {
			t.Fatalf("index %d = %d escapes tile %d [%d, %d)", i, idx, tile, lo, hi)
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	cfg := Config{Scale: 0.5, Resolution: 16, Levels: 3}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !slices.Equal(a.Buffers.Positions, b.Buffers.Positions) {
		t.Error("positions differ between identical builds")
	}
	if !slices.Equal(a.Buffers.Indices, b.Buffers.Indices) {
		t.Error("indices differ between identical builds")
	}
	if !slices.Equal(a.Buffers.Scales, b.Buffers.Scales) {
		t.Error("scales differ between identical builds")
	}
}

func TestNewCenterBlockRegular(t *testing.T) {
	const res = 4
	g, err := New(Config{Scale: 1, Resolution: res, Levels: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	finest := 0.25
	step := finest / res
	for ti, d := range Layout(1, res, 2)[:4] {
		for iy := 0; iy <= res; iy++ {
			for ix := 0; ix <= res; ix++ {
				v := ti*(res+1)*(res+1) + iy*(res+1) + ix
				x, y := g.Buffers.Positions[v*3], g.Buffers.Positions[v*3+1]
				if x != float32(d.X+float64(ix)*step) || y != float32(d.Y+float64(iy)*step) {
					t.Fatalf("center tile %d vertex (%d, %d) = (%g, %g) is not on the regular grid", ti, ix, iy, x, y)
				}
			}
		}
	}
}

// Vertices on the outer boundary of a shell must coincide with vertices of
// the next shell, otherwise the mesh cracks at the level transition.
func TestNewShellSeamsAlign(t *testing.T) {
	const (
		res    = 16
		levels = 4
	)
	g, err := New(Config{Scale: 1, Resolution: res, Levels: levels})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	layout := Layout(1, res, levels)
	perTile := (res + 1) * (res + 1)
	key := func(x, y float32) [2]int64 {
		return [2]int64{int64(math.Round(float64(x) * 1e6)), int64(math.Round(float64(y) * 1e6))}
	}

	finest := FinestScale(1, levels)
	for level := 0; level < levels-1; level++ {
		s := math.Ldexp(finest, level)
		edge := float32(2 * s)

		outer := make(map[[2]int64]bool)
		for ti, d := range layout {
			if d.Scale != 2*s {
				continue
			}
			for v := ti * perTile; v < (ti+1)*perTile; v++ {
				outer[key(g.Buffers.Positions[v*3], g.Buffers.Positions[v*3+1])] = true
			}
		}

		checked := 0
		for ti, d := range layout {
			if d.Scale != s || d.Morph == MorphNone {
				continue
			}
			for v := ti * perTile; v < (ti+1)*perTile; v++ {
				x, y := g.Buffers.Positions[v*3], g.Buffers.Positions[v*3+1]
				onBoundary := x == edge || x == -edge || y == edge || y == -edge
				if !onBoundary {
					continue
				}
				checked++
				if !outer[key(x, y)] {
					t.Fatalf("level %d tile %d: boundary vertex (%g, %g) has no partner in the next shell", level, ti, x, y)
				}
			}
		}
		if checked == 0 {
			t.Fatalf("level %d: no boundary vertices checked", level)
		}
	}
}

func TestNewBounds(t *testing.T) {
	g, err := New(Config{Scale: 0.5, Resolution: 16, Levels: 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b := g.Bounds()
	if b.Min != [3]float32{-0.5, -0.5, 0} || b.Max != [3]float32{0.5, 0.5, 0} {
		t.Errorf("bounds = %+v, want [-0.5,-0.5,0]..[0.5,0.5,0]", b)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero resolution", Config{Scale: 1, Resolution: 0, Levels: 1}, ErrInvalidConfig},
		{"negative resolution", Config{Scale: 1, Resolution: -4, Levels: 1}, ErrInvalidConfig},
		{"zero scale", Config{Scale: 0, Resolution: 4, Levels: 1}, ErrInvalidConfig},
		{"negative scale", Config{Scale: -1, Resolution: 4, Levels: 1}, ErrInvalidConfig},
		{"nan scale", Config{Scale: math.NaN(), Resolution: 4, Levels: 1}, ErrInvalidConfig},
		{"infinite scale", Config{Scale: math.Inf(1), Resolution: 4, Levels: 1}, ErrInvalidConfig},
		{"negative levels", Config{Scale: 1, Resolution: 4, Levels: -1}, ErrInvalidConfig},
		{"finest tile vanishes", Config{Scale: 1, Resolution: 4, Levels: 2000}, ErrInvalidConfig},
		{"unknown format", Config{Scale: 1, Resolution: 4, Levels: 1, IndexFormat: IndexFormat(7)}, ErrInvalidConfig},
		{"uint16 overflow", Config{Scale: 1, Resolution: 255, Levels: 0}, ErrCapacity},
		{"uint16 overflow with levels", Config{Scale: 0.5, Resolution: 64, Levels: 3}, ErrCapacity},
		{"uint32 tile side wraps to zero", Config{Scale: 0.5, Resolution: hugeResolution(1<<32 - 1), IndexFormat: IndexUint32}, ErrCapacity},
		{"uint32 tile count wraps negative", Config{Scale: 0.5, Resolution: hugeResolution(3037000499), IndexFormat: IndexUint32}, ErrCapacity},
		{"uint32 one past 32 bits", Config{Scale: 0.5, Resolution: 1 << 16, IndexFormat: IndexUint32}, ErrCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if g != nil {
				t.Error("expected no geometry on error")
			}
		})
	}
}

// hugeResolution clamps r to the platform int so the table compiles on
// 32-bit targets.
func hugeResolution(r int64) int {
	if r > math.MaxInt {
		return math.MaxInt
	}
	return int(r)
}

func TestVertexTotal(t *testing.T) {
	tests := []struct {
		resolution, levels int
		want               uint64
		ok                 bool
	}{
		{1, 0, 16, true},
		{16, 3, 40 * 289, true},
		{127, 0, 1 << 16, true},
		{-1, 0, 0, false},
		{4, -1, 0, false},
		{hugeResolution(1<<32 - 1), 0, 0, false},
		{hugeResolution(3037000499), 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := vertexTotal(tt.resolution, tt.levels)
		if ok != tt.ok || got != tt.want {
			t.Errorf("vertexTotal(%d, %d) = %d, %v; want %d, %v",
				tt.resolution, tt.levels, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewCapacityBoundary(t *testing.T) {
	// 4 tiles of 128x128 vertices is exactly 65536.
	g, err := New(Config{Scale: 1, Resolution: 127, Levels: 0, IndexFormat: IndexUint16})
	if err != nil {
		t.Fatalf("expected 65536 vertices to fit uint16, got %v", err)
	}
	if g.VertexCount() != 1<<16 {
		t.Errorf("expected 65536 vertices, got %d", g.VertexCount())
	}
	idx, err := g.Buffers.Indices16()
	if err != nil {
		t.Fatalf("Indices16 failed: %v", err)
	}
	if slices.Max(idx) != math.MaxUint16 {
		t.Errorf("expected highest index %d, got %d", math.MaxUint16, slices.Max(idx))
	}

	if _, err := New(Config{Scale: 1, Resolution: 128, Levels: 0, IndexFormat: IndexUint16}); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity one step past the boundary, got %v", err)
	}
	if _, err := New(Config{Scale: 1, Resolution: 128, Levels: 0, IndexFormat: IndexUint32}); err != nil {
		t.Errorf("uint32 should fit 66564 vertices, got %v", err)
	}
}

func TestParseIndexFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexFormat
		wantErr bool
	}{
		{"", IndexUint16, false},
		{"uint16", IndexUint16, false},
		{"u32", IndexUint32, false},
		{"uint32", IndexUint32, false},
		{"int8", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIndexFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIndexFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseIndexFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
