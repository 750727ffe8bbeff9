package clipmap

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/logger"
)

// Config holds the three values that fully determine a clipmap mesh.
type Config struct {
	Scale       float64     // edge half-length of the outermost shell
	Resolution  int         // quads per tile edge
	Levels      int         // number of shells around the center block
	IndexFormat IndexFormat // integer width of the index buffer
}

// Validate checks the configuration without building anything.
func (c Config) Validate() error {
	if c.Resolution < 1 {
		return fmt.Errorf("%w: resolution must be >= 1, got %d", ErrInvalidConfig, c.Resolution)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("%w: scale must be positive and finite, got %g", ErrInvalidConfig, c.Scale)
	}
	if c.Levels < 0 {
		return fmt.Errorf("%w: levels must be >= 0, got %d", ErrInvalidConfig, c.Levels)
	}
	step := FinestScale(c.Scale, c.Levels) / float64(c.Resolution)
	if !(step > 0) || step < math.SmallestNonzeroFloat32 {
		return fmt.Errorf("%w: scale %g with %d levels leaves a zero-size finest tile",
			ErrInvalidConfig, c.Scale, c.Levels)
	}
	if c.IndexFormat != IndexUint16 && c.IndexFormat != IndexUint32 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.IndexFormat)
	}

	limit := c.IndexFormat.MaxVertices()
	vertices, ok := vertexTotal(c.Resolution, c.Levels)
	if !ok {
		return fmt.Errorf("%w: resolution %d with %d levels overflows the vertex count, %s addresses at most %d",
			ErrCapacity, c.Resolution, c.Levels, c.IndexFormat, limit)
	}
	if vertices > limit {
		return fmt.Errorf("%w: resolution %d with %d levels needs %d vertices, %s addresses at most %d",
			ErrCapacity, c.Resolution, c.Levels, vertices, c.IndexFormat, limit)
	}
	return nil
}

// Geometry is a built clipmap. It is immutable after New returns.
type Geometry struct {
	Config  Config
	Buffers *Buffers
	bounds  Bounds
}

// New validates cfg and builds the complete clipmap mesh.
// On error no geometry is returned.
func New(cfg Config) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := CheckSeams(cfg); err != nil {
		logger.Warn("clipmap seams will crack", zap.Error(err))
	}

	layout := Layout(cfg.Scale, cfg.Resolution, cfg.Levels)
	tiles := make([]Tile, len(layout))
	for i, d := range layout {
		tiles[i] = BuildTile(d, cfg.Resolution)
	}

	buffers, err := Merge(tiles, cfg.IndexFormat)
	if err != nil {
		return nil, fmt.Errorf("merging tiles: %w", err)
	}

	g := &Geometry{
		Config:  cfg,
		Buffers: buffers,
		bounds:  computeBounds(buffers.Positions),
	}

	logger.Debug("clipmap built",
		zap.Float64("scale", cfg.Scale),
		zap.Int("resolution", cfg.Resolution),
		zap.Int("levels", cfg.Levels),
		zap.Int("tiles", len(tiles)),
		zap.Int("vertices", buffers.VertexCount()),
		zap.Int("triangles", buffers.TriangleCount()),
		zap.Stringer("index_format", cfg.IndexFormat),
	)

	return g, nil
}

// TileCount returns the number of tiles in the mesh.
func (g *Geometry) TileCount() int {
	return TileCount(g.Config.Levels)
}

// VertexCount returns the number of vertices in the mesh.
func (g *Geometry) VertexCount() int {
	return g.Buffers.VertexCount()
}

// TriangleCount returns the number of triangles in the mesh.
func (g *Geometry) TriangleCount() int {
	return g.Buffers.TriangleCount()
}

// Bounds returns the bounding box of the vertex positions.
func (g *Geometry) Bounds() Bounds {
	return g.bounds
}

func computeBounds(positions []float32) Bounds {
	b := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for i := 0; i+2 < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := positions[i+axis]
			b.Min[axis] = min(b.Min[axis], v)
			b.Max[axis] = max(b.Max[axis], v)
		}
	}
	return b
}
