// Package export writes clipmap meshes in interchange formats for inspection
// in external modelling tools.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
)

// WriteOBJ writes g as a Wavefront OBJ. Each tile becomes its own group and
// the tile scale is stored as the u texture coordinate of every vertex.
func WriteOBJ(w io.Writer, g *clipmap.Geometry) error {
	bw := bufio.NewWriter(w)
	b := g.Buffers
	cfg := g.Config

	fmt.Fprintf(bw, "# planet clipmap scale=%g resolution=%d levels=%d\n", cfg.Scale, cfg.Resolution, cfg.Levels)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", b.VertexCount(), b.TriangleCount())

	for v := 0; v < b.VertexCount(); v++ {
		fmt.Fprintf(bw, "v %g %g %g\n", b.Positions[v*3], b.Positions[v*3+1], b.Positions[v*3+2])
	}
	for v := 0; v < b.VertexCount(); v++ {
		fmt.Fprintf(bw, "vt %g 0\n", b.Scales[v])
	}

	perTile := cfg.Resolution * cfg.Resolution * 6
	layout := clipmap.Layout(cfg.Scale, cfg.Resolution, cfg.Levels)
	for i := 0; i+2 < len(b.Indices); i += 3 {
		if perTile > 0 && i%perTile == 0 {
			tile := i / perTile
			d := layout[tile]
			fmt.Fprintf(bw, "g tile%d_%s_%g\n", tile, d.Morph, d.Scale)
		}
		// OBJ indices are 1-based
		a, c, e := b.Indices[i]+1, b.Indices[i+1]+1, b.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, c, c, e, e)
	}

	return bw.Flush()
}
