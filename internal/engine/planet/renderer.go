// Package planet uploads clipmap buffers to the GPU and draws them.
//
// It is the only place that knows about OpenGL buffer objects; the clipmap
// package stays plain data.
package planet

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/engine/planet/shaders"
	"github.com/Faultbox/planet-clipmap/internal/engine/shader"
	"github.com/Faultbox/planet-clipmap/internal/logger"
	"github.com/Faultbox/planet-clipmap/pkg/math"
)

// Attribute locations shared with planet.vert.
const (
	attribPosition = 0
	attribScale    = 1
)

// Params are the per-frame values the vertex stage needs.
type Params struct {
	ViewProj  math.Mat4
	Model     math.Mat4
	Spread    float32
	Radius    float32
	Wireframe bool
}

// Renderer draws one clipmap mesh.
type Renderer struct {
	program uint32
	locs    map[string]int32

	vao      uint32
	vboPos   uint32
	vboScale uint32
	ebo      uint32

	indexCount int32
	indexType  uint32
	version    uint64
}

// NewRenderer compiles the planet shader. An OpenGL context must be current.
func NewRenderer() (*Renderer, error) {
	program, err := shader.CompileProgram(shaders.PlanetVertexShader, shaders.PlanetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("planet shader: %w", err)
	}

	locs, err := shader.Uniforms(program, "uModel", "uViewProj", "uSpread", "uRadius")
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("planet shader: %w", err)
	}

	return &Renderer{program: program, locs: locs}, nil
}

// Sync uploads the holder's geometry if it changed since the last upload.
func (r *Renderer) Sync(h *clipmap.Holder) error {
	g, version := h.Load()
	if version == r.version && r.vao != 0 {
		return nil
	}
	if err := r.Upload(g); err != nil {
		return err
	}
	r.version = version
	return nil
}

// Upload replaces the GPU copy of the mesh with g.
func (r *Renderer) Upload(g *clipmap.Geometry) error {
	b := g.Buffers
	if b.VertexCount() == 0 || len(b.Indices) == 0 {
		return fmt.Errorf("empty clipmap geometry")
	}

	var (
		indexData unsafe.Pointer
		indexSize int
		indexType uint32
	)
	switch b.Format {
	case clipmap.IndexUint16:
		idx, err := b.Indices16()
		if err != nil {
			return err
		}
		indexData, indexSize, indexType = unsafe.Pointer(&idx[0]), len(idx)*2, gl.UNSIGNED_SHORT
	default:
		indexData, indexSize, indexType = unsafe.Pointer(&b.Indices[0]), len(b.Indices)*4, gl.UNSIGNED_INT
	}

	r.release()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vboPos)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vboPos)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Positions)*4, unsafe.Pointer(&b.Positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(attribPosition)

	gl.GenBuffers(1, &r.vboScale)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vboScale)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Scales)*4, unsafe.Pointer(&b.Scales[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribScale, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(attribScale)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexSize, indexData, gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.indexCount = int32(len(b.Indices))
	r.indexType = indexType

	logger.Debug("clipmap uploaded",
		zap.Int("vertices", b.VertexCount()),
		zap.Int32("indices", r.indexCount),
		zap.Stringer("index_format", b.Format),
	)
	return nil
}

// Render draws the uploaded mesh.
func (r *Renderer) Render(p Params) {
	if r.vao == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locs["uViewProj"], 1, false, &p.ViewProj[0])
	gl.UniformMatrix4fv(r.locs["uModel"], 1, false, &p.Model[0])
	gl.Uniform1f(r.locs["uSpread"], p.Spread)
	gl.Uniform1f(r.locs["uRadius"], p.Radius)

	if p.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, r.indexType, nil)
	gl.BindVertexArray(0)

	if p.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *Renderer) release() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	for _, buf := range []*uint32{&r.vboPos, &r.vboScale, &r.ebo} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	r.release()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
