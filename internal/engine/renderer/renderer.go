// Package renderer provides OpenGL rendering functionality for triangle
// splat scenes: it owns the GPU mesh, dispatches background depth sorts,
// and installs completed sort results into the index buffer (§4.D).
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/triangulate/splatgo/internal/engine/shader"
	"github.com/triangulate/splatgo/internal/engine/splat"
	"github.com/triangulate/splatgo/internal/logger"
	gmath "github.com/triangulate/splatgo/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// cornerStride is the number of float32 values per CornerRecord GPU vertex:
// position(3) + barycentric(3) + v0(3) + v1(3) + v2(3) + opacities(3) +
// cornerIndices(3) + color0(3) + color1(3) + color2(3) = 30.
const cornerStride = 30

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer is the render driver described in §4.D: it owns the GPU mesh,
// the sorter worker handle, and the per-frame sort-throttle state machine.
type Renderer struct {
	config Config

	program uint32

	vao uint32
	vbo uint32
	ebo uint32

	shTableTex uint32
	shTableSet bool
	shDegree   int

	triangleCount int

	sorter *splat.Sorter

	prevViewMatrix  gmath.Mat4
	havePrevView    bool
	lastSortTimeMS  int64
	sortInFlight    bool
	currentRequest  uint64
}

// New creates a new renderer. Must be called AFTER the OpenGL context is
// created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		sorter: splat.NewSorter(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Pre-multiplied "over" blending, no depth write, two-sided (§4.F
	// "Blending (pipeline state, not shader)").
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.02, 0.02, 0.03, 1.0)

	program, err := shader.CompileProgram(shader.SplatVertexSource, shader.SplatFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create splat shader program: %w", err)
	}
	r.program = program

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.GenTextures(1, &r.shTableTex)

	return r, nil
}

// Close cleans up renderer resources, including the sorter goroutine
// (§5 "Teardown terminates the sorter actor").
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.sorter.Close()

	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.shTableTex != 0 {
		gl.DeleteTextures(1, &r.shTableTex)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// LoadGeometry uploads a freshly built Geometry to the GPU, replacing
// whatever mesh was previously bound.
func (r *Renderer) LoadGeometry(g *splat.Geometry) {
	r.triangleCount = g.TriangleCount

	gl.BindVertexArray(r.vao)

	vertices := packCorners(g)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	stride := int32(cornerStride * 4)
	offset := 0
	attrSizes := []int32{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	for loc, size := range attrSizes {
		gl.VertexAttribPointer(uint32(loc), size, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(offset)))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += int(size) * 4
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(g.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	if g.HasSH {
		r.uploadSHTable(g.SHTable)
		r.shDegree = g.SHDegree
	} else {
		r.shTableSet = false
	}

	gl.BindVertexArray(0)

	// A fresh mesh invalidates any in-flight sort referencing the old
	// centroid buffer.
	r.sortInFlight = false
	r.havePrevView = false
}

func (r *Renderer) uploadSHTable(t *splat.SHTable) {
	gl.BindTexture(gl.TEXTURE_2D, r.shTableTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.FLOAT, unsafe.Pointer(&t.Data[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.shTableSet = true
}

// packCorners flattens a Geometry's corner records into the interleaved
// vertex-attribute layout the splat shader expects.
func packCorners(g *splat.Geometry) []float32 {
	out := make([]float32, 0, len(g.Corners)*cornerStride)
	for _, c := range g.Corners {
		out = append(out,
			c.Position.X, c.Position.Y, c.Position.Z,
			c.Barycentric[0], c.Barycentric[1], c.Barycentric[2],
			c.V0.X, c.V0.Y, c.V0.Z,
			c.V1.X, c.V1.Y, c.V1.Z,
			c.V2.X, c.V2.Y, c.V2.Z,
			c.W0, c.W1, c.W2,
			float32(c.CornerVertexIndices[0]), float32(c.CornerVertexIndices[1]), float32(c.CornerVertexIndices[2]),
			c.TriangleColors[0][0], c.TriangleColors[0][1], c.TriangleColors[0][2],
			c.TriangleColors[1][0], c.TriangleColors[1][1], c.TriangleColors[1][2],
			c.TriangleColors[2][0], c.TriangleColors[2][1], c.TriangleColors[2][2],
		)
	}
	return out
}

// Frame carries everything the render driver needs for one frame's worth
// of uniforms and sort-dispatch decisions (§4.D "Render inputs per frame").
type Frame struct {
	ModelView  gmath.Mat4
	Projection gmath.Mat4
	CameraPos  gmath.Vec3
	Sigma      float32
	Debug      bool
	Centroids  []gmath.Vec3
	NowMS      int64
}

// Begin starts a new frame: clears the framebuffer, updates uniforms, and
// runs the sort-throttle state machine (§4.D steps 1-2).
func (r *Renderer) Begin(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)

	mv := f.ModelView
	gl.UniformMatrix4fv(shader.MustGetUniform(r.program, "uModelView"), 1, false, mv.Ptr())
	proj := f.Projection
	gl.UniformMatrix4fv(shader.MustGetUniform(r.program, "uProjection"), 1, false, proj.Ptr())
	gl.Uniform2f(shader.MustGetUniform(r.program, "uResolution"), float32(r.config.Width), float32(r.config.Height))
	gl.Uniform1f(shader.MustGetUniform(r.program, "uSigma"), f.Sigma)
	gl.Uniform3f(shader.MustGetUniform(r.program, "uCameraPos"), f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z)
	gl.Uniform1i(shader.MustGetUniform(r.program, "uDebug"), boolToInt(f.Debug))
	gl.Uniform1i(shader.MustGetUniform(r.program, "uHasSH"), boolToInt(r.shTableSet))

	if r.shTableSet {
		gl.Uniform1i(shader.MustGetUniform(r.program, "uSHDegree"), int32(r.shDegree))
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.shTableTex)
		gl.Uniform1i(shader.MustGetUniform(r.program, "uSHTable"), 0)
	}

	r.maybeDispatchSort(f)
}

// maybeDispatchSort implements §4.D step 2: post a new sort request if none
// is in flight, the view matrix changed, and the throttle interval elapsed.
func (r *Renderer) maybeDispatchSort(f Frame) {
	if r.sortInFlight {
		return
	}
	if r.havePrevView && r.prevViewMatrix == f.ModelView {
		return
	}
	if f.NowMS-r.lastSortTimeMS < splat.SortThrottleMS {
		return
	}

	r.currentRequest++
	ok := r.sorter.Submit(splat.SortRequest{
		NumTriangles: r.triangleCount,
		Centroids:    f.Centroids,
		ViewMatrix:   f.ModelView,
		RequestID:    r.currentRequest,
	})
	if ok {
		r.sortInFlight = true
		r.lastSortTimeMS = f.NowMS
		r.prevViewMatrix = f.ModelView
		r.havePrevView = true
	} else {
		r.currentRequest--
	}
}

// DrainSortResults implements §4.D step 3: installs the most recent
// completed sort into the index buffer, dropping stale results by request
// id comparison.
func (r *Renderer) DrainSortResults() {
	for {
		select {
		case result, ok := <-r.sorter.Results():
			if !ok {
				return
			}
			r.sortInFlight = false
			if result.Err != nil {
				logger.Warn("sort request failed", zap.Uint64("requestId", result.RequestID), zap.Error(result.Err))
				continue
			}
			if result.RequestID != r.currentRequest {
				continue // stale: a newer request has already been posted
			}
			r.installIndices(result.Indices)
		default:
			return
		}
	}
}

func (r *Renderer) installIndices(indices []uint32) {
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, unsafe.Pointer(&indices[0]))
	}
	gl.BindVertexArray(0)
}

// Draw renders the current mesh.
func (r *Renderer) Draw() {
	if r.triangleCount == 0 {
		return
	}
	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, int32(3*r.triangleCount), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
