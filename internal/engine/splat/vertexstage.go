package splat

import (
	"github.com/chewxy/math32"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

// Uniforms are the per-frame values the vertex/fragment stages read (§4.D,
// §6 "Render inputs per frame").
type Uniforms struct {
	ModelView  gmath.Mat4
	Projection gmath.Mat4
	CameraPos  gmath.Vec3
	Sigma      float32
	Resolution [2]float32
}

// CullStage names the cull-chain step that rejected a triangle, for the
// diagnostic analyzer's per-gate counters (§4.G).
type CullStage string

const (
	CullNone      CullStage = ""
	CullOpacity   CullStage = "min_opacity"
	CullBackface  CullStage = "backface"
	CullClipW     CullStage = "clip_w"
	CullPerimeter CullStage = "perimeter"
	CullSize      CullStage = "size"
)

// VertexStageOutput is the CPU mirror of what the real vertex shader would
// hand off to the fragment shader (§4.E): per the spec, a single rejected
// corner kills the whole triangle, so this models one triangle at a time
// rather than one corner invocation.
type VertexStageOutput struct {
	Culled     bool
	CullReason CullStage

	P          [3]gmath.Vec2
	EdgeNormal [3]gmath.Vec2
	EdgeOffset [3]float32 // o'_k, post-shrink
	M          float32
	PhiScale   float32
	Sigma      float32
	Incenter   gmath.Vec2
	IncenterR  float32 // r, the incenter-to-corner radius used by the size gate
}

func rejected(reason CullStage) VertexStageOutput {
	return VertexStageOutput{Culled: true, CullReason: reason}
}

// RunVertexStage mirrors §4.E's culling sequence and edge-shrink math for
// one triangle. It is the reference both the diagnostic analyzer and the
// real GLSL vertex shader (internal/engine/shader) are grounded on.
func RunVertexStage(v0, v1, v2 gmath.Vec3, w0, w1, w2 float32, u Uniforms) VertexStageOutput {
	// 1. Min-opacity gate.
	m := minOf3(w0, w1, w2)
	if m < StoppingInfluence {
		return rejected(CullOpacity)
	}

	// 2. Backface test.
	worldNormal := v1.Sub(v0).Cross(v2.Sub(v0))
	viewNormalArr := u.ModelView.TransformDirection([3]float32{worldNormal.X, worldNormal.Y, worldNormal.Z})
	viewNormal := gmath.Vec3{X: viewNormalArr[0], Y: viewNormalArr[1], Z: viewNormalArr[2]}.Normalize()

	centroid := v0.Add(v1).Add(v2).Scale(1.0 / 3.0)
	centroidView := u.ModelView.TransformVec3(centroid)
	viewDir := centroidView.Normalize().Scale(-1)

	c := viewNormal.Dot(viewDir)
	if c > 0 {
		viewNormal = viewNormal.Scale(-1)
		c = -c
	}
	if math32.Abs(c) < BackfaceThreshold {
		return rejected(CullBackface)
	}

	// 3. Clip-space vertices.
	mvp := u.Projection.Mul(u.ModelView)
	c0 := mvp.MulVec4(gmath.Vec4{v0.X, v0.Y, v0.Z, 1})
	c1 := mvp.MulVec4(gmath.Vec4{v1.X, v1.Y, v1.Z, 1})
	c2 := mvp.MulVec4(gmath.Vec4{v2.X, v2.Y, v2.Z, 1})
	if c0[3] <= 0 && c1[3] <= 0 && c2[3] <= 0 {
		return rejected(CullClipW)
	}

	// 4. Pixel projection.
	p0 := ndcToPixel(c0, u.Resolution)
	p1 := ndcToPixel(c1, u.Resolution)
	p2 := ndcToPixel(c2, u.Resolution)

	// 5. Incenter.
	a := p1.Distance(p2)
	b := p2.Distance(p0)
	cc := p0.Distance(p1)
	perim := a + b + cc
	if perim < PerimeterThreshold {
		return rejected(CullPerimeter)
	}
	incenter := p0.Scale(a).Add(p1.Scale(b)).Add(p2.Scale(cc)).Scale(1.0 / perim)

	// 6. Size gate.
	r := math32.Max(p0.Distance(incenter), math32.Max(p1.Distance(incenter), p2.Distance(incenter)))
	if r > DistanceMax || r < DistanceMin {
		return VertexStageOutput{Culled: true, CullReason: CullSize, Incenter: incenter, IncenterR: r}
	}

	p := [3]gmath.Vec2{p0, p1, p2}
	var edgeNormal [3]gmath.Vec2
	var edgeOffset [3]float32
	var edgeD [3]float32

	for k := 0; k < 3; k++ {
		pk := p[k]
		pk1 := p[(k+1)%3]
		n := pk1.Sub(pk).Perp().Normalize()
		o := -n.Dot(pk)
		d := n.Dot(incenter) + o
		if d > 0 {
			n = n.Scale(-1)
			o = -o
			d = -d
		}
		edgeNormal[k] = n
		edgeOffset[k] = o
		edgeD[k] = d
	}

	shrink := edgeD[0] * math32.Pow(StoppingInfluence/m, 1.0/u.Sigma)
	for k := 0; k < 3; k++ {
		edgeOffset[k] -= shrink
	}

	phiScale := 1.0 / math32.Min(edgeD[2], -SafeDistEps)

	return VertexStageOutput{
		P:          p,
		EdgeNormal: edgeNormal,
		EdgeOffset: edgeOffset,
		M:          m,
		PhiScale:   phiScale,
		Sigma:      u.Sigma,
		Incenter:   incenter,
		IncenterR:  r,
	}
}

// ndcToPixel matches the reference CUDA ndc2Pix convention with a half-pixel
// shift (§4.E.4): p = ((c.xy/c.w)+1)*resolution*0.5 - 0.5.
func ndcToPixel(clip gmath.Vec4, resolution [2]float32) gmath.Vec2 {
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return gmath.Vec2{
		X: (ndcX+1)*resolution[0]*0.5 - 0.5,
		Y: (ndcY+1)*resolution[1]*0.5 - 0.5,
	}
}
