package splat

import (
	"github.com/chewxy/math32"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

// FragmentStageOutput is the CPU mirror of §4.F's per-pixel evaluation.
type FragmentStageOutput struct {
	Discarded bool
	Alpha     float32
	Barycoord [3]float32
	Color     [3]float32
}

// RunFragmentStage evaluates the soft alpha and interpolated color at pixel
// p inside a triangle already through the vertex stage (§4.F). colors are
// the three per-vertex colors produced by the vertex stage (either baked
// direct RGB or per-corner SH evaluations, per §4.E "Per-vertex colors").
func RunFragmentStage(p gmath.Vec2, v VertexStageOutput, colors [3][3]float32) FragmentStageOutput {
	var delta [3]float32
	maxDelta := math32.Inf(-1)
	for k := 0; k < 3; k++ {
		delta[k] = v.EdgeNormal[k].Dot(p) + v.EdgeOffset[k]
		if delta[k] > 0 {
			return FragmentStageOutput{Discarded: true}
		}
		if delta[k] > maxDelta {
			maxDelta = delta[k]
		}
	}

	cx := math32.Pow(math32.Max(0, maxDelta*v.PhiScale), v.Sigma)
	alpha := math32.Min(0.99, v.M*cx)
	if alpha < AlphaThreshold {
		return FragmentStageOutput{Discarded: true}
	}

	bary := screenBarycentric(p, v.P)
	var color [3]float32
	for c := 0; c < 3; c++ {
		color[c] = bary[0]*colors[0][c] + bary[1]*colors[1][c] + bary[2]*colors[2][c]
	}

	return FragmentStageOutput{
		Alpha:     alpha,
		Barycoord: bary,
		Color:     color,
	}
}

// screenBarycentric computes the screen-space barycentric coordinates of p
// w.r.t. triangle corners tri, falling back to the uniform weighting on
// near-zero denominators (§4.F.6).
func screenBarycentric(p gmath.Vec2, tri [3]gmath.Vec2) [3]float32 {
	p0, p1, p2 := tri[0], tri[1], tri[2]
	denom := (p1.Y-p2.Y)*(p0.X-p2.X) + (p2.X-p1.X)*(p0.Y-p2.Y)
	if math32.Abs(denom) < DegenerateEps {
		return [3]float32{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	b0 := ((p1.Y-p2.Y)*(p.X-p2.X) + (p2.X-p1.X)*(p.Y-p2.Y)) / denom
	b1 := ((p2.Y-p0.Y)*(p.X-p2.X) + (p0.X-p2.X)*(p.Y-p2.Y)) / denom
	b2 := 1 - b0 - b1
	return [3]float32{b0, b1, b2}
}
