package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

// perspectiveLikeProjection produces w = -z so that points in front of the
// camera (z<0, looking down -z) get positive clip w and points behind (z>0)
// get w<=0, without pulling in the full Perspective() matrix's aspect/fov
// machinery.
func perspectiveLikeProjection() gmath.Mat4 {
	m := gmath.Identity()
	m[11] = -1
	m[15] = 0
	return m
}

func baseUniforms() Uniforms {
	return Uniforms{
		ModelView:  gmath.Identity(),
		Projection: perspectiveLikeProjection(),
		Resolution: [2]float32{1000, 1000},
		Sigma:      1,
	}
}

func TestVertexStageRejectsBelowMinOpacity(t *testing.T) {
	out := RunVertexStage(
		gmath.Vec3{X: -1, Y: -1, Z: -5},
		gmath.Vec3{X: 1, Y: -1, Z: -5},
		gmath.Vec3{X: 0, Y: 1, Z: -5},
		0.5, 0.5, 0.001, // min below StoppingInfluence
		baseUniforms(),
	)
	assert.True(t, out.Culled)
	assert.Equal(t, CullOpacity, out.CullReason)
}

func TestVertexStageRejectsAllBehindCamera(t *testing.T) {
	out := RunVertexStage(
		gmath.Vec3{X: -1, Y: -1, Z: 5},
		gmath.Vec3{X: 1, Y: -1, Z: 5},
		gmath.Vec3{X: 0, Y: 1, Z: 5},
		1, 1, 1,
		baseUniforms(),
	)
	assert.True(t, out.Culled)
	assert.Equal(t, CullClipW, out.CullReason)
}

func TestVertexStageRejectsDegenerateZeroAreaTriangle(t *testing.T) {
	// All three vertices coincide: the cross-product normal is the zero
	// vector, so the backface test's dot product is 0 and fails the
	// threshold before perimeter is ever computed.
	out := RunVertexStage(
		gmath.Vec3{X: 0, Y: 0, Z: -5},
		gmath.Vec3{X: 0, Y: 0, Z: -5},
		gmath.Vec3{X: 0, Y: 0, Z: -5},
		1, 1, 1,
		baseUniforms(),
	)
	assert.True(t, out.Culled)
	assert.Equal(t, CullBackface, out.CullReason)
}

func TestVertexStageRejectsOversizedTriangle(t *testing.T) {
	out := RunVertexStage(
		gmath.Vec3{X: -10000, Y: -10000, Z: -5},
		gmath.Vec3{X: 10000, Y: -10000, Z: -5},
		gmath.Vec3{X: 0, Y: 10000, Z: -5},
		1, 1, 1,
		baseUniforms(),
	)
	assert.True(t, out.Culled)
	assert.Equal(t, CullSize, out.CullReason)
	assert.Greater(t, out.IncenterR, float32(DistanceMax))
}

func TestVertexStagePassesReasonableTriangle(t *testing.T) {
	out := RunVertexStage(
		gmath.Vec3{X: -1, Y: -1, Z: -5},
		gmath.Vec3{X: 1, Y: -1, Z: -5},
		gmath.Vec3{X: 0, Y: 1, Z: -5},
		0.9, 0.9, 0.9,
		baseUniforms(),
	)
	require.False(t, out.Culled)
	assert.Equal(t, float32(0.9), out.M)
	assert.Equal(t, float32(1), out.Sigma)
	assert.Greater(t, out.IncenterR, float32(0))
	// PhiScale is always negative: edgeD[2] at the incenter is <= 0 by
	// construction, so dividing 1 by it (clamped away from zero) stays
	// negative, and the fragment stage relies on that sign to turn the
	// (also non-positive) per-pixel delta into a non-negative falloff term.
	assert.Less(t, out.PhiScale, float32(0))
}

func TestNdcToPixelHalfPixelShiftConvention(t *testing.T) {
	resolution := [2]float32{1920, 1080}
	// NDC center (0,0) with w=1 should land at (resolution/2 - 0.5).
	p := ndcToPixel(gmath.Vec4{0, 0, 0, 1}, resolution)
	assert.InDelta(t, 1920*0.5-0.5, p.X, 1e-4)
	assert.InDelta(t, 1080*0.5-0.5, p.Y, 1e-4)
}
