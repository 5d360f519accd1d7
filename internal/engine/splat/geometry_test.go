package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

func square() *Scene {
	return &Scene{
		Vertices: []gmath.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		TriangleIndices: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
}

// Scenario 1: min-weight filter — both triangles killed by gate 1.
func TestMinWeightFilterRejectsAll(t *testing.T) {
	s := square()
	s.Opacities = []float32{0.001, 0.5, 0.5, 0.5}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	u := Uniforms{
		ModelView:  gmath.Identity(),
		Projection: gmath.Identity(),
		Resolution: [2]float32{1920, 1080},
		Sigma:      1,
	}
	report := Analyze(g, u, 1)
	assert.Equal(t, 2, report.Gates.MinWeightFiltered)
	assert.Equal(t, 0, report.Gates.Passed)
	assert.Equal(t, 100.0, report.Gates.FilterPercentage())
}

// Scenario 2: min-weight pass — both triangles reach the backface test.
func TestMinWeightFilterPasses(t *testing.T) {
	s := square()
	s.Opacities = []float32{0.5, 0.5, 0.5, 0.5}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	for tri := 0; tri < g.TriangleCount; tri++ {
		rec := g.Corners[3*tri]
		m := minOf3(rec.W0, rec.W1, rec.W2)
		assert.GreaterOrEqual(t, m, float32(StoppingInfluence))
	}
}

// Scenario 3: unrolling — T=2 triangles produce a 6-corner buffer with the
// documented barycentric selector pattern.
func TestUnrollingProducesBarycentricSelectors(t *testing.T) {
	s := square()
	s.Opacities = []float32{0.5, 0.5, 0.5, 0.5}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	require.Len(t, g.Corners, 6)
	want := [6][3]float32{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	for i, rec := range g.Corners {
		assert.Equal(t, want[i], rec.Barycentric)
	}
}

// Scenario 4: centroid — triangle (0,0,0),(1,0,0),(0,1,0) yields (1/3,1/3,0).
func TestCentroid(t *testing.T) {
	s := &Scene{
		Vertices: []gmath.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		TriangleIndices: [][3]uint32{{0, 1, 2}},
		Opacities:       []float32{1, 1, 1},
	}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	require.Len(t, g.Centroids, 1)
	assert.InDelta(t, 1.0/3, g.Centroids[0].X, 1e-4)
	assert.InDelta(t, 1.0/3, g.Centroids[0].Y, 1e-4)
	assert.InDelta(t, 0.0, g.Centroids[0].Z, 1e-4)
}

// I1: the three corners of a triangle share identical V0,V1,V2,w0,w1,w2,m.
func TestCornersShareTriangleData(t *testing.T) {
	s := square()
	s.Opacities = []float32{0.1, 0.2, 0.9, 0.4}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	for tri := 0; tri < g.TriangleCount; tri++ {
		base := 3 * tri
		first := g.Corners[base]
		for c := 1; c < 3; c++ {
			rec := g.Corners[base+c]
			assert.Equal(t, first.V0, rec.V0)
			assert.Equal(t, first.V1, rec.V1)
			assert.Equal(t, first.V2, rec.V2)
			assert.Equal(t, first.W0, rec.W0)
			assert.Equal(t, first.W1, rec.W1)
			assert.Equal(t, first.W2, rec.W2)
			assert.Equal(t, first.M, rec.M)
		}
	}
}

// I2: the index buffer is a permutation of the T triangle-triples.
func TestIdentityIndexBufferIsPermutation(t *testing.T) {
	s := square()
	s.Opacities = []float32{1, 1, 1, 1}
	g, err := BuildGeometry(s)
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, idx := range g.Indices {
		assert.False(t, seen[idx], "duplicate corner index %d", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, 3*g.TriangleCount)
}

// I4: m must come from activated opacities, never raw pre-activation weights.
func TestMDerivedFromActivatedOpacitiesOnly(t *testing.T) {
	rawWeight := float32(-5.0) // would sigmoid to a small number, not directly comparable to m
	activated := ActivateOpacity(rawWeight, 0)
	s := &Scene{
		Vertices:        []gmath.Vec3{{}, {X: 1}, {Y: 1}},
		TriangleIndices: [][3]uint32{{0, 1, 2}},
		Opacities:       []float32{activated, 1, 1},
	}
	g, err := BuildGeometry(s)
	require.NoError(t, err)
	assert.Equal(t, activated, g.Corners[0].M)
}

func TestValidateRejectsShapeMismatch(t *testing.T) {
	s := square()
	s.Opacities = []float32{1, 1, 1} // wrong length
	_, err := BuildGeometry(s)
	assert.Error(t, err)
}

func TestValidateRejectsBadSHRestShape(t *testing.T) {
	s := square()
	s.Opacities = []float32{1, 1, 1, 1}
	s.SHDegree = 1 // expects RestCoeffCount(1) == 3 triples
	s.FeaturesDC = [][3]float32{{}, {}, {}, {}}
	s.FeaturesRest = [][][3]float32{{{}}, {{}}, {{}}, {{}}} // only 1 triple, want 3
	_, err := BuildGeometry(s)
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeTriangleIndex(t *testing.T) {
	s := square()
	s.Opacities = []float32{1, 1, 1, 1}
	s.TriangleIndices[0][0] = 99
	_, err := BuildGeometry(s)
	assert.Error(t, err)
}

func TestEmptySceneIsValid(t *testing.T) {
	s := &Scene{Opacities: nil}
	g, err := BuildGeometry(s)
	require.NoError(t, err)
	assert.Equal(t, 0, g.TriangleCount)
	assert.Empty(t, g.Corners)
	assert.Empty(t, g.Indices)
}
