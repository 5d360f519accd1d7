package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

// depthView builds a ModelView matrix whose third row is (0,0,1,0) so that
// depthOf(mv, c) == c.Z exactly, isolating the bucket-sort logic from the
// matrix-row convention.
func depthView() gmath.Mat4 {
	return gmath.Identity()
}

// triangleOrder collapses a 3*T corner-index buffer back into the
// per-triangle visitation order (each triangle's indices are always
// contiguous triples emitted together).
func triangleOrder(indices []uint32) []uint32 {
	order := make([]uint32, len(indices)/3)
	for k := range order {
		order[k] = indices[3*k] / 3
	}
	return order
}

// Scenario 6: back-to-front order for camera-space depths
// [-10,-5,-15,-1,-20] must be [4,2,0,1,3] (farthest, i.e. most negative z,
// first).
func TestCountingSortBackToFrontOrder(t *testing.T) {
	centroids := []gmath.Vec3{
		{Z: -10}, {Z: -5}, {Z: -15}, {Z: -1}, {Z: -20},
	}
	indices, err := ComputeSortedIndices(len(centroids), centroids, depthView())
	require.NoError(t, err)
	assert.Equal(t, []uint32{4, 2, 0, 1, 3}, triangleOrder(indices))
}

func TestCountingSortStableForEqualDepths(t *testing.T) {
	centroids := []gmath.Vec3{
		{Z: -5}, {Z: -5}, {Z: -5},
	}
	indices, err := ComputeSortedIndices(len(centroids), centroids, depthView())
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, triangleOrder(indices))
}

func TestCountingSortSingleTriangle(t *testing.T) {
	centroids := []gmath.Vec3{{Z: -42}}
	indices, err := ComputeSortedIndices(1, centroids, depthView())
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, indices)
}

func TestCountingSortZeroTriangles(t *testing.T) {
	indices, err := ComputeSortedIndices(0, nil, depthView())
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestDepthOfUsesThirdRow(t *testing.T) {
	mv := gmath.Identity()
	mv[2] = 2  // row2.x
	mv[6] = 3  // row2.y
	mv[10] = 4 // row2.z
	mv[14] = 1 // row2.w (translation)
	c := gmath.Vec3{X: 1, Y: 1, Z: 1}
	assert.Equal(t, float32(2+3+4+1), depthOf(mv, c))
}

func TestSorterSubmitAndReceive(t *testing.T) {
	s := NewSorter()
	defer s.Close()

	centroids := []gmath.Vec3{{Z: -1}, {Z: -2}}
	ok := s.Submit(SortRequest{
		NumTriangles: 2,
		Centroids:    centroids,
		ViewMatrix:   depthView(),
		RequestID:    1,
	})
	require.True(t, ok)

	result := <-s.Results()
	require.NoError(t, result.Err)
	assert.Equal(t, uint64(1), result.RequestID)
	assert.Equal(t, []uint32{1, 0}, triangleOrder(result.Indices))
}

func TestSorterRejectsMismatchedCentroidCount(t *testing.T) {
	_, err := ComputeSortedIndices(3, []gmath.Vec3{{}, {}}, depthView())
	assert.Error(t, err)
}
