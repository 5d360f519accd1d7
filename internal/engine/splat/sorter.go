package splat

import (
	"fmt"

	"github.com/triangulate/splatgo/internal/logger"
	gmath "github.com/triangulate/splatgo/pkg/math"
	"go.uber.org/zap"
)

// SortRequest is the sorter message described in §4.C/§6: a self-contained,
// transferable payload. The sorter never touches scene state shared with
// the render actor — everything it needs travels in the request.
type SortRequest struct {
	NumTriangles int
	Centroids    []gmath.Vec3
	ViewMatrix   gmath.Mat4
	RequestID    uint64
}

// SortResult carries back either a fully-formed 3*T index array or an
// error, both tagged with the originating RequestID (§4.C).
type SortResult struct {
	Indices   []uint32
	RequestID uint64
	Err       error
}

// Sorter runs the depth sort on its own goroutine, communicating strictly
// by message passing (§5: "no shared mutable state between them"). It
// never blocks the render actor: Submit is non-blocking and drops the
// request only while an earlier request is still queued and not yet taken
// by the worker. A sort the worker is already running does not make Submit
// fail, so "at most one in flight" rests on the render driver's own
// in-flight flag (§4.D).
type Sorter struct {
	requests chan SortRequest
	results  chan SortResult
	done     chan struct{}
}

// NewSorter starts the sorter goroutine and returns a handle to it.
func NewSorter() *Sorter {
	s := &Sorter{
		requests: make(chan SortRequest, 1),
		results:  make(chan SortResult, 1),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Sorter) run() {
	defer close(s.results)
	for {
		select {
		case req, ok := <-s.requests:
			if !ok {
				return
			}
			result := sortRequest(req)
			select {
			case s.results <- result:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

// Submit posts a sort request. It returns false (without blocking) if a
// previous request is still waiting in the one-slot queue; a request the
// worker has already picked up does not cause a rejection. The caller (the
// render driver) checks its own in-flight flag before calling Submit, and
// that flag is what keeps "at most one in flight" (§5 Throttle).
func (s *Sorter) Submit(req SortRequest) bool {
	select {
	case s.requests <- req:
		return true
	default:
		return false
	}
}

// Results returns the channel the render actor should drain once per frame.
func (s *Sorter) Results() <-chan SortResult {
	return s.results
}

// Close terminates the sorter goroutine (§5 "Teardown terminates the sorter actor").
func (s *Sorter) Close() {
	close(s.done)
}

// sortRequest runs the synchronous counting-sort algorithm (§4.C). It is
// kept separate from goroutine plumbing so it can be unit-tested directly.
func sortRequest(req SortRequest) SortResult {
	indices, err := ComputeSortedIndices(req.NumTriangles, req.Centroids, req.ViewMatrix)
	if err != nil {
		logger.Warn("depth sort failed",
			zap.Uint64("requestId", req.RequestID),
			zap.Int("numTriangles", req.NumTriangles),
			zap.Error(err),
		)
		return SortResult{RequestID: req.RequestID, Err: err}
	}
	return SortResult{Indices: indices, RequestID: req.RequestID}
}

// ComputeSortedIndices is the pure depth-sort algorithm (§4.C): bucket
// triangles by camera-space depth into 65536 16-bit buckets via counting
// sort, then emit 3*T corner indices in back-to-front (bucket 0 first)
// order. Ties preserve input order (stable), since the counting sort visits
// triangles in ascending original index and appends within a bucket.
func ComputeSortedIndices(numTriangles int, centroids []gmath.Vec3, viewMatrix gmath.Mat4) ([]uint32, error) {
	if len(centroids) != numTriangles {
		return nil, fmt.Errorf("sorter: centroid count %d does not match triangle count %d", len(centroids), numTriangles)
	}
	if numTriangles == 0 {
		return []uint32{}, nil
	}

	depths := make([]float32, numTriangles)
	minZ, maxZ := depthOf(viewMatrix, centroids[0]), depthOf(viewMatrix, centroids[0])
	depths[0] = minZ
	for i := 1; i < numTriangles; i++ {
		z := depthOf(viewMatrix, centroids[i])
		depths[i] = z
		if z < minZ {
			minZ = z
		}
		if z > maxZ {
			maxZ = z
		}
	}

	perm := make([]int, numTriangles)
	if maxZ-minZ <= DepthRangeEps {
		for i := range perm {
			perm[i] = i
		}
	} else {
		perm = countingSortByBucket(depths, minZ, maxZ)
	}

	indices := make([]uint32, 3*numTriangles)
	for k, triIdx := range perm {
		indices[3*k] = uint32(3 * triIdx)
		indices[3*k+1] = uint32(3*triIdx + 1)
		indices[3*k+2] = uint32(3*triIdx + 2)
	}
	return indices, nil
}

// depthOf computes the camera-space z of a world-space point under a
// model-view matrix in gmath.Mat4's column-major layout, per §4.C's z_i
// formula — only the third row of the matrix (indices 2,6,10,14) is needed.
func depthOf(mv gmath.Mat4, c gmath.Vec3) float32 {
	return mv[2]*c.X + mv[6]*c.Y + mv[10]*c.Z + mv[14]
}

// countingSortByBucket buckets depths into 16-bit buckets ascending
// (bucket 0 = farthest/min depth) and returns the back-to-front triangle
// permutation, preserving input order within a bucket.
func countingSortByBucket(depths []float32, minZ, maxZ float32) []int {
	n := len(depths)
	scale := float32(sortBucketCount-1) / (maxZ - minZ)

	bucketOf := make([]int, n)
	counts := make([]int, sortBucketCount)
	for i, z := range depths {
		b := int((z - minZ) * scale)
		if b < 0 {
			b = 0
		}
		if b > sortBucketCount-1 {
			b = sortBucketCount - 1
		}
		bucketOf[i] = b
		counts[b]++
	}

	offsets := make([]int, sortBucketCount)
	sum := 0
	for b := 0; b < sortBucketCount; b++ {
		offsets[b] = sum
		sum += counts[b]
	}

	perm := make([]int, n)
	cursor := append([]int(nil), offsets...)
	for i := 0; i < n; i++ {
		b := bucketOf[i]
		perm[cursor[b]] = i
		cursor[b]++
	}
	return perm
}
