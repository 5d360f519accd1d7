// Package splat implements the triangle-splat geometry pipeline: spherical
// harmonic color evaluation, per-triangle GPU buffer construction, the
// back-to-front depth sorter, and a CPU-side mirror of the vertex/fragment
// culling chain used for diagnostics and tests.
package splat

// Fixed numerical constants shared by the builder, sorter, and the CPU
// mirror of the vertex/fragment stages. These match the uniforms and
// literals baked into the GPU shaders in internal/engine/shader.
const (
	// StoppingInfluence is the minimum-opacity cull gate (§4.E.1).
	StoppingInfluence = 0.01

	// BackfaceThreshold rejects near edge-on triangles (§4.E.2).
	BackfaceThreshold = 0.001

	// PerimeterThreshold rejects triangles whose screen perimeter collapses
	// to sub-pixel size before the incenter is computed (§4.E.5).
	PerimeterThreshold = 1.0

	// DistanceMin and DistanceMax bound the incenter-to-corner radius (§4.E.6).
	DistanceMin = 1.0
	DistanceMax = 1600.0

	// AlphaThreshold is the fragment-stage early discard (§4.F.5).
	AlphaThreshold = 1.0 / 255.0

	// SafeDistEps floors the denominator of phiScale so a degenerate
	// (all d_k == 0) triangle still produces a finite soft-edge factor (§4.E).
	SafeDistEps = 1e-4

	// DegenerateEps is the barycentric-denominator floor below which the
	// fragment stage falls back to the uniform (1/3,1/3,1/3) weighting (§4.F.6).
	DegenerateEps = 1e-6

	// DepthRangeEps is the camera-space depth spread below which the sorter
	// short-circuits to the identity permutation (§4.C).
	DepthRangeEps = 1e-7

	// SortThrottleMS bounds how often the render driver may dispatch a new
	// sort request (§4.D, §5).
	SortThrottleMS = 100

	// DefaultSigma is used when a scene omits an explicit sigma (§6).
	DefaultSigma = 1.0

	// DefaultOpacityFloor matches the reference demo's default "Opacity
	// Scale" slider value (99%, see SPEC_FULL.md §C.1).
	DefaultOpacityFloor = 0.99

	// SHTableWidth is the fixed width of the packed SH texture (§3).
	SHTableWidth = 1024

	// SHSlotSize is the number of float32 scalars per SH table slot:
	// 3 (DC) + 15 rest-coefficient triples (degree 3 maximum) * 3 = 48.
	SHSlotSize = 48

	// sortBucketCount is the number of 16-bit depth buckets used by the
	// counting sort (§4.C, §9 "Back-to-front via counting sort").
	sortBucketCount = 65536
)
