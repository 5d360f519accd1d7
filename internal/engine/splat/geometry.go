package splat

import (
	"fmt"

	gmath "github.com/triangulate/splatgo/pkg/math"
)

// CornerRecord is one of the 3*T GPU vertex records described in §3: a
// single triangle corner, carrying enough per-triangle duplication that the
// vertex shader never needs to look up a neighboring corner's attributes.
type CornerRecord struct {
	Position gmath.Vec3

	// Barycentric is the corner's selector: (1,0,0), (0,1,0), or (0,0,1).
	Barycentric [3]float32

	V0, V1, V2 gmath.Vec3
	W0, W1, W2 float32
	M          float32 // min(W0,W1,W2), per I4

	// VertexIndex is this corner's originating vertex, for SH table lookup (I3).
	VertexIndex uint32

	// CornerVertexIndices are all three corners' originating vertices, for
	// per-vertex color interpolation lookup.
	CornerVertexIndices [3]uint32

	// Color is this corner's own direct RGB in [0,1] (§4.B); meaningless
	// (and unused by the shader) when HasSH is true.
	Color [3]float32

	// TriangleColors holds all three corners' direct RGB, duplicated
	// identically across the triangle's 3 corner records like V0/V1/V2, so
	// the fragment shader's screen-space barycentric recombination (§4.F.6)
	// has every corner's color available regardless of which corner's
	// vertex-shader invocation produced the varying. Unused when HasSH.
	TriangleColors [3][3]float32
}

// Geometry is the complete load-time output of the builder: the geometry
// buffer, the mutable index buffer (initialized to the identity
// permutation), the centroid table, and the optional SH table (§3).
type Geometry struct {
	Corners       []CornerRecord
	Indices       []uint32
	Centroids     []gmath.Vec3
	SHTable       *SHTable
	SHDegree      int
	TriangleCount int
	HasSH         bool
	HasColor      bool
}

// BuildGeometry converts a validated Scene into GPU-ready tables (§4.B). It
// never reads a raw pre-activation weight into m (I4) — only the scene's
// already-activated Opacities enter the min.
func BuildGeometry(scene *Scene) (*Geometry, error) {
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("building geometry: %w", err)
	}

	t := len(scene.TriangleIndices)
	hasSH := scene.FeaturesDC != nil
	hasColor := !hasSH && scene.Colors != nil

	g := &Geometry{
		Corners:       make([]CornerRecord, 3*t),
		Indices:       make([]uint32, 3*t),
		Centroids:     make([]gmath.Vec3, t),
		TriangleCount: t,
		HasSH:         hasSH,
		HasColor:      hasColor,
	}

	if hasSH {
		g.SHDegree = scene.SHDegree
		g.SHTable = NewSHTable(len(scene.Vertices))
		for vi := range scene.Vertices {
			g.SHTable.SetSlot(vi, scene.FeaturesDC[vi], scene.FeaturesRest[vi])
		}
	}

	selectors := [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for i, tri := range scene.TriangleIndices {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		v0, v1, v2 := scene.Vertices[i0], scene.Vertices[i1], scene.Vertices[i2]
		w0, w1, w2 := scene.Opacities[i0], scene.Opacities[i1], scene.Opacities[i2]
		m := minOf3(w0, w1, w2) // I4: derived only from activated opacities

		g.Centroids[i] = v0.Add(v1).Add(v2).Scale(1.0 / 3.0)

		cornerVerts := [3]uint32{i0, i1, i2}
		positions := [3]gmath.Vec3{v0, v1, v2}

		var triColors [3][3]float32
		for c := 0; c < 3; c++ {
			switch {
			case hasColor:
				rgb := scene.Colors[cornerVerts[c]]
				triColors[c] = [3]float32{
					float32(rgb[0]) / 255.0,
					float32(rgb[1]) / 255.0,
					float32(rgb[2]) / 255.0,
				}
			case !hasSH:
				triColors[c] = [3]float32{1, 1, 1}
			}
		}

		for c := 0; c < 3; c++ {
			rec := CornerRecord{
				Position:            positions[c],
				Barycentric:         selectors[c],
				V0:                  v0,
				V1:                  v1,
				V2:                  v2,
				W0:                  w0,
				W1:                  w1,
				W2:                  w2,
				M:                   m,
				VertexIndex:         cornerVerts[c],
				CornerVertexIndices: cornerVerts,
				Color:               triColors[c],
				TriangleColors:      triColors,
			}

			idx := 3*i + c
			g.Corners[idx] = rec
			g.Indices[idx] = uint32(idx)
		}
	}

	return g, nil
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
