// Package demo builds the procedurally-generated scenes the viewer
// displays. The viewer has no scene-file loader (on-disk checkpoint loading
// is out of scope); this package exists so the render driver always has a
// Scene to exercise its pipeline on, the way a rendering demo bundles a
// sample asset.
package demo

import (
	"github.com/chewxy/math32"

	"github.com/triangulate/splatgo/internal/engine/splat"
	gmath "github.com/triangulate/splatgo/pkg/math"
)

// IcosphereScene builds a colored, subdivided icosahedron with per-vertex
// direct colors (no SH) and one uniform opacity (sigmoid(2) ≈ 0.88) on every
// vertex, so the splat pipeline has soft, overlapping edges to blend from the
// very first frame.
func IcosphereScene(subdivisions int) *splat.Scene {
	vertices, triangles := icosphere(subdivisions)

	opacities := make([]float32, len(vertices))
	colors := make([][3]uint8, len(vertices))
	for i, v := range vertices {
		opacities[i] = splat.ActivateOpacity(2.0, 0.0)
		colors[i] = directionToColor(v)
	}

	return &splat.Scene{
		Vertices:        vertices,
		TriangleIndices: triangles,
		Opacities:       opacities,
		Colors:          colors,
		Sigma:           splat.DefaultSigma,
	}
}

// IcosphereSHScene builds the same subdivided icosahedron as IcosphereScene
// but drives its per-vertex color from baked degree-2 SH coefficients
// instead of direct RGB, so the viewer exercises the view-dependent render
// path end to end: each vertex gets a DC term plus a directional lobe
// aligned with its own outward normal, which the SH evaluator then
// re-derives from the camera's view direction every frame.
func IcosphereSHScene(subdivisions int) *splat.Scene {
	vertices, triangles := icosphere(subdivisions)

	opacities := make([]float32, len(vertices))
	dc := make([][3]float32, len(vertices))
	rest := make([][][3]float32, len(vertices))
	degree := 2
	restCount := splat.RestCoeffCount(degree)

	for i, v := range vertices {
		opacities[i] = splat.ActivateOpacity(2.0, 0.0)

		n := v.Normalize()
		dc[i] = [3]float32{0.3, 0.3, 0.35}

		triples := make([][3]float32, restCount)
		// Degree-1 lobe (indices 0..2: -y, z, -x terms) biased toward this
		// vertex's own outward normal, so the lit face visibly swings as the
		// camera orbits.
		triples[0] = [3]float32{n.Y * 0.6, n.Y * 0.4, n.Y * 0.2}
		triples[1] = [3]float32{n.Z * 0.6, n.Z * 0.5, n.Z * 0.3}
		triples[2] = [3]float32{n.X * 0.6, n.X * 0.4, n.X * 0.2}
		// Degree-2 term (index 5: 2z^2-x^2-y^2) adds a subtle polar highlight.
		triples[5] = [3]float32{n.Z * n.Z * 0.4, n.Z * n.Z * 0.3, n.Z * n.Z * 0.2}
		rest[i] = triples
	}

	return &splat.Scene{
		Vertices:        vertices,
		TriangleIndices: triangles,
		Opacities:       opacities,
		FeaturesDC:      dc,
		FeaturesRest:    rest,
		SHDegree:        degree,
		Sigma:           splat.DefaultSigma,
	}
}

// directionToColor maps a unit direction to an RGB triple so the sphere's
// surface visibly varies, the way a debug normal-color shader would.
func directionToColor(v gmath.Vec3) [3]uint8 {
	n := v.Normalize()
	toByte := func(c float32) uint8 {
		return uint8(math32.Clamp((c+1)*0.5, 0, 1) * 255)
	}
	return [3]uint8{toByte(n.X), toByte(n.Y), toByte(n.Z)}
}

// icosphere builds a unit icosahedron and subdivides each face `subdivisions`
// times, projecting new vertices back onto the unit sphere.
func icosphere(subdivisions int) ([]gmath.Vec3, [][3]uint32) {
	t := (1.0 + math32.Sqrt(5.0)) / 2.0

	verts := []gmath.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}

	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	midpointCache := make(map[[2]uint32]uint32)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if idx, ok := midpointCache[key]; ok {
			return idx
		}
		m := verts[a].Add(verts[b]).Scale(0.5).Normalize()
		verts = append(verts, m)
		idx := uint32(len(verts) - 1)
		midpointCache[key] = idx
		return idx
	}

	for s := 0; s < subdivisions; s++ {
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			a := midpoint(f[0], f[1])
			b := midpoint(f[1], f[2])
			c := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], a, c},
				[3]uint32{f[1], b, a},
				[3]uint32{f[2], c, b},
				[3]uint32{a, b, c},
			)
		}
		faces = next
	}

	return verts, faces
}
