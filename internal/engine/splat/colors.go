package splat

import gmath "github.com/triangulate/splatgo/pkg/math"

// CornerColors evaluates the three per-vertex colors for triangle triIdx,
// matching §4.E's "Per-vertex colors": SH evaluated at each corner's own
// world position against the camera when SH is present, otherwise the
// corner's stored direct RGB (or white if neither is present).
func CornerColors(g *Geometry, triIdx int, cameraPos gmath.Vec3) [3][3]float32 {
	base := 3 * triIdx
	var colors [3][3]float32

	for c := 0; c < 3; c++ {
		rec := g.Corners[base+c]
		if g.HasSH {
			slot := g.SHTable.FetchSlot(int(rec.VertexIndex))
			dc := [3]float32{slot[0], slot[1], slot[2]}
			rest := restTriples(slot, g.SHDegree)

			dir := rec.Position.Sub(cameraPos).Normalize()
			colors[c] = EvalSH(g.SHDegree, dc, rest, [3]float32{dir.X, dir.Y, dir.Z})
		} else {
			colors[c] = rec.Color
		}
	}

	return colors
}

// restTriples copies the first RestCoeffCount(degree) triples of an SH
// slot's 45-scalar rest region into a flat slice of 3*RestCoeffCount(degree)
// scalars, the layout EvalSH takes.
func restTriples(slot [SHSlotSize]float32, degree int) []float32 {
	n := RestCoeffCount(degree) * 3
	rest := make([]float32, n)
	copy(rest, slot[3:3+n])
	return rest
}
