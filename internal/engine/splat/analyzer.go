package splat

// GateCounts tallies how many sampled triangles were rejected at each stage
// of the cull chain (§4.G).
type GateCounts struct {
	Total              int
	MinWeightFiltered  int
	BackfaceFiltered   int
	ClipWFiltered      int
	PerimeterFiltered  int
	SizeFiltered       int
	AlphaFiltered      int
	Passed             int
}

// FilterPercentage returns the share of sampled triangles that did not
// survive to the final fragment alpha test, as a percentage in [0,100].
func (g GateCounts) FilterPercentage() float64 {
	if g.Total == 0 {
		return 0
	}
	filtered := g.Total - g.Passed
	return 100.0 * float64(filtered) / float64(g.Total)
}

// RDistribution buckets the incenter-to-corner radius r for every sampled
// triangle that survived far enough to compute it (§4.G).
type RDistribution struct {
	Under0_5        int
	Between0_5And1  int
	Between1And100  int
	Between100And1600 int
	Over1600        int
}

func (d *RDistribution) add(r float32) {
	switch {
	case r < 0.5:
		d.Under0_5++
	case r < 1:
		d.Between0_5And1++
	case r < 100:
		d.Between1And100++
	case r <= 1600:
		d.Between100And1600++
	default:
		d.Over1600++
	}
}

// AnalyzerReport is the output of the diagnostic analyzer's sampled pass
// over a geometry buffer (§4.G). It produces no frames — only statistics.
type AnalyzerReport struct {
	Gates GateCounts
	RDist RDistribution
}

// Analyze mirrors §4.E.1-6 and the §4.F alpha test for every stride-th
// triangle in g, reporting per-gate pass/fail counts and the r
// distribution. stride=1 samples every triangle; stride>1 samples a subset
// for large scenes.
func Analyze(g *Geometry, u Uniforms, stride int) AnalyzerReport {
	if stride < 1 {
		stride = 1
	}

	var report AnalyzerReport

	for tri := 0; tri < g.TriangleCount; tri += stride {
		report.Gates.Total++
		base := 3 * tri
		rec := g.Corners[base]

		out := RunVertexStage(rec.V0, rec.V1, rec.V2, rec.W0, rec.W1, rec.W2, u)
		if out.IncenterR != 0 {
			report.RDist.add(out.IncenterR)
		}

		if out.Culled {
			switch out.CullReason {
			case CullOpacity:
				report.Gates.MinWeightFiltered++
			case CullBackface:
				report.Gates.BackfaceFiltered++
			case CullClipW:
				report.Gates.ClipWFiltered++
			case CullPerimeter:
				report.Gates.PerimeterFiltered++
			case CullSize:
				report.Gates.SizeFiltered++
			}
			continue
		}

		colors := CornerColors(g, tri, u.CameraPos)
		frag := RunFragmentStage(out.Incenter, out, colors)
		if frag.Discarded || frag.Alpha < AlphaThreshold {
			report.Gates.AlphaFiltered++
			continue
		}

		report.Gates.Passed++
	}

	return report
}
