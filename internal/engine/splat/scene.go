package splat

import (
	"fmt"

	gmath "github.com/triangulate/splatgo/pkg/math"
)

// Scene is the immutable-after-load splat input described in §3/§6: V
// vertices with position, activated opacity, and optional color/SH data,
// plus T triangles of vertex indices.
type Scene struct {
	// Vertices holds V world-space positions.
	Vertices []gmath.Vec3

	// TriangleIndices holds T triples of indices into Vertices.
	TriangleIndices [][3]uint32

	// Opacities holds V activated (post-sigmoid) opacities in [0,1].
	Opacities []float32

	// Colors, if non-nil, holds V packed RGB triples in [0,255]. Mutually
	// exclusive with FeaturesDC/FeaturesRest in the sense that SH always
	// wins when present (§4.B).
	Colors [][3]uint8

	// FeaturesDC holds V SH DC triples, and FeaturesRest holds V x R SH
	// rest triples, R = RestCoeffCount(SHDegree). Both nil means no SH.
	FeaturesDC   [][3]float32
	FeaturesRest [][][3]float32
	SHDegree     int

	// Sigma is the soft-edge falloff exponent (§3); defaults to 1.0 (§6).
	Sigma float32

	// Debug requests the optional shader debug extension (§6, §7).
	Debug bool
}

// Validate checks the scene's shapes against §7's "Bad input shape" error
// kind: vertex/opacity/color count mismatches, odd triangle index ranges,
// and an SH rest buffer not sized to RestCoeffCount(SHDegree). It never
// returns a partially valid scene — construction fails atomically.
func (s *Scene) Validate() error {
	v := len(s.Vertices)
	if len(s.Opacities) != v {
		return fmt.Errorf("scene: opacities length %d does not match vertex count %d", len(s.Opacities), v)
	}
	if s.Colors != nil && len(s.Colors) != v {
		return fmt.Errorf("scene: colors length %d does not match vertex count %d", len(s.Colors), v)
	}

	hasSH := s.FeaturesDC != nil || s.FeaturesRest != nil
	if hasSH {
		if s.SHDegree < 0 || s.SHDegree > MaxSHDegree {
			return fmt.Errorf("scene: SH degree %d out of range [0,%d]", s.SHDegree, MaxSHDegree)
		}
		if len(s.FeaturesDC) != v {
			return fmt.Errorf("scene: features_dc length %d does not match vertex count %d", len(s.FeaturesDC), v)
		}
		want := RestCoeffCount(s.SHDegree)
		if len(s.FeaturesRest) != v {
			return fmt.Errorf("scene: features_rest length %d does not match vertex count %d", len(s.FeaturesRest), v)
		}
		for i, rest := range s.FeaturesRest {
			if len(rest) != want {
				return fmt.Errorf("scene: features_rest[%d] has %d triples, want %d for degree %d", i, len(rest), want, s.SHDegree)
			}
		}
	}

	for i, tri := range s.TriangleIndices {
		for c, idx := range tri {
			if int(idx) >= v {
				return fmt.Errorf("scene: triangle %d corner %d references vertex %d, have %d vertices", i, c, idx, v)
			}
		}
	}

	if s.Sigma == 0 {
		s.Sigma = DefaultSigma
	}

	return nil
}
