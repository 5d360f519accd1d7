package splat

import "github.com/chewxy/math32"

// SH basis constants, fixed per the real spherical-harmonic convention used
// throughout the 3D-Gaussian-Splatting community (§4.A).
const (
	shC0 = 0.28209479177387814
	shC1 = 0.4886025119029199
)

var shC2 = [5]float32{
	1.0925484305920792,
	-1.0925484305920792,
	0.31539156525252005,
	-1.0925484305920792,
	0.5462742152960396,
}

var shC3 = [7]float32{
	-0.5900435899266435,
	2.890611442640554,
	-0.4570457994644658,
	0.3731763325901154,
	-0.4570457994644658,
	1.445305721320277,
	-0.5900435899266435,
}

// MaxSHDegree is the highest supported SH degree (§3, §6).
const MaxSHDegree = 3

// RestCoeffCount returns R = (d+1)^2 - 1, the number of higher-order SH
// coefficient triples for degree d.
func RestCoeffCount(degree int) int {
	return (degree+1)*(degree+1) - 1
}

// EvalSH evaluates the real SH basis at view direction u (must already be
// unit length) for the given degree, DC triple, and flattened rest
// coefficients (RestCoeffCount(degree) triples, each 3 scalars). Returns
// RGB clamped to >= 0, matching the 3D-GS "+0.5 DC offset, clamp" convention
// (§4.A).
func EvalSH(degree int, dc [3]float32, rest []float32, u [3]float32) [3]float32 {
	var color [3]float32
	for c := 0; c < 3; c++ {
		color[c] = shC0 * dc[c]
	}

	if degree >= 1 {
		x, y, z := u[0], u[1], u[2]
		for c := 0; c < 3; c++ {
			color[c] += shC1*(-y)*rest[0*3+c] +
				shC1*z*rest[1*3+c] +
				shC1*(-x)*rest[2*3+c]
		}

		if degree >= 2 {
			xx, yy, zz := x*x, y*y, z*z
			xy, yz, xz := x*y, y*z, x*z
			for c := 0; c < 3; c++ {
				color[c] += shC2[0]*xy*rest[3*3+c] +
					shC2[1]*yz*rest[4*3+c] +
					shC2[2]*(2.0*zz-xx-yy)*rest[5*3+c] +
					shC2[3]*xz*rest[6*3+c] +
					shC2[4]*(xx-yy)*rest[7*3+c]
			}

			if degree >= 3 {
				for c := 0; c < 3; c++ {
					color[c] += shC3[0]*y*(3.0*xx-yy)*rest[8*3+c] +
						shC3[1]*xy*z*rest[9*3+c] +
						shC3[2]*y*(4.0*zz-xx-yy)*rest[10*3+c] +
						shC3[3]*z*(2.0*zz-3.0*xx-3.0*yy)*rest[11*3+c] +
						shC3[4]*x*(4.0*zz-xx-yy)*rest[12*3+c] +
						shC3[5]*z*(xx-yy)*rest[13*3+c] +
						shC3[6]*x*(xx-3.0*yy)*rest[14*3+c]
				}
			}
		}
	}

	var out [3]float32
	for c := 0; c < 3; c++ {
		v := color[c] + 0.5
		if v < 0 {
			v = 0
		}
		out[c] = v
	}
	return out
}

// BakeDirectColor evaluates only the DC term, matching the reference demo's
// "use_direct_colors" fast path (SPEC_FULL.md §C.3): color = clamp(0.5 +
// C0*dc, 0, 1), skipping per-vertex SH evaluation entirely.
func BakeDirectColor(dc [3]float32) [3]float32 {
	var out [3]float32
	for c := 0; c < 3; c++ {
		v := 0.5 + shC0*dc[c]
		out[c] = clamp01(v)
	}
	return out
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
