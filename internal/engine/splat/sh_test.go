package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestCoeffCount(t *testing.T) {
	assert.Equal(t, 0, RestCoeffCount(0))
	assert.Equal(t, 3, RestCoeffCount(1))
	assert.Equal(t, 8, RestCoeffCount(2))
	assert.Equal(t, 15, RestCoeffCount(3))
}

// Degree 0: color is purely the DC term plus the 0.5 offset, independent of
// view direction.
func TestEvalSHDegreeZeroIgnoresDirection(t *testing.T) {
	dc := [3]float32{1.0, 0.5, -2.0}
	a := EvalSH(0, dc, nil, [3]float32{1, 0, 0})
	b := EvalSH(0, dc, nil, [3]float32{0, 1, 0})

	assert.Equal(t, a, b)
	for c := 0; c < 3; c++ {
		want := shC0*dc[c] + 0.5
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, a[c], 1e-6)
	}
}

func TestEvalSHClampsNegativeToZero(t *testing.T) {
	dc := [3]float32{-100, -100, -100}
	out := EvalSH(0, dc, nil, [3]float32{0, 0, 1})
	for c := 0; c < 3; c++ {
		assert.Equal(t, float32(0), out[c])
	}
}

func TestEvalSHDegreeOneUsesRestTriples(t *testing.T) {
	dc := [3]float32{0, 0, 0}
	rest := make([]float32, 3*3)
	rest[0*3+0] = 1 // affects -y term, channel 0 only
	out := EvalSH(1, dc, rest, [3]float32{0, -1, 0}) // y = -1
	// color[0] += shC1 * (-y) * rest[0] = shC1 * 1 * 1
	want := shC1*1*1 + 0.5
	assert.InDelta(t, want, out[0], 1e-5)
	assert.InDelta(t, 0.5, out[1], 1e-5)
}

func TestBakeDirectColorClampsToUnitRange(t *testing.T) {
	out := BakeDirectColor([3]float32{1000, -1000, 0})
	assert.Equal(t, float32(1), out[0])
	assert.Equal(t, float32(0), out[1])
	assert.InDelta(t, 0.5, out[2], 1e-6)
}
