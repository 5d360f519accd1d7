package splat

import "github.com/chewxy/math32"

// Sigmoid computes the element-wise logistic sigmoid.
func Sigmoid(x float32) float32 {
	return 1.0 / (1.0 + math32.Exp(-x))
}

// ActivateOpacity converts a raw vertex weight into an opacity in [0,1]
// using the reference demo's floored sigmoid (SPEC_FULL.md §C.1):
//
//	opacity = floor + (1-floor)*sigmoid(weight)
//
// floor=0 recovers a plain sigmoid. Scenes built from the Scene type in
// this package are expected to already carry activated opacities (§3); this
// helper exists for callers that load raw weights and need to re-derive
// opacities (and hence m, per I4) under a different floor at runtime.
func ActivateOpacity(weight, floor float32) float32 {
	return floor + (1.0-floor)*Sigmoid(weight)
}
