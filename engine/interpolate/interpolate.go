// Package interpolate provides the scalar and rotation interpolation
// primitives the timeline uses to blend between keyframed scenes.
package interpolate

import "raindiver/engine/camera"

// Lerp linearly interpolates between a and b at t in [0,1]. t outside
// [0,1] extrapolates; callers that need clamping do so themselves.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpInt linearly interpolates between a and b and rounds to the
// nearest integer.
func LerpInt(a, b int, t float64) int {
	v := Lerp(float64(a), float64(b), t)
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}

// SlerpRotation spherically interpolates between two camera orientations.
func SlerpRotation(a, b camera.Rotation3, t float64) camera.Rotation3 {
	return camera.Slerp(a, b, t)
}
