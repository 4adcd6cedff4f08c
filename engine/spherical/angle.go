// Package spherical implements the angle algebra shared by the rain and
// map reference frames: conversions between unit vectors and (theta, phi)
// pairs, and rotation of an angle by an orthonormal basis change.
package spherical

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// angle is the common representation behind RainAngle and MapAngle: a polar
// angle theta measured from +z and an azimuth phi measured from +x toward
// +y. theta is clamped to [0, pi]; phi is reduced modulo 2*pi into [0, 2*pi).
type angle struct {
	theta, phi float64
}

func newAngle(theta, phi float64) angle {
	return angle{theta: clampTheta(theta), phi: nMod2Pi(phi)}
}

func clampTheta(theta float64) float64 {
	switch {
	case theta < 0:
		return 0
	case theta > math.Pi:
		return math.Pi
	default:
		return theta
	}
}

// nMod2Pi reduces n modulo 2*pi to a positive representative in [0, 2*pi).
func nMod2Pi(n float64) float64 {
	const twoPi = 2 * math.Pi
	m := math.Mod(n, twoPi)
	if m < 0 {
		m += twoPi
	}
	return m
}

// Theta returns the polar angle in [0, pi].
func (a angle) Theta() float64 { return a.theta }

// Phi returns the azimuth in [0, 2*pi).
func (a angle) Phi() float64 { return a.phi }

// toVector converts the angle to a unit vector using the physics convention
// (theta from +z, phi from +x toward +y).
func (a angle) toVector() r3.Vec {
	sinT, cosT := math.Sincos(a.theta)
	sinP, cosP := math.Sincos(a.phi)
	return r3.Vec{X: sinT * cosP, Y: sinT * sinP, Z: cosT}
}

// fromVector recovers (theta, phi) from a (not necessarily unit) vector.
func fromVector(v r3.Vec) angle {
	n := r3.Norm(v)
	theta := math.Acos(v.Z / n)
	phi := math.Atan2(v.Y, v.X)
	return newAngle(theta, phi)
}

// RainAngle is the direction of an incoming light ray expressed in the
// local frame of the infalling observer.
type RainAngle struct{ a angle }

// MapAngle is a direction on the celestial sphere at infinity (the "map"
// frame).
type MapAngle struct{ a angle }

// NewRainAngle builds a RainAngle, clamping theta to [0, pi] and reducing
// phi modulo 2*pi.
func NewRainAngle(theta, phi float64) RainAngle { return RainAngle{newAngle(theta, phi)} }

// NewMapAngle builds a MapAngle, clamping theta to [0, pi] and reducing phi
// modulo 2*pi.
func NewMapAngle(theta, phi float64) MapAngle { return MapAngle{newAngle(theta, phi)} }

func (r RainAngle) Theta() float64 { return r.a.Theta() }
func (r RainAngle) Phi() float64   { return r.a.Phi() }

func (m MapAngle) Theta() float64 { return m.a.Theta() }
func (m MapAngle) Phi() float64   { return m.a.Phi() }

// ToVector converts a RainAngle to a unit direction vector.
func (r RainAngle) ToVector() r3.Vec { return r.a.toVector() }

// RainAngleFromVector recovers a RainAngle from a direction vector.
func RainAngleFromVector(v r3.Vec) RainAngle { return RainAngle{fromVector(v)} }

// ToVector converts a MapAngle to a unit direction vector.
func (m MapAngle) ToVector() r3.Vec { return m.a.toVector() }

// MapAngleFromVector recovers a MapAngle from a direction vector.
func MapAngleFromVector(v r3.Vec) MapAngle { return MapAngle{fromVector(v)} }

// Rotator applies an orthonormal change of basis to a direction vector, as
// implemented by camera.Rotation3. Defined here (rather than imported) to
// avoid a spherical<->camera import cycle; engine/camera satisfies it.
type Rotator interface {
	Transform(v r3.Vec) r3.Vec
}

// RotateRain rotates a RainAngle by R and converts back to spherical
// coordinates. If the rotated vector has any non-finite component the
// un-rotated input is returned unchanged, per spec.
func RotateRain(a RainAngle, R Rotator) RainAngle {
	rotated := R.Transform(a.ToVector())
	if !finite(rotated) {
		return a
	}
	return RainAngleFromVector(rotated)
}

// RotateMap rotates a MapAngle by R, with the same non-finite guard as
// RotateRain.
func RotateMap(a MapAngle, R Rotator) MapAngle {
	rotated := R.Transform(a.ToVector())
	if !finite(rotated) {
		return a
	}
	return MapAngleFromVector(rotated)
}

func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
