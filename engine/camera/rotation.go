package camera

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rotation3 is a proper (orthonormal, det=+1) rotation from camera-local
// axes to world axes, stored as the images of the local x (right), y (up)
// and z (-facing) axes in world space — the column vectors of the
// rotation matrix, matching `Rotation3::from_basis_unchecked` in the
// original implementation.
type Rotation3 struct {
	X, Y, Z r3.Vec
}

// Identity returns the rotation that maps camera axes directly onto
// world axes.
func Identity() Rotation3 {
	return Rotation3{X: r3.Vec{X: 1}, Y: r3.Vec{Y: 1}, Z: r3.Vec{Z: 1}}
}

// ErrParallelLookAt is returned by LookAt when dir and up are parallel,
// leaving the right axis undefined.
var ErrParallelLookAt = fmt.Errorf("camera: look-at direction and up vector are parallel")

// LookAt builds the rotation whose -z axis points along dir, using up to
// resolve the remaining roll. It fails only when dir is parallel to up,
// in which case the zero Rotation3 and ErrParallelLookAt are returned;
// callers must avoid that configuration (spec.md §4.4).
func LookAt(dir, up r3.Vec) (Rotation3, error) {
	z := r3.Scale(-1, r3.Unit(dir))
	x := r3.Cross(up, z)
	if r3.Norm(x) == 0 {
		return Rotation3{}, ErrParallelLookAt
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)
	return Rotation3{X: x, Y: y, Z: z}, nil
}

// Transform applies the rotation to a local-space vector, producing its
// world-space direction. It satisfies spherical.Rotator.
func (r Rotation3) Transform(v r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(v.X, r.X), r3.Scale(v.Y, r.Y)), r3.Scale(v.Z, r.Z))
}

// rotateAroundAxis rotates a vector around a unit axis by angle radians
// using Rodrigues' rotation formula.
func rotateAroundAxis(v, axis r3.Vec, angle float64) r3.Vec {
	sin, cos := math.Sincos(angle)
	term1 := r3.Scale(cos, v)
	term2 := r3.Scale(sin, r3.Cross(axis, v))
	term3 := r3.Scale(r3.Dot(axis, v)*(1-cos), axis)
	return r3.Add(r3.Add(term1, term2), term3)
}

// composeAroundAxis returns the rotation obtained by rotating every basis
// vector of r around the given (unit) world-space axis by angle radians.
func (r Rotation3) composeAroundAxis(axis r3.Vec, angle float64) Rotation3 {
	return Rotation3{
		X: rotateAroundAxis(r.X, axis, angle),
		Y: rotateAroundAxis(r.Y, axis, angle),
		Z: rotateAroundAxis(r.Z, axis, angle),
	}
}

// worldUp is the global up direction used by Yaw to keep the camera
// horizon level.
var worldUp = r3.Vec{Y: 1}

// Pitch composes a small rotation around the camera's current right axis
// (R.X), tilting the view up or down without introducing roll.
func (r Rotation3) Pitch(angle float64) Rotation3 {
	return r.composeAroundAxis(r.X, angle)
}

// Yaw composes a small rotation around the world up axis, keeping roll
// zero by construction (spec.md §4.4).
func (r Rotation3) Yaw(angle float64) Rotation3 {
	return r.composeAroundAxis(worldUp, angle)
}

// toQuat converts the rotation matrix to a unit quaternion (Shepperd's
// method), used only for Slerp.
func (r Rotation3) toQuat() quat.Number {
	m00, m01, m02 := r.X.X, r.Y.X, r.Z.X
	m10, m11, m12 := r.X.Y, r.Y.Y, r.Z.Y
	m20, m21, m22 := r.X.Z, r.Y.Z, r.Z.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		return quat.Number{
			Real: 0.25 * s,
			Imag: (m21 - m12) / s,
			Jmag: (m02 - m20) / s,
			Kmag: (m10 - m01) / s,
		}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		return quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		return quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		return quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
}

// rotationFromQuat rebuilds a rotation matrix from a unit quaternion.
func rotationFromQuat(q quat.Number) Rotation3 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Rotation3{
		X: r3.Vec{
			X: 1 - 2*(y*y+z*z),
			Y: 2 * (x*y + w*z),
			Z: 2 * (x*z - w*y),
		},
		Y: r3.Vec{
			X: 2 * (x*y - w*z),
			Y: 1 - 2*(x*x+z*z),
			Z: 2 * (y*z + w*x),
		},
		Z: r3.Vec{
			X: 2 * (x*z + w*y),
			Y: 2 * (y*z - w*x),
			Z: 1 - 2*(x*x+y*y),
		},
	}
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func quatScale(s float64, q quat.Number) quat.Number {
	return quat.Number{Real: s * q.Real, Imag: s * q.Imag, Jmag: s * q.Jmag, Kmag: s * q.Kmag}
}

func quatAdd(a, b quat.Number) quat.Number {
	return quat.Number{Real: a.Real + b.Real, Imag: a.Imag + b.Imag, Jmag: a.Jmag + b.Jmag, Kmag: a.Kmag + b.Kmag}
}

func quatNormalize(q quat.Number) quat.Number {
	n := math.Sqrt(quatDot(q, q))
	if n == 0 {
		return q
	}
	return quatScale(1/n, q)
}

// Slerp spherically interpolates between two orientations at t in [0,1].
//
// When the quaternions of a and b have a dot product of -1 they are the
// same orientation with opposite signs, and Slerp returns a. When a and b
// are a half-turn apart (quaternion dot product 0) both arcs are equally
// short; Slerp then follows the one selected by the signs toQuat assigns,
// and does not fall back to either endpoint.
func Slerp(a, b Rotation3, t float64) Rotation3 {
	qa := a.toQuat()
	qb := b.toQuat()

	dot := quatDot(qa, qb)
	if math.Abs(dot+1) < 1e-9 {
		return a
	}

	// Take the shorter arc.
	if dot < 0 {
		qb = quatScale(-1, qb)
		dot = -dot
	}

	const closeThreshold = 0.9995
	if dot > closeThreshold {
		// Nearly identical orientations: linear interpolation + renormalize
		// avoids a division by a near-zero sine below.
		result := quatAdd(quatScale(1-t, qa), quatScale(t, qb))
		return rotationFromQuat(quatNormalize(result))
	}

	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta0 := math.Sin(theta0)
	sinTheta := math.Sin(theta)

	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	result := quatAdd(quatScale(s0, qa), quatScale(s1, qb))
	return rotationFromQuat(quatNormalize(result))
}
