// Package geodesic solves the Schwarzschild null-geodesic deflection
// problem: given a rain-frame polar angle and the diver's current radius,
// it recovers the map-frame polar angle the incoming photon arrived from,
// or reports that the photon originated inside the black hole's shadow.
//
// Units are geometric (G = c = M = 1); see spec.md §6. The math is ported
// from the closed-form derivation in spec.md §4.3, cross-checked against
// _examples/original_source/src/math.rs.
package geodesic

import (
	"math"

	"raindiver/engine/spherical"
)

// quadratureAbsTol is the absolute error tolerance for the deflection
// integral, per spec.md §6.
const quadratureAbsTol = 1e-6

// photonIsIncoming reports whether the photon arriving at thetaRain from
// radius r is still falling inward (true) or has already passed its
// turning point and is headed back out (false).
func photonIsIncoming(thetaRain, r float64) bool {
	cosT := math.Cos(thetaRain)
	return cosT < math.Sqrt(r/2) && cosT < math.Sqrt(2/r)
}

// impactParameter returns the conserved impact parameter b for a photon
// leaving the diver at thetaRain, radius r.
func impactParameter(thetaRain, r float64) float64 {
	cosT, sinT := math.Cos(thetaRain), math.Sin(thetaRain)
	return r * sinT / (math.Sqrt(2/r)*cosT - 1)
}

// criticalRainAngle returns the shadow boundary theta_c(r): the half-angle
// of the black disk at radius r.
func criticalRainAngle(r float64) float64 {
	num := 27*math.Sqrt(2*r) + r*math.Sqrt(r*(6+r))*(r-3)
	den := 54 + r*r*r
	return math.Acos(num / den)
}

// turningPointRadius returns the radius at which an outgoing ray with
// impact parameter b reverses its radial direction.
func turningPointRadius(b float64) float64 {
	return 6 / (1 - 2*math.Sin(math.Asin(1-54/(b*b))/3))
}

// integrand is the deflection-angle integrand under the x = (r'-1)/r'
// substitution that maps an infinite outer radius to the finite bound 1,
// per spec.md §4.3.
func integrand(b, x float64) float64 {
	xm1 := x - 1
	return b / (math.Sqrt(1/math.Pow(xm1, 4)-b*b*(1+2*xm1)/(xm1*xm1)) * xm1 * xm1)
}

// deflection computes Phi(lo, hi) = integral of integrand(b, x) dx.
func deflection(b, lo, hi float64) float64 {
	return integrate(func(x float64) float64 { return integrand(b, x) }, lo, hi, quadratureAbsTol)
}

// totalDeflection returns the total bend angle Delta-phi for a photon with
// impact parameter b, arriving at radius r along an incoming or outgoing
// branch.
func totalDeflection(thetaRain, b, r float64) float64 {
	if photonIsIncoming(thetaRain, r) {
		return deflection(b, 1, (r-1)/r)
	}
	rtp := turningPointRadius(b)
	x0 := (rtp - 1) / rtp
	return deflection(b, 1, x0) - deflection(b, x0, (r-1)/r)
}

// finite reports whether x is a usable (non-NaN, non-infinite) number.
func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Solve computes the map-frame angle a photon arriving at thetaRain (at
// the diver's current radius r) came from.
//
// When gr is true it performs the full relativistic deflection. When gr
// is false it returns the input angle unchanged for rays outside the
// shadow cone (the straight, undeflected ray) but still reports the
// shadow for rays inside it — the horizon stays visible even without
// bending (spec.md §4.3, "Non-GR mode").
//
// The second return value is false when the ray falls into the black
// hole (a "shadow" pixel) or when any intermediate quantity is
// non-finite; non-finite results are always treated as a shadow hit
// rather than propagated (spec.md §4.3, "Failure semantics").
func Solve(rain spherical.RainAngle, r float64, gr bool) (spherical.MapAngle, bool) {
	if r <= 0 {
		return spherical.MapAngle{}, false
	}

	thetaRain := rain.Theta()
	thetaC := criticalRainAngle(r)
	if !finite(thetaC) || thetaRain < thetaC {
		return spherical.MapAngle{}, false
	}

	if !gr {
		return spherical.NewMapAngle(thetaRain, rain.Phi()), true
	}

	b := impactParameter(thetaRain, r)
	if !finite(b) {
		return spherical.MapAngle{}, false
	}

	deltaPhi := totalDeflection(thetaRain, b, r)
	if !finite(deltaPhi) {
		return spherical.MapAngle{}, false
	}

	thetaRaw := math.Pi - deltaPhi
	thetaMap := math.Acos(math.Cos(thetaRaw))
	if !finite(thetaMap) {
		return spherical.MapAngle{}, false
	}

	phiMap := rain.Phi()
	if math.Sin(thetaRaw) < 0 {
		phiMap += math.Pi
	}

	return spherical.NewMapAngle(thetaMap, phiMap), true
}
