package geodesic

import "math"

// maxRecursionDepth bounds the adaptive Simpson recursion so a
// pathological integrand near a singularity degrades to "best effort"
// instead of infinite recursion; callers treat a non-finite result as a
// shadow hit (spec.md §4.3, "Failure semantics").
const maxRecursionDepth = 50

// integrate computes the definite integral of f over [a, b] via adaptive
// Simpson quadrature to the given absolute error tolerance. This mirrors
// the Rust `quadrature` crate's `integrate(f, a, b, tol).integral` used by
// the original implementation; no Go library in the retrieval pack offers
// an adaptive, error-controlled integrator (gonum's quad package is
// fixed-order Gauss-Legendre), so it is implemented directly here as the
// algorithmic core of the geodesic solver.
func integrate(f func(float64) float64, a, b, tol float64) float64 {
	fa, fb := f(a), f(b)
	m := (a + b) / 2
	fm := f(m)
	whole := simpson(a, b, fa, fm, fb)
	return adaptiveSimpson(f, a, b, fa, fm, fb, whole, tol, maxRecursionDepth)
}

func simpson(a, b, fa, fm, fb float64) float64 {
	return (b - a) / 6 * (fa + 4*fm + fb)
}

func adaptiveSimpson(f func(float64) float64, a, b, fa, fm, fb, whole, tol float64, depth int) float64 {
	m := (a + b) / 2
	lm := (a + m) / 2
	rm := (m + b) / 2
	flm, frm := f(lm), f(rm)
	left := simpson(a, m, fa, flm, fm)
	right := simpson(m, b, fm, frm, fb)

	if depth <= 0 || math.Abs(left+right-whole) <= 15*tol {
		return left + right + (left+right-whole)/15
	}
	return adaptiveSimpson(f, a, m, fa, flm, fm, left, tol/2, depth-1) +
		adaptiveSimpson(f, m, b, fm, frm, fb, right, tol/2, depth-1)
}
