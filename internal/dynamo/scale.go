package dynamo

import "math"

// Ranges between samples near ±MaxFloat64 can be wider than MaxFloat64
// itself, so the helpers below work on halved endpoints.

// Fraction reports where v sits between lo and hi, 0 at lo and 1 at hi.
// An empty or inverted range maps everything to 0.
func Fraction(v, lo, hi float64) float64 {
	half := hi/2 - lo/2
	if !(half > 0) {
		return 0
	}
	return (v/2 - lo/2) / half
}

// Lerp returns the point a fraction t of the way from lo to hi.
func Lerp(lo, hi, t float64) float64 {
	return lo*(1-t) + hi*t
}

// Pad widens [lo, hi] by frac of its width on both sides. An empty range
// is treated as one unit wide. The result never leaves the finite floats.
func Pad(lo, hi, frac float64) (float64, float64) {
	half := hi/2 - lo/2
	if half == 0 {
		half = 0.5
	}
	pad := half * 2 * frac
	return clampFinite(lo - pad), clampFinite(hi + pad)
}

func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, v))
}
