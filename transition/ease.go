package transition

import "math"

// Epsilon bounds the "fully from" and "fully to" ends of a blend. Progress
// within Epsilon of 0 or 1 is treated as the end itself.
const Epsilon = 1e-4

// EaseInOutCubic maps a linear ratio in [0,1] onto a cubic ease-in-out curve.
func EaseInOutCubic(r float64) float64 {
	if r < 0.5 {
		return 4 * r * r * r
	}
	return 1 - math.Pow(-2*r+2, 3)/2
}

// AtStart reports whether p is at the "from" end of a blend.
func AtStart(p float64) bool {
	return p <= Epsilon
}

// AtEnd reports whether p is at the "to" end of a blend.
func AtEnd(p float64) bool {
	return p >= 1-Epsilon
}
