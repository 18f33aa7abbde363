// Package animation drives tweened values through the frame tick,
// writing each step into a signal so the usual rebuild path reacts.
package animation

// Easing maps normalized progress in [0, 1] to an eased fraction.
// Values outside [0, 1] are allowed for overshooting curves.
type Easing func(t float64) float64

// Linear is constant-rate interpolation.
func Linear(t float64) float64 { return t }

// QuadIn accelerates from rest.
func QuadIn(t float64) float64 { return t * t }

// QuadOut decelerates to rest.
func QuadOut(t float64) float64 { return t * (2 - t) }

// QuadInOut accelerates through the midpoint then decelerates.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CubicIn accelerates from rest, more sharply than QuadIn.
func CubicIn(t float64) float64 { return t * t * t }

// CubicOut decelerates to rest, more sharply than QuadOut.
func CubicOut(t float64) float64 {
	t--
	return t*t*t + 1
}

// CubicInOut accelerates through the midpoint then decelerates.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	t = 2*t - 2
	return 0.5*t*t*t + 1
}

// BounceOut settles with three diminishing bounces.
func BounceOut(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// BounceIn mirrors BounceOut.
func BounceIn(t float64) float64 { return 1 - BounceOut(1-t) }
