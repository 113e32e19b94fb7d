package ripple

// Easing maps normalized time t in [0, 1] to normalized progress.
// Implementations must return 0 at t=0 and 1 at t=1.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutQuad decelerates quadratically toward the end.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseOutCubic decelerates cubically toward the end. This is the fill
// animation's default: fast initial spread, gentle settle.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutQuad accelerates through the first half and decelerates
// through the second.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Smoothstep is the cubic smoothstep 3t²-2t³, symmetric ease-in-out.
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
