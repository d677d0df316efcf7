package common

// Logical screen size of the game window.
const (
	BaseWidth  = 540
	BaseHeight = 960
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
