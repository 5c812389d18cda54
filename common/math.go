package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the physics space gravity in pixels per second squared.
	Gravity = 1200.0
	// GroundY is the top of the floor segment in screen pixels.
	GroundY = 560.0
	// PixelsPerMeter scales controller bodies, which move in meters.
	PixelsPerMeter = 80.0
)

func Lerp(a, b, t float32) float32 {
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
