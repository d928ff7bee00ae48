package mathops

import "math"

// Vec3 is a 3-component double-precision vector used for all build-time
// geometry math. Source geometry is stored as float32 (core.Vertex); it is
// widened to float64 here so centroid/covariance/SAH arithmetic does not
// accumulate the rounding error float32 would introduce over deep
// recursion.
type Vec3 [3]float64

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns a*s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

// Min returns the componentwise minimum of a and b.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// Max returns the componentwise maximum of a and b.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}

// Dot returns the scalar (inner) product of a and b.
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Length returns the Euclidean norm of a.
func (a Vec3) Length() float64 {
	return math.Sqrt(a.Dot(a))
}
