// Package geometry is a float32 collision-geometry kernel built on raylib's
// vector types: primitive shapes, closest-point queries, containment and
// intersection predicates, separating-axis tests, ray casts and
// penetration vectors.
//
// Every function is a pure computation over value arguments. Nothing is
// cached between calls, nothing is logged and nothing panics on degenerate
// input; degenerate cases resolve to documented fallbacks instead.
package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Epsilon is the general tolerance used for lengths and signed distances.
	Epsilon float32 = 1e-6

	// SegmentEpsilon is the squared length below which a segment is treated
	// as a single point.
	SegmentEpsilon float32 = 1e-6

	// BarycentricEpsilon is the smallest barycentric denominator that is
	// still divided by.
	BarycentricEpsilon float32 = 1e-12

	// SATEpsilon biases absolute dot products in the separating-axis tests
	// so nearly parallel axes do not produce false separations.
	SATEpsilon float32 = 1e-6

	// ParallelEpsilon is the squared sine below which two directions are
	// treated as parallel.
	ParallelEpsilon float32 = 1e-6
)

var (
	vecX = rl.Vector3{X: 1}
	vecY = rl.Vector3{Y: 1}
	vecZ = rl.Vector3{Z: 1}
)

func dot(a, b rl.Vector3) float32 {
	return rl.Vector3DotProduct(a, b)
}

func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3CrossProduct(a, b)
}

func add(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(a, b)
}

func sub(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(a, b)
}

func scale(v rl.Vector3, s float32) rl.Vector3 {
	return rl.Vector3Scale(v, s)
}

// madd returns a + v*s.
func madd(a, v rl.Vector3, s float32) rl.Vector3 {
	return rl.Vector3Add(a, rl.Vector3Scale(v, s))
}

func lengthSq(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, v)
}

func distanceSq(a, b rl.Vector3) float32 {
	return lengthSq(sub(a, b))
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func component(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SafeNormalize returns v scaled to unit length, or the zero vector when
// |v| is below Epsilon.
func SafeNormalize(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < Epsilon {
		return rl.Vector3{}
	}
	return scale(v, 1/l)
}

// IsZero reports whether every component of v is within Epsilon of zero.
func IsZero(v rl.Vector3) bool {
	return lengthSq(v) < Epsilon*Epsilon
}

// NearlyEqual reports whether a and b are within eps of each other.
func NearlyEqual(a, b rl.Vector3, eps float32) bool {
	return distanceSq(a, b) <= eps*eps
}

// Project returns the projection of v onto onto. A degenerate onto yields
// the zero vector.
func Project(v, onto rl.Vector3) rl.Vector3 {
	d := lengthSq(onto)
	if d < Epsilon*Epsilon {
		return rl.Vector3{}
	}
	return scale(onto, dot(v, onto)/d)
}

// ProjectOnPlane removes the component of v along normal.
func ProjectOnPlane(v, normal rl.Vector3) rl.Vector3 {
	return sub(v, Project(v, normal))
}

// AnyPerpendicular returns a unit vector perpendicular to v. For a zero v
// it returns the X axis.
func AnyPerpendicular(v rl.Vector3) rl.Vector3 {
	n := SafeNormalize(v)
	if IsZero(n) {
		return vecX
	}
	// Cross with the world axis least aligned with n.
	ax, ay, az := math32.Abs(n.X), math32.Abs(n.Y), math32.Abs(n.Z)
	other := vecX
	if ay <= ax && ay <= az {
		other = vecY
	} else if az <= ax && az <= ay {
		other = vecZ
	}
	return SafeNormalize(cross(n, other))
}

// perpendicularLength returns |d - (d·axis)axis| for a unit axis.
func perpendicularLength(d, axis rl.Vector3) float32 {
	c := dot(d, axis)
	s := lengthSq(d) - c*c
	if s <= 0 {
		return 0
	}
	return math32.Sqrt(s)
}
