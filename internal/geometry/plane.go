package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane represents a plane in 3D space (Normal·p + Distance = 0)
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// NewPlane creates a plane from a normal and distance, scaling both so the
// normal is unit length.
func NewPlane(normal rl.Vector3, distance float32) Plane {
	return Plane{Normal: normal, Distance: distance}.Normalize()
}

// NewPlaneFromPointNormal creates the plane through p with the given normal.
func NewPlaneFromPointNormal(p, normal rl.Vector3) Plane {
	n := SafeNormalize(normal)
	return Plane{Normal: n, Distance: -dot(n, p)}
}

// NewPlaneFromPoints creates the plane through a, b and c, with the normal
// following counter-clockwise winding. Collinear points give a zero normal.
func NewPlaneFromPoints(a, b, c rl.Vector3) Plane {
	return NewPlaneFromPointNormal(a, cross(sub(b, a), sub(c, a)))
}

// Kind implements Shape.
func (p Plane) Kind() Kind { return KindPlane }

// IsValid reports whether the normal is unit length.
func (p Plane) IsValid() bool {
	return math32.Abs(lengthSq(p.Normal)-1) <= 1e-3
}

// Normalize returns the plane scaled to a unit normal. A zero normal is
// returned unchanged.
func (p Plane) Normalize() Plane {
	length := rl.Vector3Length(p.Normal)
	if length < Epsilon {
		return p
	}
	return Plane{
		Normal:   scale(p.Normal, 1/length),
		Distance: p.Distance / length,
	}
}

// Flip returns the same plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{Normal: scale(p.Normal, -1), Distance: -p.Distance}
}

// SignedDistance returns the distance from q to the plane, positive on the
// side the normal points to.
func (p Plane) SignedDistance(q rl.Vector3) float32 {
	return dot(p.Normal, q) + p.Distance
}

// ClosestPoint returns the projection of q onto the plane.
func (p Plane) ClosestPoint(q rl.Vector3) rl.Vector3 {
	return madd(q, p.Normal, -p.SignedDistance(q))
}

// ContainsPoint reports whether q lies on the plane.
func (p Plane) ContainsPoint(q rl.Vector3) bool {
	return math32.Abs(p.SignedDistance(q)) <= Epsilon
}

// intersectPlanes returns the point shared by three planes, or false when
// two of them are parallel.
func intersectPlanes(p1, p2, p3 Plane) (rl.Vector3, bool) {
	n23 := cross(p2.Normal, p3.Normal)
	denom := dot(p1.Normal, n23)
	if math32.Abs(denom) < Epsilon {
		return rl.Vector3{}, false
	}
	n31 := cross(p3.Normal, p1.Normal)
	n12 := cross(p1.Normal, p2.Normal)
	num := add(add(scale(n23, -p1.Distance), scale(n31, -p2.Distance)), scale(n12, -p3.Distance))
	return scale(num, 1/denom), true
}
