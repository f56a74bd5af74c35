package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a solid ball.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// NewSphere creates a sphere from a center and radius.
func NewSphere(center rl.Vector3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Kind implements Shape.
func (s Sphere) Kind() Kind { return KindSphere }

// IsValid reports whether the radius is a finite non-negative number.
func (s Sphere) IsValid() bool {
	return s.Radius >= 0 && !math32.IsInf(s.Radius, 0)
}

// Bounds returns the tight axis-aligned box around the sphere.
func (s Sphere) Bounds() AABB {
	return AABB{Center: s.Center, Extents: rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}}
}

// Extent returns the largest value of dot(dir, x) over the sphere.
func (s Sphere) Extent(dir rl.Vector3) float32 {
	return dot(dir, s.Center) + s.Radius*rl.Vector3Length(dir)
}

// ContainsPoint reports whether p lies inside or on the sphere.
func (s Sphere) ContainsPoint(p rl.Vector3) bool {
	return distanceSq(p, s.Center) <= s.Radius*s.Radius
}

// ClosestPoint returns the point of the solid sphere nearest to p; p itself
// when it is inside.
func (s Sphere) ClosestPoint(p rl.Vector3) rl.Vector3 {
	d := sub(p, s.Center)
	l2 := lengthSq(d)
	if l2 <= s.Radius*s.Radius {
		return p
	}
	return madd(s.Center, d, s.Radius/math32.Sqrt(l2))
}

// containsBall reports whether the ball (c, r) lies inside the sphere.
func (s Sphere) containsBall(c rl.Vector3, r float32) bool {
	inner := s.Radius - r
	if inner < 0 {
		return false
	}
	return distanceSq(c, s.Center) <= inner*inner
}

// containsDisc reports whether the disc centered at c with unit normal n and
// radius r lies inside the sphere. The farthest disc point from the sphere
// center sits on the rim, in the direction of the center's radial offset.
func (s Sphere) containsDisc(c, n rl.Vector3, r float32) bool {
	if IsZero(n) {
		return s.containsBall(c, r)
	}
	d := sub(c, s.Center)
	axial := dot(d, n)
	radial := perpendicularLength(d, n) + r
	return axial*axial+radial*radial <= s.Radius*s.Radius
}
