package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capsule is the set of points within Radius of the segment [P0, P1]. When
// P0 equals P1 it degenerates to a sphere.
type Capsule struct {
	P0     rl.Vector3
	P1     rl.Vector3
	Radius float32
}

// NewCapsule creates a capsule from its axis endpoints and radius.
func NewCapsule(p0, p1 rl.Vector3, radius float32) Capsule {
	return Capsule{P0: p0, P1: p1, Radius: radius}
}

// Kind implements Shape.
func (c Capsule) Kind() Kind { return KindCapsule }

// IsValid reports whether the radius is non-negative.
func (c Capsule) IsValid() bool {
	return c.Radius >= 0
}

// IsDegenerate reports whether the axis is too short to have a direction.
func (c Capsule) IsDegenerate() bool {
	return distanceSq(c.P0, c.P1) < SegmentEpsilon
}

// Axis returns P1 - P0.
func (c Capsule) Axis() rl.Vector3 {
	return sub(c.P1, c.P0)
}

// Center returns the midpoint of the axis.
func (c Capsule) Center() rl.Vector3 {
	return rl.Vector3Lerp(c.P0, c.P1, 0.5)
}

// Bounds returns the tight axis-aligned box around the capsule.
func (c Capsule) Bounds() AABB {
	r := rl.Vector3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return NewAABBFromMinMax(
		sub(rl.Vector3Min(c.P0, c.P1), r),
		add(rl.Vector3Max(c.P0, c.P1), r),
	)
}

// Extent returns the largest value of dot(dir, x) over the capsule.
func (c Capsule) Extent(dir rl.Vector3) float32 {
	return math32.Max(dot(dir, c.P0), dot(dir, c.P1)) + c.Radius*rl.Vector3Length(dir)
}

// ContainsPoint reports whether p lies inside or on the capsule.
func (c Capsule) ContainsPoint(p rl.Vector3) bool {
	return PointSegmentDistanceSquared(p, c.P0, c.P1) <= c.Radius*c.Radius
}

// ClosestPoint returns the point of the solid capsule nearest to p.
func (c Capsule) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return Sphere{Center: ClosestPointOnSegment(c.P0, c.P1, p), Radius: c.Radius}.ClosestPoint(p)
}

// containsBall reports whether the ball (center, r) lies inside the capsule.
func (c Capsule) containsBall(center rl.Vector3, r float32) bool {
	inner := c.Radius - r
	if inner < 0 {
		return false
	}
	return PointSegmentDistanceSquared(center, c.P0, c.P1) <= inner*inner
}
