package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Cylinder is a flat-capped solid cylinder around the segment [P0, P1].
type Cylinder struct {
	P0     rl.Vector3
	P1     rl.Vector3
	Radius float32
}

// NewCylinder creates a cylinder from its cap centers and radius.
func NewCylinder(p0, p1 rl.Vector3, radius float32) Cylinder {
	return Cylinder{P0: p0, P1: p1, Radius: radius}
}

// Kind implements Shape.
func (c Cylinder) Kind() Kind { return KindCylinder }

// IsValid reports whether the radius is non-negative.
func (c Cylinder) IsValid() bool {
	return c.Radius >= 0
}

// IsDegenerate reports whether the axis is too short to have a direction.
// Degenerate cylinders are treated as a ball of the cylinder's radius at P0.
func (c Cylinder) IsDegenerate() bool {
	return distanceSq(c.P0, c.P1) < SegmentEpsilon
}

// Height returns the axis length.
func (c Cylinder) Height() float32 {
	return rl.Vector3Distance(c.P0, c.P1)
}

// Direction returns the unit axis, zero when degenerate.
func (c Cylinder) Direction() rl.Vector3 {
	if c.IsDegenerate() {
		return rl.Vector3{}
	}
	return SafeNormalize(sub(c.P1, c.P0))
}

// Center returns the midpoint of the axis.
func (c Cylinder) Center() rl.Vector3 {
	return rl.Vector3Lerp(c.P0, c.P1, 0.5)
}

func (c Cylinder) ball() Sphere {
	return Sphere{Center: c.P0, Radius: c.Radius}
}

// Bounds returns the tight axis-aligned box around the cylinder. Each cap
// disc reaches Radius*sqrt(1-n_i²) along world axis i.
func (c Cylinder) Bounds() AABB {
	if c.IsDegenerate() {
		return c.ball().Bounds()
	}
	n := c.Direction()
	e := rl.Vector3{
		X: c.Radius * perpendicularLength(vecX, n),
		Y: c.Radius * perpendicularLength(vecY, n),
		Z: c.Radius * perpendicularLength(vecZ, n),
	}
	return NewAABBFromMinMax(
		sub(rl.Vector3Min(c.P0, c.P1), e),
		add(rl.Vector3Max(c.P0, c.P1), e),
	)
}

// Extent returns the largest value of dot(dir, x) over the cylinder.
func (c Cylinder) Extent(dir rl.Vector3) float32 {
	if c.IsDegenerate() {
		return c.ball().Extent(dir)
	}
	rim := c.Radius * perpendicularLength(dir, c.Direction())
	return math32.Max(dot(dir, c.P0), dot(dir, c.P1)) + rim
}

// ContainsPoint reports whether p lies inside or on the cylinder.
func (c Cylinder) ContainsPoint(p rl.Vector3) bool {
	return c.containsBall(p, 0)
}

// ClosestPoint returns the point of the solid cylinder nearest to p.
func (c Cylinder) ClosestPoint(p rl.Vector3) rl.Vector3 {
	if c.IsDegenerate() {
		return c.ball().ClosestPoint(p)
	}
	n := c.Direction()
	d := sub(p, c.P0)
	h := dot(d, n)
	radial := sub(d, scale(n, h))
	if rl2 := lengthSq(radial); rl2 > c.Radius*c.Radius {
		radial = scale(radial, c.Radius/math32.Sqrt(rl2))
	}
	return add(madd(c.P0, n, clampf(h, 0, c.Height())), radial)
}

// containsBall reports whether the ball (center, r) lies inside the
// cylinder, caps included: the center must sit at least r away from both
// caps and within Radius-r of the axis.
func (c Cylinder) containsBall(center rl.Vector3, r float32) bool {
	inner := c.Radius - r
	if inner < 0 {
		return false
	}
	if c.IsDegenerate() {
		return c.ball().containsBall(center, r)
	}
	n := c.Direction()
	d := sub(center, c.P0)
	h := dot(d, n)
	if h < r-Epsilon || h > c.Height()-r+Epsilon {
		return false
	}
	radial := perpendicularLength(d, n)
	return radial <= inner+Epsilon
}

// containsDisc reports whether the disc (center, unit normal m, radius r)
// lies inside the cylinder. The axial span is exact; the radial test adds
// the full disc radius to the center's offset, which never accepts a disc
// that pokes out of the side.
func (c Cylinder) containsDisc(center, m rl.Vector3, r float32) bool {
	if IsZero(m) || c.IsDegenerate() {
		return c.containsBall(center, r)
	}
	n := c.Direction()
	d := sub(center, c.P0)
	h := dot(d, n)
	spread := r * perpendicularLength(n, m)
	if h-spread < -Epsilon || h+spread > c.Height()+Epsilon {
		return false
	}
	return perpendicularLength(d, n)+r <= c.Radius+Epsilon
}
