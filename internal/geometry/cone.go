package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Cone is a solid right circular cone. The base disc is centered at
// Apex + normalize(Axis)*Height with radius Radius; Axis need not be unit
// length.
type Cone struct {
	Apex   rl.Vector3
	Axis   rl.Vector3
	Height float32
	Radius float32
}

// NewCone creates a cone from its apex, axis direction, height and base
// radius.
func NewCone(apex, axis rl.Vector3, height, radius float32) Cone {
	return Cone{Apex: apex, Axis: axis, Height: height, Radius: radius}
}

// NewConeFromPoints creates a cone whose apex is at apex and whose base disc
// is centered at base.
func NewConeFromPoints(apex, base rl.Vector3, radius float32) Cone {
	axis := sub(base, apex)
	return Cone{Apex: apex, Axis: axis, Height: rl.Vector3Length(axis), Radius: radius}
}

// Kind implements Shape.
func (c Cone) Kind() Kind { return KindCone }

// IsValid reports whether the cone has a positive height, a usable axis and
// a non-negative radius.
func (c Cone) IsValid() bool {
	return c.Height > 0 && c.Radius >= 0 && !IsZero(c.Axis)
}

// IsDegenerate reports whether the cone collapses to its apex.
func (c Cone) IsDegenerate() bool {
	return c.Height < Epsilon || IsZero(c.Axis)
}

// Direction returns the unit axis, zero when degenerate.
func (c Cone) Direction() rl.Vector3 {
	return SafeNormalize(c.Axis)
}

// BaseCenter returns the center of the base disc.
func (c Cone) BaseCenter() rl.Vector3 {
	return madd(c.Apex, c.Direction(), c.Height)
}

// RadiusAt returns the cone's radius at parametric height t in [0,1]
// measured from the apex. t is clamped.
func (c Cone) RadiusAt(t float32) float32 {
	return clampf(t, 0, 1) * c.Radius
}

// radiusAtHeight returns the cone's radius at distance h along the axis.
func (c Cone) radiusAtHeight(h float32) float32 {
	if c.Height < Epsilon {
		return 0
	}
	return c.RadiusAt(h / c.Height)
}

// Bounds returns the tight axis-aligned box around the cone.
func (c Cone) Bounds() AABB {
	if c.IsDegenerate() {
		return AABB{Center: c.Apex}
	}
	n := c.Direction()
	base := c.BaseCenter()
	e := rl.Vector3{
		X: c.Radius * perpendicularLength(vecX, n),
		Y: c.Radius * perpendicularLength(vecY, n),
		Z: c.Radius * perpendicularLength(vecZ, n),
	}
	return NewAABBFromMinMax(
		rl.Vector3Min(c.Apex, sub(base, e)),
		rl.Vector3Max(c.Apex, add(base, e)),
	)
}

// Extent returns the largest value of dot(dir, x) over the cone: either the
// apex or the base rim point furthest along dir.
func (c Cone) Extent(dir rl.Vector3) float32 {
	if c.IsDegenerate() {
		return dot(dir, c.Apex)
	}
	rim := dot(dir, c.BaseCenter()) + c.Radius*perpendicularLength(dir, c.Direction())
	return math32.Max(dot(dir, c.Apex), rim)
}

// local splits p into its height along the axis and its radial offset.
func (c Cone) local(p rl.Vector3) (h float32, radial rl.Vector3) {
	n := c.Direction()
	d := sub(p, c.Apex)
	h = dot(d, n)
	return h, sub(d, scale(n, h))
}

// ContainsPoint reports whether p lies inside or on the cone.
func (c Cone) ContainsPoint(p rl.Vector3) bool {
	if c.IsDegenerate() {
		return NearlyEqual(p, c.Apex, Epsilon)
	}
	h, radial := c.local(p)
	if h < -Epsilon || h > c.Height+Epsilon {
		return false
	}
	return rl.Vector3Length(radial) <= c.radiusAtHeight(h)+Epsilon
}

// ClosestPoint returns the point of the solid cone nearest to p. The query
// is solved in the meridian half-plane through p, where the cone is the
// triangle apex, base center, base rim.
func (c Cone) ClosestPoint(p rl.Vector3) rl.Vector3 {
	if c.IsDegenerate() {
		return c.Apex
	}
	h, radial := c.local(p)
	q := rl.Vector3Length(radial)
	var u rl.Vector3
	if q > Epsilon {
		u = scale(radial, 1/q)
	} else {
		u = AnyPerpendicular(c.Direction())
	}
	cp := ClosestPointOnTriangle(
		rl.Vector3{X: h, Y: q},
		rl.Vector3{},
		rl.Vector3{X: c.Height, Y: c.Radius},
		rl.Vector3{X: c.Height},
	)
	return add(madd(c.Apex, c.Direction(), cp.X), scale(u, cp.Y))
}

// containsBall reports whether the ball (center, r) lies inside the cone:
// the center must be at least r from the base plane and from the lateral
// surface in its meridian plane.
func (c Cone) containsBall(center rl.Vector3, r float32) bool {
	if c.IsDegenerate() {
		return r <= 0 && c.ContainsPoint(center)
	}
	if c.radiusAtHeight(c.Height) < r {
		return false
	}
	h, radial := c.local(center)
	if h < r-Epsilon || c.Height-h < r-Epsilon {
		return false
	}
	q := rl.Vector3Length(radial)
	slant := math32.Sqrt(c.Radius*c.Radius + c.Height*c.Height)
	lateral := (h*c.Radius - q*c.Height) / slant
	return lateral >= r-Epsilon
}
