package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contains reports whether inner lies entirely within outer. Tests against
// Sphere, AABB, OBB and Frustum outers are exact. Capsule, Cylinder and Cone
// outers are exact for points, spheres, capsules and polytopes; cylinders
// and cones inside them are tested through their end balls, which can
// reject a shape that fits but never accepts one that does not.
func Contains(outer, inner Shape) bool {
	switch o := outer.(type) {
	case Point:
		return pointContains(o, inner)
	case Sphere:
		return sphereContains(o, inner)
	case Capsule:
		return capsuleContains(o, inner)
	case Cylinder:
		return cylinderContains(o, inner)
	case Cone:
		return coneContains(o, inner)
	case AABB:
		return o.ContainsShape(inner)
	case OBB:
		return o.ContainsShape(inner)
	case Triangle:
		return triangleContains(o, inner)
	case Plane:
		return planeContains(o, inner)
	case Frustum:
		return o.ContainsShape(inner)
	}
	return false
}

// hullPoints returns up to eight points whose convex hull is s. Round shapes
// qualify only when their radius is zero.
func hullPoints(s Shape) (pts [8]rl.Vector3, n int, ok bool) {
	switch v := s.(type) {
	case Point:
		pts[0] = v.Vector()
		return pts, 1, true
	case Sphere:
		pts[0] = v.Center
		return pts, 1, v.Radius <= 0
	case Capsule:
		pts[0], pts[1] = v.P0, v.P1
		return pts, 2, v.Radius <= 0
	case Cylinder:
		pts[0], pts[1] = v.P0, v.P1
		return pts, 2, v.Radius <= 0
	case Cone:
		pts[0], pts[1] = v.Apex, v.BaseCenter()
		return pts, 2, v.Radius <= 0
	case AABB:
		return v.Corners(), 8, true
	case OBB:
		return v.Corners(), 8, true
	case Triangle:
		pts[0], pts[1], pts[2] = v.A, v.B, v.C
		return pts, 3, true
	case Frustum:
		return v.Corners(), 8, true
	}
	return pts, 0, false
}

// containsHull reports whether every hull point of inner satisfies inside.
func containsHull(inner Shape, inside func(rl.Vector3) bool) bool {
	pts, n, ok := hullPoints(inner)
	if !ok {
		return false
	}
	for _, p := range pts[:n] {
		if !inside(p) {
			return false
		}
	}
	return true
}

func pointContains(o Point, inner Shape) bool {
	if c, ok := inner.(Convex); ok {
		b := c.Bounds()
		return NearlyEqual(b.Min(), o.Vector(), Epsilon) && NearlyEqual(b.Max(), o.Vector(), Epsilon)
	}
	return false
}

// ContainsSphere reports whether b lies inside s: |c1-c2| <= r1-r2.
func (s Sphere) ContainsSphere(b Sphere) bool {
	return s.containsBall(b.Center, b.Radius)
}

// ContainsCapsule reports whether both end balls of c lie inside s.
func (s Sphere) ContainsCapsule(c Capsule) bool {
	return s.containsBall(c.P0, c.Radius) && s.containsBall(c.P1, c.Radius)
}

// ContainsCylinder reports whether both cap discs of c lie inside s.
func (s Sphere) ContainsCylinder(c Cylinder) bool {
	if c.Radius > s.Radius {
		return false
	}
	n := c.Direction()
	return s.containsDisc(c.P0, n, c.Radius) && s.containsDisc(c.P1, n, c.Radius)
}

// ContainsCone reports whether the apex and base disc of c lie inside s.
func (s Sphere) ContainsCone(c Cone) bool {
	if c.Radius > s.Radius {
		return false
	}
	return s.ContainsPoint(c.Apex) && s.containsDisc(c.BaseCenter(), c.Direction(), c.Radius)
}

func sphereContains(s Sphere, inner Shape) bool {
	switch v := inner.(type) {
	case Sphere:
		return s.ContainsSphere(v)
	case Capsule:
		return s.ContainsCapsule(v)
	case Cylinder:
		return s.ContainsCylinder(v)
	case Cone:
		return s.ContainsCone(v)
	}
	return containsHull(inner, s.ContainsPoint)
}

// ContainsSphere reports whether b lies within c.Radius-b.Radius of the axis.
func (c Capsule) ContainsSphere(b Sphere) bool {
	return c.containsBall(b.Center, b.Radius)
}

// ContainsCapsule reports whether both end balls of b lie inside c.
func (c Capsule) ContainsCapsule(b Capsule) bool {
	return c.containsBall(b.P0, b.Radius) && c.containsBall(b.P1, b.Radius)
}

// ContainsCylinder treats b as the capsule with the same axis and radius.
func (c Capsule) ContainsCylinder(b Cylinder) bool {
	return c.containsBall(b.P0, b.Radius) && c.containsBall(b.P1, b.Radius)
}

func capsuleContains(c Capsule, inner Shape) bool {
	switch v := inner.(type) {
	case Sphere:
		return c.ContainsSphere(v)
	case Capsule:
		return c.ContainsCapsule(v)
	case Cylinder:
		return c.ContainsCylinder(v)
	case Cone:
		return c.ContainsPoint(v.Apex) && c.containsBall(v.BaseCenter(), v.Radius)
	}
	return containsHull(inner, c.ContainsPoint)
}

// ContainsSphere reports whether b fits inside c, caps included.
func (c Cylinder) ContainsSphere(b Sphere) bool {
	return c.containsBall(b.Center, b.Radius)
}

// ContainsCapsule reports whether both end balls of b fit inside c.
func (c Cylinder) ContainsCapsule(b Capsule) bool {
	return c.containsBall(b.P0, b.Radius) && c.containsBall(b.P1, b.Radius)
}

// ContainsCylinder reports whether both cap discs of b fit inside c.
func (c Cylinder) ContainsCylinder(b Cylinder) bool {
	n := b.Direction()
	return c.containsDisc(b.P0, n, b.Radius) && c.containsDisc(b.P1, n, b.Radius)
}

func cylinderContains(c Cylinder, inner Shape) bool {
	switch v := inner.(type) {
	case Sphere:
		return c.ContainsSphere(v)
	case Capsule:
		return c.ContainsCapsule(v)
	case Cylinder:
		return c.ContainsCylinder(v)
	case Cone:
		return c.ContainsPoint(v.Apex) && c.containsDisc(v.BaseCenter(), v.Direction(), v.Radius)
	}
	return containsHull(inner, c.ContainsPoint)
}

// ContainsSphere reports whether b fits inside the cone: its center must be
// at least b.Radius from the base plane and the lateral surface.
func (c Cone) ContainsSphere(b Sphere) bool {
	return c.containsBall(b.Center, b.Radius)
}

// ContainsCapsule reports whether both end balls of b fit inside the cone.
func (c Cone) ContainsCapsule(b Capsule) bool {
	return c.containsBall(b.P0, b.Radius) && c.containsBall(b.P1, b.Radius)
}

func coneContains(c Cone, inner Shape) bool {
	switch v := inner.(type) {
	case Sphere:
		return c.ContainsSphere(v)
	case Capsule:
		return c.ContainsCapsule(v)
	case Cylinder:
		return c.containsBall(v.P0, v.Radius) && c.containsBall(v.P1, v.Radius)
	case Cone:
		return c.ContainsPoint(v.Apex) && c.containsBall(v.BaseCenter(), v.Radius)
	}
	return containsHull(inner, c.ContainsPoint)
}

// ContainsShape reports whether inner lies inside the box. The test is
// exact for every bounded shape.
func (a AABB) ContainsShape(inner Shape) bool {
	c, ok := inner.(Convex)
	if !ok {
		return false
	}
	min, max := a.Min(), a.Max()
	for i, axis := range worldAxes {
		lo, hi := interval(c, axis)
		if lo < component(min, i)-Epsilon || hi > component(max, i)+Epsilon {
			return false
		}
	}
	return true
}

// ContainsShape reports whether inner lies inside the box. The test is
// exact for every bounded shape.
func (o OBB) ContainsShape(inner Shape) bool {
	c, ok := inner.(Convex)
	if !ok {
		return false
	}
	for i, axis := range o.Axes {
		lo, hi := interval(c, axis)
		center := dot(axis, o.Center)
		e := component(o.Extents, i)
		if lo < center-e-Epsilon || hi > center+e+Epsilon {
			return false
		}
	}
	return true
}

// ContainsShape reports whether inner lies on the inner side of all six
// planes. The test is exact for every bounded shape.
func (f Frustum) ContainsShape(inner Shape) bool {
	c, ok := inner.(Convex)
	if !ok {
		return false
	}
	return f.containsConvex(c.Extent)
}

func triangleContains(t Triangle, inner Shape) bool {
	return containsHull(inner, t.ContainsPoint)
}

func planeContains(p Plane, inner Shape) bool {
	if q, ok := inner.(Plane); ok {
		a, b := p.Normalize(), q.Normalize()
		if dot(a.Normal, b.Normal) < 0 {
			b = b.Flip()
		}
		return NearlyEqual(a.Normal, b.Normal, Epsilon) && math32.Abs(a.Distance-b.Distance) <= Epsilon
	}
	return containsHull(inner, p.ContainsPoint)
}
