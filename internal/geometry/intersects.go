package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Intersects reports whether a and b overlap, touching included. Either
// shape containing the other counts as overlap; otherwise the pair's test
// from the dispatch table decides. The table is symmetric, so
// Intersects(a, b) == Intersects(b, a).
//
// Pairs involving a cylinder treated as a capsule, a cone, or a frustum are
// conservative: they may report overlap for shapes a few units of their
// radius apart, never miss a real one.
func Intersects(a, b Shape) bool {
	if a == nil || b == nil {
		return false
	}
	ka, kb := a.Kind(), b.Kind()
	if ka < 0 || ka >= kindCount || kb < 0 || kb >= kindCount {
		return false
	}
	if Contains(a, b) || Contains(b, a) {
		return true
	}
	fn := intersectTable[ka][kb]
	if fn == nil {
		return false
	}
	return fn(a, b)
}

type pairFunc func(a, b Shape) bool

var intersectTable = buildIntersectTable()

// pair adapts a typed test to the table signature.
func pair[A, B Shape](fn func(A, B) bool) pairFunc {
	return func(a, b Shape) bool {
		x, ok := a.(A)
		if !ok {
			return false
		}
		y, ok := b.(B)
		if !ok {
			return false
		}
		return fn(x, y)
	}
}

func buildIntersectTable() [kindCount][kindCount]pairFunc {
	var table [kindCount][kindCount]pairFunc
	register := func(a, b Kind, fn pairFunc) {
		table[a][b] = fn
		if a != b {
			table[b][a] = func(x, y Shape) bool { return fn(y, x) }
		}
	}

	for _, k := range Kinds() {
		register(KindPoint, k, func(p, s Shape) bool {
			return s.ContainsPoint(p.(Point).Vector())
		})
	}

	register(KindSphere, KindSphere, pair(Sphere.IntersectsSphere))
	register(KindSphere, KindCapsule, pair(Sphere.IntersectsCapsule))
	register(KindSphere, KindCylinder, pair(Sphere.IntersectsCylinder))
	register(KindSphere, KindCone, pair(Sphere.IntersectsCone))
	register(KindSphere, KindAABB, pair(Sphere.IntersectsAABB))
	register(KindSphere, KindOBB, pair(Sphere.IntersectsOBB))
	register(KindSphere, KindTriangle, pair(Sphere.IntersectsTriangle))
	register(KindSphere, KindFrustum, pair(Sphere.IntersectsFrustum))

	register(KindCapsule, KindCapsule, pair(Capsule.IntersectsCapsule))
	register(KindCapsule, KindCylinder, pair(Capsule.IntersectsCylinder))
	register(KindCapsule, KindCone, pair(Capsule.IntersectsCone))
	register(KindCapsule, KindAABB, pair(Capsule.IntersectsAABB))
	register(KindCapsule, KindOBB, pair(Capsule.IntersectsOBB))
	register(KindCapsule, KindTriangle, pair(Capsule.IntersectsTriangle))

	register(KindCylinder, KindCylinder, pair(Cylinder.IntersectsCylinder))
	register(KindCylinder, KindCone, pair(Cylinder.IntersectsCone))
	register(KindCylinder, KindAABB, pair(Cylinder.IntersectsAABB))
	register(KindCylinder, KindOBB, pair(Cylinder.IntersectsOBB))
	register(KindCylinder, KindTriangle, pair(Cylinder.IntersectsTriangle))

	register(KindCone, KindCone, pair(Cone.IntersectsCone))
	register(KindCone, KindAABB, pair(Cone.IntersectsAABB))
	register(KindCone, KindOBB, pair(Cone.IntersectsOBB))
	register(KindCone, KindTriangle, pair(Cone.IntersectsTriangle))

	register(KindAABB, KindAABB, pair(AABB.IntersectsAABB))
	register(KindOBB, KindAABB, pair(OBB.IntersectsAABB))
	register(KindOBB, KindOBB, pair(OBB.IntersectsOBB))
	register(KindTriangle, KindAABB, pair(Triangle.IntersectsAABB))
	register(KindTriangle, KindOBB, pair(Triangle.IntersectsOBB))
	register(KindTriangle, KindTriangle, pair(Triangle.IntersectsTriangle))

	register(KindPlane, KindPlane, pair(Plane.IntersectsPlane))
	register(KindSphere, KindPlane, pair(Sphere.IntersectsPlane))
	register(KindFrustum, KindFrustum, pair(Frustum.IntersectsFrustum))
	for _, k := range Kinds() {
		switch k {
		case KindPoint, KindPlane, KindSphere:
			continue
		}
		register(KindPlane, k, func(p, s Shape) bool {
			c, ok := s.(Convex)
			return ok && straddles(c, p.(Plane))
		})
		if k != KindFrustum {
			register(KindFrustum, k, func(f, s Shape) bool {
				c, ok := s.(Convex)
				return ok && f.(Frustum).overlapsConvex(c.Extent)
			})
		}
	}
	return table
}

// goldenIterations shrinks the search interval below float32 resolution on
// [0,1].
const goldenIterations = 34

// minimizeConvex returns the smallest value of a convex function over
// [0,1] by golden-section search.
func minimizeConvex(f func(t float32) float32) float32 {
	const invPhi = 0.618034
	lo, hi := float32(0), float32(1)
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < goldenIterations; i++ {
		if f1 <= f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		}
	}
	return math32.Min(math32.Min(f1, f2), math32.Min(f(0), f(1)))
}

// closester is a solid that can report its point nearest to a query.
type closester interface {
	ClosestPoint(p rl.Vector3) rl.Vector3
}

func distanceTo(s closester, p rl.Vector3) float32 {
	return math32.Sqrt(distanceSq(s.ClosestPoint(p), p))
}

// segmentDistanceSquared returns the smallest squared distance between
// segment [p, q] and the convex solid s.
func segmentDistanceSquared(p, q rl.Vector3, s closester) float32 {
	return minimizeConvex(func(t float32) float32 {
		x := rl.Vector3Lerp(p, q, t)
		return distanceSq(s.ClosestPoint(x), x)
	})
}

// segmentTriangleDistanceSquared returns the squared distance between
// segment [p, q] and triangle t, zero when the segment pierces it.
func segmentTriangleDistanceSquared(p, q rl.Vector3, t Triangle) float32 {
	if ts, _, _, ok := IntersectsTriangleRay(p, sub(q, p), t.A, t.B, t.C); ok && ts <= 1 {
		return 0
	}
	best := distanceSq(t.ClosestPoint(p), p)
	best = math32.Min(best, distanceSq(t.ClosestPoint(q), q))
	best = math32.Min(best, SegmentSegmentDistanceSquared(p, q, t.A, t.B))
	best = math32.Min(best, SegmentSegmentDistanceSquared(p, q, t.B, t.C))
	best = math32.Min(best, SegmentSegmentDistanceSquared(p, q, t.C, t.A))
	return best
}

// IntersectsSphere reports whether the spheres overlap.
func (s Sphere) IntersectsSphere(b Sphere) bool {
	r := s.Radius + b.Radius
	return distanceSq(s.Center, b.Center) <= r*r
}

// IntersectsCapsule compares the distance from the center to the capsule
// axis with the radius sum.
func (s Sphere) IntersectsCapsule(c Capsule) bool {
	r := s.Radius + c.Radius
	return PointSegmentDistanceSquared(s.Center, c.P0, c.P1) <= r*r
}

// IntersectsCylinder uses the exact closest point on the solid cylinder.
func (s Sphere) IntersectsCylinder(c Cylinder) bool {
	return distanceSq(c.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius+Epsilon
}

// IntersectsCone uses the exact closest point on the solid cone.
func (s Sphere) IntersectsCone(c Cone) bool {
	return distanceSq(c.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius+Epsilon
}

// IntersectsAABB tests the center against the box's closest point.
func (s Sphere) IntersectsAABB(b AABB) bool {
	return distanceSq(b.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius
}

// IntersectsOBB tests the center against the box's closest point.
func (s Sphere) IntersectsOBB(o OBB) bool {
	return o.IntersectsSphere(s)
}

// IntersectsTriangle tests the center against the triangle's closest point.
func (s Sphere) IntersectsTriangle(t Triangle) bool {
	return distanceSq(t.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius
}

// IntersectsPlane reports whether the plane passes within Radius of the
// center.
func (s Sphere) IntersectsPlane(p Plane) bool {
	return math32.Abs(p.SignedDistance(s.Center)) <= s.Radius+Epsilon
}

// IntersectsFrustum reports whether the sphere is not behind any plane.
func (s Sphere) IntersectsFrustum(f Frustum) bool {
	return f.IntersectsSphere(s)
}

// IntersectsCapsule compares the axis distance with the radius sum.
func (c Capsule) IntersectsCapsule(b Capsule) bool {
	r := c.Radius + b.Radius
	return SegmentSegmentDistanceSquared(c.P0, c.P1, b.P0, b.P1) <= r*r
}

// IntersectsCylinder treats b as a capsule, then rejects pairs that the
// cylinder's flat caps keep apart along its axis.
func (c Capsule) IntersectsCylinder(b Cylinder) bool {
	r := c.Radius + b.Radius
	if SegmentSegmentDistanceSquared(c.P0, c.P1, b.P0, b.P1) > r*r {
		return false
	}
	return !separatedOn(c, b, b.Direction())
}

// IntersectsCone searches the cone axis for a ball that reaches c.
func (c Capsule) IntersectsCone(k Cone) bool {
	return k.overlaps(c, c)
}

// IntersectsAABB compares the segment-to-box distance with the radius.
func (c Capsule) IntersectsAABB(b AABB) bool {
	return segmentDistanceSquared(c.P0, c.P1, b) <= c.Radius*c.Radius+Epsilon
}

// IntersectsOBB compares the segment-to-box distance with the radius.
func (c Capsule) IntersectsOBB(o OBB) bool {
	return segmentDistanceSquared(c.P0, c.P1, o) <= c.Radius*c.Radius+Epsilon
}

// IntersectsTriangle compares the exact segment-to-triangle distance with
// the radius.
func (c Capsule) IntersectsTriangle(t Triangle) bool {
	return segmentTriangleDistanceSquared(c.P0, c.P1, t) <= c.Radius*c.Radius
}

func (c Cylinder) capsule() Capsule {
	return Capsule{P0: c.P0, P1: c.P1, Radius: c.Radius}
}

// IntersectsCylinder treats both cylinders as capsules, then rejects pairs
// kept apart along either axis.
func (c Cylinder) IntersectsCylinder(b Cylinder) bool {
	r := c.Radius + b.Radius
	if SegmentSegmentDistanceSquared(c.P0, c.P1, b.P0, b.P1) > r*r {
		return false
	}
	return !separatedOn(c, b, c.Direction()) && !separatedOn(c, b, b.Direction())
}

// IntersectsCone searches the cone axis for a ball that reaches c.
func (c Cylinder) IntersectsCone(k Cone) bool {
	return k.overlaps(c, c) && !separatedOn(c, k, c.Direction())
}

// IntersectsAABB treats c as a capsule and trims with the box and cylinder
// axes.
func (c Cylinder) IntersectsAABB(b AABB) bool {
	if !c.capsule().IntersectsAABB(b) {
		return false
	}
	for _, axis := range worldAxes {
		if separatedOn(c, b, axis) {
			return false
		}
	}
	return !separatedOn(c, b, c.Direction())
}

// IntersectsOBB treats c as a capsule and trims with the box and cylinder
// axes.
func (c Cylinder) IntersectsOBB(o OBB) bool {
	if !c.capsule().IntersectsOBB(o) {
		return false
	}
	for _, axis := range o.Axes {
		if separatedOn(c, o, axis) {
			return false
		}
	}
	return !separatedOn(c, o, c.Direction())
}

// IntersectsTriangle treats c as a capsule and trims with the triangle
// normal and the cylinder axis.
func (c Cylinder) IntersectsTriangle(t Triangle) bool {
	if !c.capsule().IntersectsTriangle(t) {
		return false
	}
	return !separatedOn(c, t, t.Normal()) && !separatedOn(c, t, c.Direction())
}

// overlaps models the cone as the union of balls of radius RadiusAt(t)
// centered along its axis and reports whether any of them reaches s. The
// distance from the axis to a convex solid minus the growing radius is
// convex in t, so a golden-section search finds the closest approach. The
// union is slightly larger than the cone, so the flat base and the other
// shape's support along the axis are checked as well.
func (k Cone) overlaps(s closester, support Convex) bool {
	if k.IsDegenerate() {
		return support.ContainsPoint(k.Apex)
	}
	n := k.Direction()
	gap := minimizeConvex(func(t float32) float32 {
		return distanceTo(s, madd(k.Apex, n, t*k.Height)) - k.RadiusAt(t)
	})
	if gap > Epsilon {
		return false
	}
	return !separatedOn(k, support, n)
}

// IntersectsCone searches the axis of each cone for a ball that reaches the
// other, so the result does not depend on argument order.
func (k Cone) IntersectsCone(b Cone) bool {
	if separatedOn(k, b, k.Direction()) || separatedOn(k, b, b.Direction()) {
		return false
	}
	return k.overlaps(b, b) && b.overlaps(k, k)
}

// IntersectsAABB searches the cone axis for a ball that reaches b.
func (k Cone) IntersectsAABB(b AABB) bool {
	if !k.overlaps(b, b) {
		return false
	}
	for _, axis := range worldAxes {
		if separatedOn(k, b, axis) {
			return false
		}
	}
	return true
}

// IntersectsOBB searches the cone axis for a ball that reaches o.
func (k Cone) IntersectsOBB(o OBB) bool {
	if !k.overlaps(o, o) {
		return false
	}
	for _, axis := range o.Axes {
		if separatedOn(k, o, axis) {
			return false
		}
	}
	return true
}

// IntersectsTriangle searches the cone axis for a ball that reaches t.
func (k Cone) IntersectsTriangle(t Triangle) bool {
	return k.overlaps(t, t) && !separatedOn(k, t, t.Normal())
}

// IntersectsPlane reports whether the planes meet: they are not parallel,
// or they coincide.
func (p Plane) IntersectsPlane(q Plane) bool {
	if lengthSq(cross(p.Normal, q.Normal)) > ParallelEpsilon {
		return true
	}
	return Contains(p, q)
}

// IntersectsFrustum reports whether neither frustum lies entirely behind a
// plane of the other.
func (f Frustum) IntersectsFrustum(g Frustum) bool {
	return f.overlapsConvex(g.Extent) && g.overlapsConvex(f.Extent)
}
