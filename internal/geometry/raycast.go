package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit describes where a ray first meets a shape. Distance is measured
// along the normalized ray direction. Barycentric holds the (a, b, c)
// weights of the hit point and is only set for triangles.
type RaycastHit struct {
	Point       rl.Vector3
	Normal      rl.Vector3
	Distance    float32
	Barycentric rl.Vector3
}

// Every cast below normalizes its direction and treats a zero direction as
// a miss. A ray that starts inside a solid hits it at distance 0 with the
// normal facing back along the ray.

func insideHit(origin, direction rl.Vector3) RaycastHit {
	return RaycastHit{Point: origin, Normal: scale(direction, -1)}
}

func hitAt(origin, direction rl.Vector3, t float32, normal rl.Vector3) RaycastHit {
	return RaycastHit{Point: madd(origin, direction, t), Normal: normal, Distance: t}
}

// Raycast casts a ray against every shape and returns the closest hit within
// maxDistance along with the index of the shape it struck.
func Raycast(origin, direction rl.Vector3, maxDistance float32, shapes []Shape) (RaycastHit, int, bool) {
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	index := -1
	hit := false

	for i, s := range shapes {
		if hitInfo, ok := RayShape(origin, direction, s); ok {
			if hitInfo.Distance <= closestHit.Distance {
				closestHit = hitInfo
				index = i
				hit = true
			}
		}
	}
	return closestHit, index, hit
}

// RayShape casts a ray against any shape.
func RayShape(origin, direction rl.Vector3, s Shape) (RaycastHit, bool) {
	switch v := s.(type) {
	case Point:
		return RayPoint(origin, direction, v)
	case Sphere:
		return RaySphere(origin, direction, v)
	case Capsule:
		return RayCapsule(origin, direction, v)
	case Cylinder:
		return RayCylinder(origin, direction, v)
	case Cone:
		return RayCone(origin, direction, v)
	case AABB:
		return RayAABB(origin, direction, v)
	case OBB:
		return RayOBB(origin, direction, v)
	case Triangle:
		return RayTriangle(origin, direction, v)
	case Plane:
		return RayPlane(origin, direction, v)
	case Frustum:
		return RayFrustum(origin, direction, v)
	}
	return RaycastHit{}, false
}

// RayPoint reports whether the ray passes within Epsilon of p.
func RayPoint(origin, direction rl.Vector3, p Point) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	q := ClosestPointOnRayToPoint(origin, d, p.Vector())
	if !NearlyEqual(q, p.Vector(), Epsilon) {
		return RaycastHit{}, false
	}
	return hitAt(origin, d, dot(sub(q, origin), d), scale(d, -1)), true
}

// RaySphere intersects a ray with a solid sphere.
func RaySphere(origin, direction rl.Vector3, s Sphere) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	m := sub(origin, s.Center)
	b := dot(m, d)
	c := dot(m, m) - s.Radius*s.Radius

	// Already inside
	if c <= 0 {
		return insideHit(origin, d), true
	}
	// Outside and pointing away
	if b > 0 {
		return RaycastHit{}, false
	}
	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}
	t := -b - math32.Sqrt(discriminant)
	if t < 0 {
		t = 0
	}
	point := madd(origin, d, t)
	return RaycastHit{Point: point, Normal: SafeNormalize(sub(point, s.Center)), Distance: t}, true
}

// LineSphere returns the two parameters along the normalized line direction
// where the infinite line crosses the sphere surface, t0 <= t1.
func LineSphere(origin, direction rl.Vector3, s Sphere) (t0, t1 float32, ok bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return 0, 0, false
	}
	m := sub(origin, s.Center)
	b := dot(m, d)
	c := dot(m, m) - s.Radius*s.Radius
	discriminant := b*b - c
	if discriminant < 0 {
		return 0, 0, false
	}
	root := math32.Sqrt(discriminant)
	return -b - root, -b + root, true
}

// SegmentSphere intersects segment [p, q] with a solid sphere. The hit
// distance is measured from p.
func SegmentSphere(p, q rl.Vector3, s Sphere) (RaycastHit, bool) {
	length := rl.Vector3Distance(p, q)
	if length < Epsilon {
		if s.ContainsPoint(p) {
			return RaycastHit{Point: p}, true
		}
		return RaycastHit{}, false
	}
	hit, ok := RaySphere(p, sub(q, p), s)
	if !ok || hit.Distance > length {
		return RaycastHit{}, false
	}
	return hit, true
}

// RayCapsule intersects a ray with a solid capsule: the nearer of the
// lateral surface hit and the two end sphere hits.
func RayCapsule(origin, direction rl.Vector3, c Capsule) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	if c.IsDegenerate() {
		return RaySphere(origin, d, Sphere{Center: c.P0, Radius: c.Radius})
	}
	if c.ContainsPoint(origin) {
		return insideHit(origin, d), true
	}

	var best RaycastHit
	found := false
	keep := func(h RaycastHit, ok bool) {
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}

	n := SafeNormalize(c.Axis())
	keep(rayTubeSide(origin, d, c.P0, n, rl.Vector3Distance(c.P0, c.P1), c.Radius))
	keep(RaySphere(origin, d, Sphere{Center: c.P0, Radius: c.Radius}))
	keep(RaySphere(origin, d, Sphere{Center: c.P1, Radius: c.Radius}))
	return best, found
}

// rayTubeSide returns the entry hit of a unit-direction ray on the lateral
// surface of the tube of radius r around base + n*h, h in [0, length].
func rayTubeSide(origin, d, base, n rl.Vector3, length, r float32) (RaycastHit, bool) {
	m := sub(origin, base)
	mPerp := sub(m, scale(n, dot(m, n)))
	dPerp := sub(d, scale(n, dot(d, n)))
	a := lengthSq(dPerp)
	if a < ParallelEpsilon {
		return RaycastHit{}, false
	}
	b := dot(mPerp, dPerp)
	c := lengthSq(mPerp) - r*r
	discriminant := b*b - a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}
	t := (-b - math32.Sqrt(discriminant)) / a
	if t < 0 {
		return RaycastHit{}, false
	}
	point := madd(origin, d, t)
	h := dot(sub(point, base), n)
	if h < 0 || h > length {
		return RaycastHit{}, false
	}
	normal := SafeNormalize(sub(sub(point, base), scale(n, h)))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// rayDisc returns the hit of a unit-direction ray entering the disc with
// outward normal n from its front side.
func rayDisc(origin, d, center, n rl.Vector3, r float32) (RaycastHit, bool) {
	denom := dot(d, n)
	if denom > -Epsilon {
		return RaycastHit{}, false
	}
	t := dot(sub(center, origin), n) / denom
	if t < 0 {
		return RaycastHit{}, false
	}
	point := madd(origin, d, t)
	if distanceSq(point, center) > r*r {
		return RaycastHit{}, false
	}
	return RaycastHit{Point: point, Normal: n, Distance: t}, true
}

// RayCylinder intersects a ray with a solid capped cylinder.
func RayCylinder(origin, direction rl.Vector3, c Cylinder) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	if c.IsDegenerate() {
		return RaySphere(origin, d, c.ball())
	}
	if c.ContainsPoint(origin) {
		return insideHit(origin, d), true
	}

	var best RaycastHit
	found := false
	keep := func(h RaycastHit, ok bool) {
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}

	n := c.Direction()
	keep(rayTubeSide(origin, d, c.P0, n, c.Height(), c.Radius))
	keep(rayDisc(origin, d, c.P0, scale(n, -1), c.Radius))
	keep(rayDisc(origin, d, c.P1, n, c.Radius))
	return best, found
}

// RayCone intersects a ray with a solid cone: its lateral surface and base
// disc.
func RayCone(origin, direction rl.Vector3, c Cone) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	if c.IsDegenerate() {
		return RayPoint(origin, d, Point(c.Apex))
	}
	if c.ContainsPoint(origin) {
		return insideHit(origin, d), true
	}

	var best RaycastHit
	found := false
	keep := func(h RaycastHit, ok bool) {
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}

	n := c.Direction()
	keep(rayDisc(origin, d, c.BaseCenter(), n, c.Radius))

	// Lateral surface: |x_perp|² = k²·h² with h in [0, Height].
	k := c.Radius / c.Height
	k2 := k * k
	m := sub(origin, c.Apex)
	mh, dh := dot(m, n), dot(d, n)
	mPerp := sub(m, scale(n, mh))
	dPerp := sub(d, scale(n, dh))
	a := lengthSq(dPerp) - k2*dh*dh
	b := dot(mPerp, dPerp) - k2*mh*dh
	cc := lengthSq(mPerp) - k2*mh*mh

	var roots [2]float32
	count := 0
	if math32.Abs(a) < Epsilon {
		if math32.Abs(b) > Epsilon {
			roots[0] = -cc / (2 * b)
			count = 1
		}
	} else if disc := b*b - a*cc; disc >= 0 {
		s := math32.Sqrt(disc)
		roots[0], roots[1] = (-b-s)/a, (-b+s)/a
		count = 2
	}
	slant := math32.Sqrt(c.Radius*c.Radius + c.Height*c.Height)
	for _, t := range roots[:count] {
		if t < 0 {
			continue
		}
		point := madd(origin, d, t)
		h := dot(sub(point, c.Apex), n)
		if h < 0 || h > c.Height {
			continue
		}
		radial := SafeNormalize(sub(sub(point, c.Apex), scale(n, h)))
		if IsZero(radial) {
			radial = AnyPerpendicular(n)
		}
		normal := scale(sub(scale(radial, c.Height), scale(n, c.Radius)), 1/slant)
		keep(RaycastHit{Point: point, Normal: normal, Distance: t}, true)
	}
	return best, found
}

// RayAABB intersects a ray with a box using the slab method.
func RayAABB(origin, direction rl.Vector3, box AABB) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	if box.ContainsPoint(origin) {
		return insideHit(origin, d), true
	}
	min, max := box.Min(), box.Max()

	tmin := -float32(math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	axis := -1
	for i := 0; i < 3; i++ {
		o, dir := component(origin, i), component(d, i)
		lo, hi := component(min, i), component(max, i)
		if math32.Abs(dir) < Epsilon {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / dir
		t2 := (hi - o) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}
	if tmin < 0 || axis < 0 {
		return RaycastHit{}, false
	}

	// The entry face is on the slab that set tmin, facing against the ray.
	var normal rl.Vector3
	sign := float32(1)
	if component(d, axis) > 0 {
		sign = -1
	}
	switch axis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	default:
		normal.Z = sign
	}
	return hitAt(origin, d, tmin, normal), true
}

// RayOBB intersects a ray with an oriented box by casting in the box frame.
func RayOBB(origin, direction rl.Vector3, o OBB) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	local, ok := RayAABB(o.ToLocal(origin), o.toLocalDir(d), AABB{Extents: o.Extents})
	if !ok {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Point:    o.ToWorld(local.Point),
		Normal:   madd(madd(scale(o.Axes[0], local.Normal.X), o.Axes[1], local.Normal.Y), o.Axes[2], local.Normal.Z),
		Distance: local.Distance,
	}, true
}

// IntersectsTriangleRay runs the Möller–Trumbore test. t is in units of
// direction, which need not be normalized; u and v are the weights of b and
// c. Both faces count as hits.
func IntersectsTriangleRay(origin, direction, a, b, c rl.Vector3) (t, u, v float32, ok bool) {
	e1 := sub(b, a)
	e2 := sub(c, a)
	p := cross(direction, e2)
	det := dot(e1, p)
	if det > -Epsilon && det < Epsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det
	s := sub(origin, a)
	u = dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := cross(s, e1)
	v = dot(direction, q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = dot(e2, q) * inv
	if t < 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// RayTriangle intersects a ray with a triangle from either side. The normal
// faces the incoming ray.
func RayTriangle(origin, direction rl.Vector3, tri Triangle) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	t, u, v, ok := IntersectsTriangleRay(origin, d, tri.A, tri.B, tri.C)
	if !ok {
		return RaycastHit{}, false
	}
	normal := tri.Normal()
	if dot(normal, d) > 0 {
		normal = scale(normal, -1)
	}
	hit := hitAt(origin, d, t, normal)
	hit.Barycentric = rl.Vector3{X: 1 - u - v, Y: u, Z: v}
	return hit, true
}

// RayPlane intersects a ray with a plane. A ray lying in the plane hits at
// its origin.
func RayPlane(origin, direction rl.Vector3, p Plane) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	dist := p.SignedDistance(origin)
	normal := p.Normal
	if dist < 0 {
		normal = scale(normal, -1)
	}
	if math32.Abs(dist) <= Epsilon {
		return RaycastHit{Point: origin, Normal: normal}, true
	}
	denom := dot(p.Normal, d)
	if math32.Abs(denom) < Epsilon {
		return RaycastHit{}, false
	}
	t := -dist / denom
	if t < 0 {
		return RaycastHit{}, false
	}
	return hitAt(origin, d, t, normal), true
}

// clipToFrustum clips the parametric line origin + t*d, t in [tMin, tMax],
// against all six planes. It returns the surviving range and the index of
// the plane that last raised the entry, -1 when the entry is tMin itself.
func clipToFrustum(origin, d rl.Vector3, tMin, tMax float32, f Frustum) (float32, float32, int, bool) {
	entry := -1
	for i, p := range f.Planes {
		dist := p.SignedDistance(origin)
		dn := dot(p.Normal, d)
		if math32.Abs(dn) < Epsilon {
			// Parallel to the plane and outside means a miss
			if dist < -Epsilon {
				return 0, 0, -1, false
			}
			continue
		}
		t := -dist / dn
		if dn > 0 {
			if t > tMin {
				tMin = t
				entry = i
			}
		} else if t < tMax {
			tMax = t
		}
		if tMin > tMax {
			return 0, 0, -1, false
		}
	}
	return tMin, tMax, entry, true
}

// RayFrustum intersects a ray with the frustum volume.
func RayFrustum(origin, direction rl.Vector3, f Frustum) (RaycastHit, bool) {
	d := SafeNormalize(direction)
	if IsZero(d) {
		return RaycastHit{}, false
	}
	tMin, _, entry, ok := clipToFrustum(origin, d, 0, float32(math32.MaxFloat32), f)
	if !ok {
		return RaycastHit{}, false
	}
	if entry < 0 {
		return insideHit(origin, d), true
	}
	// Inward normals, so the entry face normal points back at the ray.
	return hitAt(origin, d, tMin, scale(f.Planes[entry].Normal, -1)), true
}

// SegmentFrustum reports whether any part of segment [p, q] lies inside the
// frustum.
func SegmentFrustum(p, q rl.Vector3, f Frustum) bool {
	_, _, _, ok := clipToFrustum(p, sub(q, p), 0, 1, f)
	return ok
}
