package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SegmentParameter returns the clamped parameter t in [0,1] of the point on
// segment [a,b] nearest to p. A degenerate segment returns 0.
func SegmentParameter(a, b, p rl.Vector3) float32 {
	ab := sub(b, a)
	l := lengthSq(ab)
	if l < SegmentEpsilon {
		return 0
	}
	return clampf(dot(sub(p, a), ab)/l, 0, 1)
}

// ClosestPointOnSegment returns the point on segment [a,b] nearest to p.
// When |b-a|² is below SegmentEpsilon the segment degenerates to a.
func ClosestPointOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	return madd(a, sub(b, a), SegmentParameter(a, b, p))
}

// PointSegmentDistanceSquared returns the squared distance from p to [a,b].
func PointSegmentDistanceSquared(p, a, b rl.Vector3) float32 {
	return distanceSq(p, ClosestPointOnSegment(a, b, p))
}

// ClosestPointOnLineToPoint returns the point on the infinite line through
// origin along dir nearest to p. A zero dir degenerates the line to origin.
func ClosestPointOnLineToPoint(origin, dir, p rl.Vector3) rl.Vector3 {
	l := lengthSq(dir)
	if l < SegmentEpsilon {
		return origin
	}
	return madd(origin, dir, dot(sub(p, origin), dir)/l)
}

// ClosestPointOnRayToPoint is ClosestPointOnLineToPoint restricted to t >= 0.
func ClosestPointOnRayToPoint(origin, dir, p rl.Vector3) rl.Vector3 {
	l := lengthSq(dir)
	if l < SegmentEpsilon {
		return origin
	}
	t := dot(sub(p, origin), dir) / l
	if t < 0 {
		t = 0
	}
	return madd(origin, dir, t)
}

// closestParams minimizes |(p1 + s*d1) - (p2 + t*d2)| over s in [sLo,sHi]
// and t in [tLo,tHi]. Bounds may be infinite, which covers rays and lines
// with the same derivation as finite segments. Zero-length directions
// collapse to their origin.
func closestParams(p1, d1 rl.Vector3, sLo, sHi float32, p2, d2 rl.Vector3, tLo, tHi float32) (s, t float32) {
	r := sub(p1, p2)
	a := lengthSq(d1)
	e := lengthSq(d2)
	f := dot(d2, r)

	if a < SegmentEpsilon && e < SegmentEpsilon {
		return clampf(0, sLo, sHi), clampf(0, tLo, tHi)
	}
	if a < SegmentEpsilon {
		s = clampf(0, sLo, sHi)
		t = clampf((f+dot(d2, scale(d1, s)))/e, tLo, tHi)
		return s, t
	}
	c := dot(d1, r)
	if e < SegmentEpsilon {
		t = clampf(0, tLo, tHi)
		s = clampf((dot(d1, scale(d2, t))-c)/a, sLo, sHi)
		return s, t
	}

	b := dot(d1, d2)
	denom := a*e - b*b
	if denom > ParallelEpsilon*a*e {
		s = clampf((b*f-c*e)/denom, sLo, sHi)
	} else {
		// Parallel: any s works, pick the one nearest zero.
		s = clampf(0, sLo, sHi)
	}

	t = (b*s + f) / e
	if t < tLo {
		t = tLo
		s = clampf((b*t-c)/a, sLo, sHi)
	} else if t > tHi {
		t = tHi
		s = clampf((b*t-c)/a, sLo, sHi)
	}
	return s, t
}

// ClosestPointsSegmentSegment returns the parameters s,t in [0,1] and the
// corresponding points c1 on [p1,q1] and c2 on [p2,q2] that are closest to
// each other.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 rl.Vector3) (s, t float32, c1, c2 rl.Vector3) {
	d1 := sub(q1, p1)
	d2 := sub(q2, p2)
	s, t = closestParams(p1, d1, 0, 1, p2, d2, 0, 1)
	return s, t, madd(p1, d1, s), madd(p2, d2, t)
}

// SegmentSegmentDistanceSquared returns the squared distance between the
// finite segments [p1,q1] and [p2,q2].
func SegmentSegmentDistanceSquared(p1, q1, p2, q2 rl.Vector3) float32 {
	_, _, c1, c2 := ClosestPointsSegmentSegment(p1, q1, p2, q2)
	return distanceSq(c1, c2)
}

// SegmentLineDistanceSquared returns the squared distance between segment
// [a,b] and the infinite line through origin along dir.
func SegmentLineDistanceSquared(a, b, origin, dir rl.Vector3) float32 {
	inf := math32.Inf(1)
	d1 := sub(b, a)
	s, t := closestParams(a, d1, 0, 1, origin, dir, -inf, inf)
	return distanceSq(madd(a, d1, s), madd(origin, dir, t))
}

// SegmentRayDistanceSquared returns the squared distance between segment
// [a,b] and the ray from origin along dir.
func SegmentRayDistanceSquared(a, b, origin, dir rl.Vector3) float32 {
	d1 := sub(b, a)
	s, t := closestParams(a, d1, 0, 1, origin, dir, 0, math32.Inf(1))
	return distanceSq(madd(a, d1, s), madd(origin, dir, t))
}

// LineLineDistanceSquared returns the squared distance between two infinite
// lines. Parallel lines report their constant separation.
func LineLineDistanceSquared(o1, d1, o2, d2 rl.Vector3) float32 {
	inf := math32.Inf(1)
	s, t := closestParams(o1, d1, -inf, inf, o2, d2, -inf, inf)
	return distanceSq(madd(o1, d1, s), madd(o2, d2, t))
}
