package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Resolve returns the minimum translation vector that pushes a out of b for
// the pairs that have one: spheres and boxes in any combination. ok is false
// for other pairs. The vector is zero when the shapes do not overlap.
func Resolve(a, b Shape) (mtv rl.Vector3, ok bool) {
	switch x := a.(type) {
	case Sphere:
		switch y := b.(type) {
		case Sphere:
			return x.Resolve(y), true
		case AABB:
			return SphereOBBResolve(x, y.ToOBB()), true
		case OBB:
			return SphereOBBResolve(x, y), true
		}
	case AABB:
		switch y := b.(type) {
		case Sphere:
			return scale(SphereOBBResolve(y, x.ToOBB()), -1), true
		case AABB:
			return x.Resolve(y), true
		case OBB:
			return x.ToOBB().Resolve(y), true
		}
	case OBB:
		switch y := b.(type) {
		case Sphere:
			return scale(SphereOBBResolve(y, x), -1), true
		case AABB:
			return x.Resolve(y.ToOBB()), true
		case OBB:
			return x.Resolve(y), true
		}
	}
	return rl.Vector3{}, false
}

// Resolve returns the minimum translation vector to push s out of b.
// Coincident centers push along +Y.
func (s Sphere) Resolve(b Sphere) rl.Vector3 {
	diff := sub(s.Center, b.Center)
	dist := rl.Vector3Length(diff)
	minDist := s.Radius + b.Radius
	if dist >= minDist {
		return rl.Vector3Zero()
	}
	normal := vecY
	if dist >= Epsilon {
		normal = scale(diff, 1/dist)
	}
	return scale(normal, minDist-dist)
}

// SphereOBBResolve returns the minimum translation vector to push s out of
// o. When the center is inside the box the sphere leaves through the
// nearest face.
func SphereOBBResolve(s Sphere, o OBB) rl.Vector3 {
	closest := o.ClosestPoint(s.Center)
	diff := sub(s.Center, closest)
	dist := rl.Vector3Length(diff)
	if dist >= s.Radius {
		return rl.Vector3Zero()
	}
	if dist >= Epsilon {
		// Normal points from box to sphere
		return scale(diff, (s.Radius-dist)/dist)
	}

	local := o.ToLocal(s.Center)
	best := float32(math32.MaxFloat32)
	var mtv rl.Vector3
	for i := 0; i < 3; i++ {
		l := component(local, i)
		depth := component(o.Extents, i) - math32.Abs(l) + s.Radius
		if depth < best {
			best = depth
			if l < 0 {
				mtv = scale(o.Axes[i], -depth)
			} else {
				mtv = scale(o.Axes[i], depth)
			}
		}
	}
	return mtv
}
