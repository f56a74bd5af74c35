package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned box stored as a center and half-size extents.
type AABB struct {
	Center  rl.Vector3
	Extents rl.Vector3
}

// NewAABB creates an AABB from a center point and half-size extents.
func NewAABB(center, extents rl.Vector3) AABB {
	return AABB{Center: center, Extents: extents}
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	return AABB{Center: center, Extents: scale(size, 0.5)}
}

// NewAABBFromMinMax creates an AABB from its minimum and maximum corners.
func NewAABBFromMinMax(min, max rl.Vector3) AABB {
	return AABB{
		Center:  rl.Vector3Lerp(min, max, 0.5),
		Extents: scale(sub(max, min), 0.5),
	}
}

// Kind implements Shape.
func (a AABB) Kind() Kind { return KindAABB }

// IsValid reports whether every extent is non-negative.
func (a AABB) IsValid() bool {
	return a.Extents.X >= 0 && a.Extents.Y >= 0 && a.Extents.Z >= 0
}

// Min returns the corner with the smallest coordinates.
func (a AABB) Min() rl.Vector3 {
	return sub(a.Center, a.Extents)
}

// Max returns the corner with the largest coordinates.
func (a AABB) Max() rl.Vector3 {
	return add(a.Center, a.Extents)
}

// Size returns the full dimensions of the box.
func (a AABB) Size() rl.Vector3 {
	return scale(a.Extents, 2)
}

// Bounds returns the box itself.
func (a AABB) Bounds() AABB {
	return a
}

// Corners returns the eight corners, bit i of the index selecting the max
// side along axis i.
func (a AABB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	min, max := a.Min(), a.Max()
	for i := range out {
		out[i] = min
		if i&1 != 0 {
			out[i].X = max.X
		}
		if i&2 != 0 {
			out[i].Y = max.Y
		}
		if i&4 != 0 {
			out[i].Z = max.Z
		}
	}
	return out
}

// Extent returns the largest value of dot(dir, x) over the box.
func (a AABB) Extent(dir rl.Vector3) float32 {
	return dot(dir, a.Center) +
		math32.Abs(dir.X)*a.Extents.X +
		math32.Abs(dir.Y)*a.Extents.Y +
		math32.Abs(dir.Z)*a.Extents.Z
}

// ContainsPoint reports whether p lies inside or on the box.
func (a AABB) ContainsPoint(p rl.Vector3) bool {
	d := sub(p, a.Center)
	return math32.Abs(d.X) <= a.Extents.X &&
		math32.Abs(d.Y) <= a.Extents.Y &&
		math32.Abs(d.Z) <= a.Extents.Z
}

// ClosestPoint returns the point of the box nearest to p.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	min, max := a.Min(), a.Max()
	return rl.Vector3{
		X: rl.Clamp(p.X, min.X, max.X),
		Y: rl.Clamp(p.Y, min.Y, max.Y),
		Z: rl.Clamp(p.Z, min.Z, max.Z),
	}
}

// Expand returns the box grown by margin on every side.
func (a AABB) Expand(margin float32) AABB {
	return AABB{Center: a.Center, Extents: add(a.Extents, rl.Vector3{X: margin, Y: margin, Z: margin})}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return NewAABBFromMinMax(rl.Vector3Min(a.Min(), b.Min()), rl.Vector3Max(a.Max(), b.Max()))
}

// ToOBB returns the box as an OBB with world axes.
func (a AABB) ToOBB() OBB {
	return OBB{Center: a.Center, Extents: a.Extents, Axes: worldAxes}
}

// IntersectsAABB reports whether the two boxes overlap (touching counts).
func (a AABB) IntersectsAABB(b AABB) bool {
	d := sub(b.Center, a.Center)
	return math32.Abs(d.X) <= a.Extents.X+b.Extents.X &&
		math32.Abs(d.Y) <= a.Extents.Y+b.Extents.Y &&
		math32.Abs(d.Z) <= a.Extents.Z+b.Extents.Z
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.IntersectsAABB(b) {
		return rl.Vector3Zero()
	}
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	// Penetration depth in each direction
	dx1 := bMax.X - aMin.X // push a in +X
	dx2 := aMax.X - bMin.X // push a in -X
	dy1 := bMax.Y - aMin.Y // push a in +Y
	dy2 := aMax.Y - bMin.Y // push a in -Y
	dz1 := bMax.Z - aMin.Z // push a in +Z
	dz2 := aMax.Z - bMin.Z // push a in -Z

	// The axis with minimum penetration is the push-out direction
	min := dx1
	result := rl.Vector3{X: dx1}
	if dx2 < min {
		min = dx2
		result = rl.Vector3{X: -dx2}
	}
	if dy1 < min {
		min = dy1
		result = rl.Vector3{Y: dy1}
	}
	if dy2 < min {
		min = dy2
		result = rl.Vector3{Y: -dy2}
	}
	if dz1 < min {
		min = dz1
		result = rl.Vector3{Z: dz1}
	}
	if dz2 < min {
		result = rl.Vector3{Z: -dz2}
	}
	return result
}
