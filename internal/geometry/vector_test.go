package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func vec(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func TestSafeNormalize(t *testing.T) {
	n := SafeNormalize(vec(3, 4, 0))
	if !NearlyEqual(n, vec(0.6, 0.8, 0), 1e-6) {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", n)
	}

	if z := SafeNormalize(vec(0, 0, 0)); z != (rl.Vector3{}) {
		t.Errorf("Expected zero vector for zero input, got %v", z)
	}
	if z := SafeNormalize(vec(1e-8, 0, 0)); z != (rl.Vector3{}) {
		t.Errorf("Expected zero vector below Epsilon, got %v", z)
	}
}

func TestAnyPerpendicular(t *testing.T) {
	inputs := []rl.Vector3{
		vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1),
		vec(1, 1, 1), vec(-3, 0.5, 2), vec(0, 0, -7),
	}
	for _, v := range inputs {
		p := AnyPerpendicular(v)
		if d := math32.Abs(dot(p, SafeNormalize(v))); d > 1e-5 {
			t.Errorf("AnyPerpendicular(%v) = %v is not perpendicular (dot %g)", v, p, d)
		}
		if l := rl.Vector3Length(p); math32.Abs(l-1) > 1e-5 {
			t.Errorf("AnyPerpendicular(%v) has length %g, want 1", v, l)
		}
	}

	if p := AnyPerpendicular(rl.Vector3{}); p != vecX {
		t.Errorf("Expected X axis for zero input, got %v", p)
	}
}

func TestProject(t *testing.T) {
	v := vec(2, 3, 4)
	if p := Project(v, vec(0, 5, 0)); !NearlyEqual(p, vec(0, 3, 0), 1e-6) {
		t.Errorf("Expected (0, 3, 0), got %v", p)
	}
	if p := ProjectOnPlane(v, vec(0, 1, 0)); !NearlyEqual(p, vec(2, 0, 4), 1e-6) {
		t.Errorf("Expected (2, 0, 4), got %v", p)
	}
	if p := Project(v, rl.Vector3{}); p != (rl.Vector3{}) {
		t.Errorf("Expected zero projection onto zero vector, got %v", p)
	}
}

func TestPerpendicularLength(t *testing.T) {
	if l := perpendicularLength(vec(3, 4, 0), vecX); math32.Abs(l-4) > 1e-6 {
		t.Errorf("Expected 4, got %g", l)
	}
	if l := perpendicularLength(vec(2, 0, 0), vecX); l != 0 {
		t.Errorf("Expected 0 for a parallel vector, got %g", l)
	}
}
