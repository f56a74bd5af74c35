package bounds

import (
	"math/rand/v2"
	"testing"

	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestExpandToInclude(t *testing.T) {
	s := geometry.NewSphere(vec(0, 0, 0), 1)

	grown := ExpandToInclude(s, vec(3, 0, 0))
	assert.InDelta(t, 2, grown.Radius, 1e-6)
	if !geometry.NearlyEqual(grown.Center, vec(1, 0, 0), 1e-6) {
		t.Errorf("Expected center (1, 0, 0), got %v", grown.Center)
	}
	assert.True(t, grown.ContainsSphere(s), "grown sphere must still hold the original")

	// Input is a value; the original sphere is untouched.
	assert.Equal(t, geometry.NewSphere(vec(0, 0, 0), 1), s)

	same := ExpandToInclude(s, vec(0.5, 0.5, 0))
	assert.Equal(t, s, same, "points inside leave the sphere unchanged")
}

func TestExpandToIncludeSphere(t *testing.T) {
	tests := []struct {
		name   string
		a, b   geometry.Sphere
		center rl.Vector3
		radius float32
	}{
		{"disjoint", geometry.NewSphere(vec(0, 0, 0), 1), geometry.NewSphere(vec(4, 0, 0), 1), vec(2, 0, 0), 3},
		{"b inside a", geometry.NewSphere(vec(0, 0, 0), 5), geometry.NewSphere(vec(1, 0, 0), 1), vec(0, 0, 0), 5},
		{"a inside b", geometry.NewSphere(vec(0, 1, 0), 1), geometry.NewSphere(vec(0, 0, 0), 4), vec(0, 0, 0), 4},
		{"overlapping", geometry.NewSphere(vec(0, 0, 0), 2), geometry.NewSphere(vec(0, 0, 2), 1), vec(0, 0, 0.5), 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ExpandToIncludeSphere(tt.a, tt.b)
			assert.InDelta(t, tt.radius, s.Radius, 1e-5)
			if !geometry.NearlyEqual(s.Center, tt.center, 1e-5) {
				t.Errorf("Expected center %v, got %v", tt.center, s.Center)
			}
		})
	}
}

func TestAABBFromPoints(t *testing.T) {
	box := AABBFromPoints([]rl.Vector3{vec(1, -2, 3), vec(-1, 4, 0), vec(0, 0, 5)})
	if !geometry.NearlyEqual(box.Min(), vec(-1, -2, 0), 1e-6) {
		t.Errorf("Expected min (-1, -2, 0), got %v", box.Min())
	}
	if !geometry.NearlyEqual(box.Max(), vec(1, 4, 5), 1e-6) {
		t.Errorf("Expected max (1, 4, 5), got %v", box.Max())
	}

	assert.Equal(t, geometry.AABB{}, AABBFromPoints(nil))
}

func TestRitterEnclosesAndBoundsWelzl(t *testing.T) {
	rng := rand.New(rand.NewPCG(41, 42))
	for trial := 0; trial < 30; trial++ {
		pts := randomCloud(rng, 2+rng.IntN(500), 20)
		r := Ritter(pts)
		w := Compute(pts)
		requireEncloses(t, r, pts)
		assert.GreaterOrEqual(t, r.Radius, w.Radius*(1-1e-4), "trial %d", trial)
	}
	assert.Equal(t, geometry.Sphere{}, Ritter(nil))
}
