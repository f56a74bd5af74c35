package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "shapes": [
    {"name": "ball", "type": "sphere", "center": [0, 0, 0], "radius": 1},
    {"name": "ball2", "type": "sphere", "center": [1.5, 0, 0], "radius": 1},
    {"name": "box", "type": "aabb", "min": [2, -1, -1], "max": [4, 1, 1]},
    {"name": "pill", "type": "capsule", "p0": [0, 3, 0], "p1": [0, 5, 0], "radius": 0.5}
  ],
  "pointSets": [
    {"name": "square", "points": [[0, 0, 0], [1, 0, 0], [0, 1, 0], [1, 1, 0]]}
  ],
  "queries": [
    {"op": "intersects", "a": "ball", "b": "box", "expect": false},
    {"op": "intersects", "a": "ball", "b": "ball2", "expect": true},
    {"op": "raycast", "origin": [-5, 0, 0], "direction": [1, 0, 0], "expectShape": "ball", "expectDistance": 4},
    {"op": "bound", "points": "square", "expectRadius": 0.70710677, "expectPoint": [0.5, 0.5, 0]},
    {"op": "closest", "a": "box", "point": [0, 0, 0], "expectPoint": [2, 0, 0], "expectDistance": 2},
    {"op": "resolve", "a": "ball", "b": "ball2", "expectPoint": [-0.5, 0, 0]}
  ]
}`

const fixtureYAML = `
shapes:
  - name: ball
    type: sphere
    center: [0, 0, 0]
    radius: 1
  - name: ball2
    type: sphere
    center: [1.5, 0, 0]
    radius: 1
  - name: box
    type: aabb
    min: [2, -1, -1]
    max: [4, 1, 1]
  - name: pill
    type: capsule
    p0: [0, 3, 0]
    p1: [0, 5, 0]
    radius: 0.5
pointSets:
  - name: square
    points: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [1, 1, 0]]
queries:
  - {op: intersects, a: ball, b: box, expect: false}
  - {op: intersects, a: ball, b: ball2, expect: true}
  - {op: raycast, origin: [-5, 0, 0], direction: [1, 0, 0], expectShape: ball, expectDistance: 4}
  - {op: bound, points: square, expectRadius: 0.70710677, expectPoint: [0.5, 0.5, 0]}
  - {op: closest, a: box, point: [0, 0, 0], expectPoint: [2, 0, 0], expectDistance: 2}
  - {op: resolve, a: ball, b: ball2, expectPoint: [-0.5, 0, 0]}
`

const fixtureTOML = `
[[shapes]]
name = "ball"
type = "sphere"
center = [0.0, 0.0, 0.0]
radius = 1.0

[[shapes]]
name = "ball2"
type = "sphere"
center = [1.5, 0.0, 0.0]
radius = 1.0

[[shapes]]
name = "box"
type = "aabb"
min = [2.0, -1.0, -1.0]
max = [4.0, 1.0, 1.0]

[[shapes]]
name = "pill"
type = "capsule"
p0 = [0.0, 3.0, 0.0]
p1 = [0.0, 5.0, 0.0]
radius = 0.5

[[pointSets]]
name = "square"
points = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [0.0, 1.0, 0.0], [1.0, 1.0, 0.0]]

[[queries]]
op = "intersects"
a = "ball"
b = "box"
expect = false

[[queries]]
op = "intersects"
a = "ball"
b = "ball2"
expect = true

[[queries]]
op = "raycast"
origin = [-5.0, 0.0, 0.0]
direction = [1.0, 0.0, 0.0]
expectShape = "ball"
expectDistance = 4.0

[[queries]]
op = "bound"
points = "square"
expectRadius = 0.70710677
expectPoint = [0.5, 0.5, 0.0]

[[queries]]
op = "closest"
a = "box"
point = [0.0, 0.0, 0.0]
expectPoint = [2.0, 0.0, 0.0]
expectDistance = 2.0

[[queries]]
op = "resolve"
a = "ball"
b = "ball2"
expectPoint = [-0.5, 0.0, 0.0]
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	fixtures := map[string]string{
		"scene.json": fixtureJSON,
		"scene.yaml": fixtureYAML,
		"scene.yml":  fixtureYAML,
		"scene.toml": fixtureTOML,
	}

	var first *Scene
	for name, content := range fixtures {
		t.Run(name, func(t *testing.T) {
			s, err := Load(writeFixture(t, name, content))
			require.NoError(t, err)

			assert.Equal(t, []string{"ball", "ball2", "box", "pill"}, s.Names)
			assert.Len(t, s.Queries, 6)
			assert.Len(t, s.PointSets["square"], 4)

			ball, ok := s.Shapes["ball"].(geometry.Sphere)
			require.True(t, ok, "ball should be a sphere, got %T", s.Shapes["ball"])
			assert.Equal(t, float32(1), ball.Radius)

			box, ok := s.Shapes["box"].(geometry.AABB)
			require.True(t, ok)
			if !geometry.NearlyEqual(box.Min(), rl.Vector3{X: 2, Y: -1, Z: -1}, 1e-6) {
				t.Errorf("Expected box min (2, -1, -1), got %v", box.Min())
			}

			if first == nil {
				first = s
				return
			}
			assert.Equal(t, first.Shapes, s.Shapes, "formats should build identical shapes")
			assert.Equal(t, first.PointSets, s.PointSets)
		})
	}
}

func TestRunAllPass(t *testing.T) {
	s, err := Load(writeFixture(t, "scene.json", fixtureJSON))
	require.NoError(t, err)

	results, err := s.Run()
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, r := range results {
		assert.True(t, r.Checked, "%s should carry an expectation", r.Label)
		assert.True(t, r.Pass, "%s: %s", r.Label, r.Detail)
	}
	assert.Equal(t, "raycast * -> ball", results[2].Label)
	assert.Equal(t, "false", results[0].Value)
}

func TestRunReportsFailures(t *testing.T) {
	wrong := true
	dist := float32(3)
	s, err := New(File{
		Shapes: []ShapeDef{
			{Name: "a", Type: "sphere", Radius: 1},
			{Name: "b", Type: "sphere", Center: &Vec3{5, 0, 0}, Radius: 1},
		},
		Queries: []QueryDef{
			{Op: OpIntersects, A: "a", B: "b", Expect: &wrong},
			{Op: OpRaycast, A: "b", Origin: &Vec3{0, 0, 0}, Direction: &Vec3{1, 0, 0}, ExpectDistance: &dist},
			{Op: OpRaycast, A: "b", Origin: &Vec3{0, 0, 0}, Direction: &Vec3{-1, 0, 0}, ExpectDistance: &dist},
			{Op: OpContains, A: "a", B: "b"},
		},
	})
	require.NoError(t, err)

	results, err := s.Run()
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.False(t, results[0].Pass)
	assert.Equal(t, "expected true, got false", results[0].Detail)

	// Hit at 4, expected 3.
	assert.False(t, results[1].Pass)
	assert.Contains(t, results[1].Detail, "distance")

	assert.False(t, results[2].Pass)
	assert.Equal(t, "miss", results[2].Value)

	// No expectation: reported, not checked.
	assert.False(t, results[3].Checked)
	assert.True(t, results[3].Pass)
}

func TestTolerance(t *testing.T) {
	want := float32(4.05)
	s, err := New(File{
		Shapes: []ShapeDef{{Name: "b", Type: "sphere", Center: &Vec3{5, 0, 0}, Radius: 1}},
	})
	require.NoError(t, err)

	q := QueryDef{Op: OpRaycast, A: "b", Direction: &Vec3{1, 0, 0}, ExpectDistance: &want}
	r, err := s.Evaluate(q)
	require.NoError(t, err)
	assert.False(t, r.Pass)

	q.Tolerance = 0.1
	r, err = s.Evaluate(q)
	require.NoError(t, err)
	assert.True(t, r.Pass, r.Detail)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		file File
		want error
	}{
		{
			name: "unknown shape type",
			file: File{Shapes: []ShapeDef{{Name: "x", Type: "torus"}}},
			want: ErrUnknownShapeType,
		},
		{
			name: "duplicate shape",
			file: File{Shapes: []ShapeDef{{Name: "x", Type: "sphere"}, {Name: "x", Type: "aabb"}}},
			want: ErrDuplicateName,
		},
		{
			name: "duplicate point set",
			file: File{PointSets: []PointSetDef{{Name: "p"}, {Name: "p"}}},
			want: ErrDuplicateName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	s, err := New(File{Shapes: []ShapeDef{{Name: "a", Type: "sphere", Radius: 1}, {Name: "p", Type: "plane"}}})
	require.NoError(t, err)

	queryErrors := []struct {
		name string
		q    QueryDef
		want error
	}{
		{"unknown shape", QueryDef{Op: OpIntersects, A: "a", B: "nope"}, ErrUnknownShape},
		{"unknown point set", QueryDef{Op: OpBound, Points: "nope"}, ErrUnknownPointSet},
		{"unknown op", QueryDef{Op: "explode", A: "a"}, ErrUnknownOp},
		{"unsupported resolve", QueryDef{Op: OpResolve, A: "a", B: "p"}, ErrUnknownOp},
	}
	for _, tt := range queryErrors {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Evaluate(tt.q)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	s.Queries = []QueryDef{{Op: "explode"}}
	_, err = s.Run()
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestLoadFormatErrors(t *testing.T) {
	_, err := Load(writeFixture(t, "scene.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	// Unknown fields are rejected in every format.
	_, err = Decode([]byte(`{"shapes": [{"name": "a", "type": "sphere", "radios": 1}]}`), FormatJSON)
	assert.Error(t, err)
	_, err = Decode([]byte("shapes:\n  - name: a\n    radios: 1\n"), FormatYAML)
	assert.Error(t, err)
	_, err = Decode([]byte("[[shapes]]\nname = \"a\"\nradios = 1.0\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(nil, Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBuildShapes(t *testing.T) {
	tests := []struct {
		name string
		def  ShapeDef
		kind geometry.Kind
	}{
		{"point", ShapeDef{Type: "point", Position: &Vec3{1, 2, 3}}, geometry.KindPoint},
		{"cylinder", ShapeDef{Type: "cylinder", P1: &Vec3{0, 2, 0}, Radius: 1}, geometry.KindCylinder},
		{"cone from axis", ShapeDef{Type: "cone", Height: 2, Radius: 1}, geometry.KindCone},
		{"cone from base", ShapeDef{Type: "cone", Base: &Vec3{0, 0, 3}, Radius: 1}, geometry.KindCone},
		{"aabb from size", ShapeDef{Type: "aabb", Size: &Vec3{2, 2, 2}}, geometry.KindAABB},
		{"obb", ShapeDef{Type: "obb", Size: &Vec3{2, 1, 1}, Rotation: &Vec3{0, 45, 0}}, geometry.KindOBB},
		{"triangle", ShapeDef{Type: "triangle", B: &Vec3{1, 0, 0}, C: &Vec3{0, 1, 0}}, geometry.KindTriangle},
		{"plane from points", ShapeDef{Type: "plane", A: &Vec3{0, 0, 0}, B: &Vec3{1, 0, 0}, C: &Vec3{0, 0, -1}}, geometry.KindPlane},
		{"plane from position", ShapeDef{Type: "plane", Position: &Vec3{0, 2, 0}}, geometry.KindPlane},
		{"perspective frustum", ShapeDef{Type: "frustum", Fovy: 90, Near: 1, Far: 10}, geometry.KindFrustum},
		{"orthographic frustum", ShapeDef{Type: "frustum", Projection: "orthographic", Height: 4, Aspect: 2, Near: 1, Far: 5}, geometry.KindFrustum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
		})
	}

	cone, err := Build(ShapeDef{Type: "cone", Base: &Vec3{0, 0, 3}, Radius: 1})
	require.NoError(t, err)
	assert.InDelta(t, 3, cone.(geometry.Cone).Height, 1e-6)

	obb, err := Build(ShapeDef{Type: "obb", Extents: &Vec3{1, 2, 3}})
	require.NoError(t, err)
	if !geometry.NearlyEqual(obb.(geometry.OBB).Extents, rl.Vector3{X: 1, Y: 2, Z: 3}, 1e-6) {
		t.Errorf("Expected extents (1, 2, 3), got %v", obb.(geometry.OBB).Extents)
	}

	ortho, err := Build(ShapeDef{Type: "frustum", Projection: "Orthographic", Height: 4, Aspect: 2, Near: 1, Far: 5})
	require.NoError(t, err)
	b := ortho.(geometry.Frustum).Bounds()
	if !geometry.NearlyEqual(b.Min(), rl.Vector3{X: -4, Y: -2, Z: -5}, 1e-3) ||
		!geometry.NearlyEqual(b.Max(), rl.Vector3{X: 4, Y: 2, Z: -1}, 1e-3) {
		t.Errorf("Expected box (-4, -2, -5)..(4, 2, -1), got %v..%v", b.Min(), b.Max())
	}
}

func TestOrderedFollowsFileOrder(t *testing.T) {
	s, err := New(File{Shapes: []ShapeDef{
		{Name: "z", Type: "sphere", Radius: 1},
		{Type: "aabb", Extents: &Vec3{1, 1, 1}},
		{Name: "a", Type: "point"},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "shape1", "a"}, s.Names)
	shapes := s.Ordered()
	require.Len(t, shapes, 3)
	assert.Equal(t, geometry.KindSphere, shapes[0].Kind())
	assert.Equal(t, geometry.KindAABB, shapes[1].Kind())
	assert.Equal(t, geometry.KindPoint, shapes[2].Kind())
}
