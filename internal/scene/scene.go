// Package scene loads shape fixture files and evaluates the queries they
// describe against the geometry kernel.
package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownShapeType  = errors.New("unknown shape type")
	ErrUnknownShape      = errors.New("unknown shape")
	ErrUnknownPointSet   = errors.New("unknown point set")
	ErrUnknownOp         = errors.New("unknown query op")
	ErrUnsupportedFormat = errors.New("unsupported fixture format")
	ErrDuplicateName     = errors.New("duplicate name")
)

// --- File types ---

// Vec3 is a vector written as a three-element list.
type Vec3 [3]float32

// Vector converts v to a raylib vector.
func (v Vec3) Vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func vecOr(v *Vec3, def rl.Vector3) rl.Vector3 {
	if v == nil {
		return def
	}
	return v.Vector()
}

type File struct {
	Shapes    []ShapeDef    `json:"shapes" yaml:"shapes" toml:"shapes"`
	PointSets []PointSetDef `json:"pointSets,omitempty" yaml:"pointSets,omitempty" toml:"pointSets,omitempty"`
	Queries   []QueryDef    `json:"queries,omitempty" yaml:"queries,omitempty" toml:"queries,omitempty"`
}

// ShapeDef describes one shape. Which fields apply depends on Type.
type ShapeDef struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`

	Center   *Vec3 `json:"center,omitempty" yaml:"center,omitempty" toml:"center,omitempty"`
	Extents  *Vec3 `json:"extents,omitempty" yaml:"extents,omitempty" toml:"extents,omitempty"`
	Size     *Vec3 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Min      *Vec3 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max      *Vec3 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Rotation *Vec3 `json:"rotation,omitempty" yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Position *Vec3 `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	P0       *Vec3 `json:"p0,omitempty" yaml:"p0,omitempty" toml:"p0,omitempty"`
	P1       *Vec3 `json:"p1,omitempty" yaml:"p1,omitempty" toml:"p1,omitempty"`
	Apex     *Vec3 `json:"apex,omitempty" yaml:"apex,omitempty" toml:"apex,omitempty"`
	Axis     *Vec3 `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	Base     *Vec3 `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	A        *Vec3 `json:"a,omitempty" yaml:"a,omitempty" toml:"a,omitempty"`
	B        *Vec3 `json:"b,omitempty" yaml:"b,omitempty" toml:"b,omitempty"`
	C        *Vec3 `json:"c,omitempty" yaml:"c,omitempty" toml:"c,omitempty"`
	Normal   *Vec3 `json:"normal,omitempty" yaml:"normal,omitempty" toml:"normal,omitempty"`
	Eye      *Vec3 `json:"eye,omitempty" yaml:"eye,omitempty" toml:"eye,omitempty"`
	Target   *Vec3 `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Up       *Vec3 `json:"up,omitempty" yaml:"up,omitempty" toml:"up,omitempty"`

	Radius     float32 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
	Height     float32 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Distance   float32 `json:"distance,omitempty" yaml:"distance,omitempty" toml:"distance,omitempty"`
	Fovy       float32 `json:"fovy,omitempty" yaml:"fovy,omitempty" toml:"fovy,omitempty"`
	Aspect     float32 `json:"aspect,omitempty" yaml:"aspect,omitempty" toml:"aspect,omitempty"`
	Near       float32 `json:"near,omitempty" yaml:"near,omitempty" toml:"near,omitempty"`
	Far        float32 `json:"far,omitempty" yaml:"far,omitempty" toml:"far,omitempty"`
	Projection string  `json:"projection,omitempty" yaml:"projection,omitempty" toml:"projection,omitempty"`
}

type PointSetDef struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Points []Vec3 `json:"points" yaml:"points" toml:"points"`
}

// QueryDef is one check to run. Expectations are optional; a query without
// any only reports its value.
type QueryDef struct {
	Op          string   `json:"op" yaml:"op" toml:"op"`
	A           string   `json:"a,omitempty" yaml:"a,omitempty" toml:"a,omitempty"`
	B           string   `json:"b,omitempty" yaml:"b,omitempty" toml:"b,omitempty"`
	Points      string   `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty"`
	Origin      *Vec3    `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
	Direction   *Vec3    `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Point       *Vec3    `json:"point,omitempty" yaml:"point,omitempty" toml:"point,omitempty"`
	MaxDistance *float32 `json:"maxDistance,omitempty" yaml:"maxDistance,omitempty" toml:"maxDistance,omitempty"`

	Expect         *bool    `json:"expect,omitempty" yaml:"expect,omitempty" toml:"expect,omitempty"`
	ExpectDistance *float32 `json:"expectDistance,omitempty" yaml:"expectDistance,omitempty" toml:"expectDistance,omitempty"`
	ExpectRadius   *float32 `json:"expectRadius,omitempty" yaml:"expectRadius,omitempty" toml:"expectRadius,omitempty"`
	ExpectPoint    *Vec3    `json:"expectPoint,omitempty" yaml:"expectPoint,omitempty" toml:"expectPoint,omitempty"`
	ExpectShape    string   `json:"expectShape,omitempty" yaml:"expectShape,omitempty" toml:"expectShape,omitempty"`
	Tolerance      float32  `json:"tolerance,omitempty" yaml:"tolerance,omitempty" toml:"tolerance,omitempty"`
}

// --- Decoding ---

// Format is a fixture encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode parses a fixture in the given format.
func Decode(data []byte, format Format) (File, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return f, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return f, fmt.Errorf("failed to parse %s fixture: %w", format, err)
	}
	return f, nil
}

// --- Loading ---

// Scene is a decoded fixture with every shape built.
type Scene struct {
	Names     []string // shape names in file order
	Shapes    map[string]geometry.Shape
	PointSets map[string][]rl.Vector3
	Queries   []QueryDef
}

// Load reads and builds the fixture at path.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(f)
}

// New builds a scene from a decoded fixture.
func New(f File) (*Scene, error) {
	s := &Scene{
		Shapes:    make(map[string]geometry.Shape, len(f.Shapes)),
		PointSets: make(map[string][]rl.Vector3, len(f.PointSets)),
		Queries:   f.Queries,
	}
	for i, def := range f.Shapes {
		if def.Name == "" {
			def.Name = fmt.Sprintf("shape%d", i)
		}
		if _, ok := s.Shapes[def.Name]; ok {
			return nil, fmt.Errorf("%w: shape %q", ErrDuplicateName, def.Name)
		}
		shape, err := Build(def)
		if err != nil {
			return nil, fmt.Errorf("failed to build shape %q: %w", def.Name, err)
		}
		s.Shapes[def.Name] = shape
		s.Names = append(s.Names, def.Name)
	}
	for _, ps := range f.PointSets {
		if _, ok := s.PointSets[ps.Name]; ok {
			return nil, fmt.Errorf("%w: point set %q", ErrDuplicateName, ps.Name)
		}
		pts := make([]rl.Vector3, len(ps.Points))
		for i, p := range ps.Points {
			pts[i] = p.Vector()
		}
		s.PointSets[ps.Name] = pts
	}
	return s, nil
}

// Ordered returns the shapes in file order.
func (s *Scene) Ordered() []geometry.Shape {
	out := make([]geometry.Shape, len(s.Names))
	for i, n := range s.Names {
		out[i] = s.Shapes[n]
	}
	return out
}

func (s *Scene) shape(name string) (geometry.Shape, error) {
	sh, ok := s.Shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return sh, nil
}

// --- Building ---

var (
	zero  = rl.Vector3{}
	unitY = rl.Vector3{Y: 1}
)

// Build converts a shape definition to a geometry shape.
func Build(def ShapeDef) (geometry.Shape, error) {
	kind, ok := geometry.ParseKind(def.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, def.Type)
	}
	center := vecOr(def.Center, zero)

	switch kind {
	case geometry.KindPoint:
		return geometry.Point(vecOr(def.Position, center)), nil

	case geometry.KindSphere:
		return geometry.NewSphere(center, def.Radius), nil

	case geometry.KindCapsule:
		return geometry.NewCapsule(vecOr(def.P0, zero), vecOr(def.P1, zero), def.Radius), nil

	case geometry.KindCylinder:
		return geometry.NewCylinder(vecOr(def.P0, zero), vecOr(def.P1, zero), def.Radius), nil

	case geometry.KindCone:
		apex := vecOr(def.Apex, zero)
		if def.Base != nil {
			return geometry.NewConeFromPoints(apex, def.Base.Vector(), def.Radius), nil
		}
		return geometry.NewCone(apex, vecOr(def.Axis, unitY), def.Height, def.Radius), nil

	case geometry.KindAABB:
		switch {
		case def.Min != nil && def.Max != nil:
			return geometry.NewAABBFromMinMax(def.Min.Vector(), def.Max.Vector()), nil
		case def.Size != nil:
			return geometry.NewAABBFromCenter(center, def.Size.Vector()), nil
		}
		return geometry.NewAABB(center, vecOr(def.Extents, zero)), nil

	case geometry.KindOBB:
		size := vecOr(def.Size, zero)
		if def.Extents != nil {
			size = rl.Vector3Scale(def.Extents.Vector(), 2)
		}
		return geometry.NewOBB(center, size, vecOr(def.Rotation, zero)), nil

	case geometry.KindTriangle:
		return geometry.NewTriangle(vecOr(def.A, zero), vecOr(def.B, zero), vecOr(def.C, zero)), nil

	case geometry.KindPlane:
		switch {
		case def.A != nil && def.B != nil && def.C != nil:
			return geometry.NewPlaneFromPoints(def.A.Vector(), def.B.Vector(), def.C.Vector()), nil
		case def.Position != nil:
			return geometry.NewPlaneFromPointNormal(def.Position.Vector(), vecOr(def.Normal, unitY)), nil
		}
		return geometry.NewPlane(vecOr(def.Normal, unitY), def.Distance), nil

	case geometry.KindFrustum:
		eye := vecOr(def.Eye, zero)
		target := vecOr(def.Target, rl.Vector3{Z: -1})
		up := vecOr(def.Up, unitY)
		aspect := def.Aspect
		if aspect == 0 {
			aspect = 1
		}
		near, far := def.Near, def.Far
		if near == 0 {
			near = 0.1
		}
		if far == 0 {
			far = 1000
		}
		if strings.EqualFold(def.Projection, "orthographic") {
			return geometry.FrustumFromOrthographic(eye, target, up, def.Height, aspect, near, far), nil
		}
		fovy := def.Fovy
		if fovy == 0 {
			fovy = 60
		}
		return geometry.FrustumFromPerspective(eye, target, up, fovy, aspect, near, far), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, def.Type)
}
