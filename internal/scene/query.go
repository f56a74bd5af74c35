package scene

import (
	"fmt"

	"geomkit/internal/bounds"
	"geomkit/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Query ops.
const (
	OpIntersects = "intersects"
	OpContains   = "contains"
	OpRaycast    = "raycast"
	OpClosest    = "closest"
	OpBound      = "bound"
	OpResolve    = "resolve"
)

// DefaultTolerance is used for numeric expectations that set none.
const DefaultTolerance float32 = 1e-4

// Result is the outcome of one query.
type Result struct {
	Query   QueryDef
	Label   string // short description, e.g. "intersects ball pill"
	Value   string // formatted result
	Checked bool   // the query carried at least one expectation
	Pass    bool
	Detail  string // first failed expectation, if any
}

// Run evaluates every query in file order. It stops at the first query that
// cannot be evaluated at all, such as one naming an unknown shape.
func (s *Scene) Run() ([]Result, error) {
	results := make([]Result, 0, len(s.Queries))
	for i, q := range s.Queries {
		r, err := s.Evaluate(q)
		if err != nil {
			return results, fmt.Errorf("failed to evaluate query %d (%s): %w", i, q.Op, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// checker accumulates expectation outcomes for one result.
type checker struct {
	r   *Result
	tol float32
}

func (c checker) fail(format string, args ...any) {
	if c.r.Pass {
		c.r.Detail = fmt.Sprintf(format, args...)
	}
	c.r.Pass = false
}

func (c checker) expectBool(got bool, want *bool) {
	if want == nil {
		return
	}
	c.r.Checked = true
	if got != *want {
		c.fail("expected %v, got %v", *want, got)
	}
}

func (c checker) expectScalar(name string, got float32, want *float32) {
	if want == nil {
		return
	}
	c.r.Checked = true
	if math32.Abs(got-*want) > c.tol {
		c.fail("expected %s %g, got %g", name, *want, got)
	}
}

func (c checker) expectVector(name string, got rl.Vector3, want *Vec3) {
	if want == nil {
		return
	}
	c.r.Checked = true
	if !geometry.NearlyEqual(got, want.Vector(), c.tol) {
		c.fail("expected %s %s, got %s", name, formatVec(want.Vector()), formatVec(got))
	}
}

func formatVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}

// Evaluate runs a single query.
func (s *Scene) Evaluate(q QueryDef) (Result, error) {
	r := Result{Query: q, Pass: true}
	tol := q.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	c := checker{r: &r, tol: tol}

	switch q.Op {
	case OpIntersects, OpContains:
		a, err := s.shape(q.A)
		if err != nil {
			return r, err
		}
		b, err := s.shape(q.B)
		if err != nil {
			return r, err
		}
		var got bool
		if q.Op == OpIntersects {
			got = geometry.Intersects(a, b)
		} else {
			got = geometry.Contains(a, b)
		}
		r.Label = fmt.Sprintf("%s %s %s", q.Op, q.A, q.B)
		r.Value = fmt.Sprint(got)
		c.expectBool(got, q.Expect)

	case OpRaycast:
		origin := vecOr(q.Origin, zero)
		dir := vecOr(q.Direction, rl.Vector3{Z: 1})
		maxDistance := float32(math32.MaxFloat32)
		if q.MaxDistance != nil {
			maxDistance = *q.MaxDistance
		}
		var hit geometry.RaycastHit
		var ok bool
		name := q.A
		if q.A == "" {
			var idx int
			hit, idx, ok = geometry.Raycast(origin, dir, maxDistance, s.Ordered())
			name = "*"
			if ok {
				r.Label = fmt.Sprintf("raycast * -> %s", s.Names[idx])
			}
			if q.ExpectShape != "" {
				c.r.Checked = true
				if !ok || s.Names[idx] != q.ExpectShape {
					c.fail("expected hit on %s", q.ExpectShape)
				}
			}
		} else {
			a, err := s.shape(q.A)
			if err != nil {
				return r, err
			}
			hit, ok = geometry.RayShape(origin, dir, a)
			if ok && hit.Distance > maxDistance {
				ok = false
			}
		}
		if r.Label == "" {
			r.Label = "raycast " + name
		}
		if ok {
			r.Value = fmt.Sprintf("hit t=%.4g at %s", hit.Distance, formatVec(hit.Point))
		} else {
			r.Value = "miss"
		}
		c.expectBool(ok, q.Expect)
		if q.ExpectDistance != nil && !ok {
			c.r.Checked = true
			c.fail("expected hit at %g, got miss", *q.ExpectDistance)
		} else if ok {
			c.expectScalar("distance", hit.Distance, q.ExpectDistance)
			c.expectVector("point", hit.Point, q.ExpectPoint)
		}

	case OpClosest:
		a, err := s.shape(q.A)
		if err != nil {
			return r, err
		}
		cp, ok := a.(interface {
			ClosestPoint(rl.Vector3) rl.Vector3
		})
		if !ok {
			return r, fmt.Errorf("%w: %s has no closest point", ErrUnknownOp, a.Kind())
		}
		got := cp.ClosestPoint(vecOr(q.Point, zero))
		r.Label = "closest " + q.A
		r.Value = formatVec(got)
		c.expectVector("point", got, q.ExpectPoint)
		if q.ExpectDistance != nil {
			c.expectScalar("distance", rl.Vector3Distance(got, vecOr(q.Point, zero)), q.ExpectDistance)
		}

	case OpBound:
		pts, ok := s.PointSets[q.Points]
		if !ok {
			return r, fmt.Errorf("%w: %q", ErrUnknownPointSet, q.Points)
		}
		sphere := bounds.Compute(pts)
		r.Label = "bound " + q.Points
		r.Value = fmt.Sprintf("center %s radius %.4g", formatVec(sphere.Center), sphere.Radius)
		c.expectScalar("radius", sphere.Radius, q.ExpectRadius)
		c.expectVector("center", sphere.Center, q.ExpectPoint)

	case OpResolve:
		a, err := s.shape(q.A)
		if err != nil {
			return r, err
		}
		b, err := s.shape(q.B)
		if err != nil {
			return r, err
		}
		mtv, ok := geometry.Resolve(a, b)
		if !ok {
			return r, fmt.Errorf("%w: resolve %s against %s", ErrUnknownOp, a.Kind(), b.Kind())
		}
		r.Label = fmt.Sprintf("resolve %s %s", q.A, q.B)
		r.Value = formatVec(mtv)
		c.expectVector("push", mtv, q.ExpectPoint)
		c.expectScalar("depth", rl.Vector3Length(mtv), q.ExpectDistance)

	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownOp, q.Op)
	}
	return r, nil
}
