// Package geom provides the planar-polygon primitives used by the
// image-source solver: plane mirroring, segment-polygon intersection and
// point-in-polygon tests for arbitrary (possibly concave) simple polygons.
package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Validation errors returned by NewPolygon.
var (
	// ErrDegenerate indicates collinear or too few vertices.
	ErrDegenerate = errors.New("degenerate polygon")

	// ErrNonPlanar indicates a vertex lies off the fitted plane.
	ErrNonPlanar = errors.New("non-planar polygon")

	// ErrSelfIntersecting indicates the polygon outline crosses itself.
	ErrSelfIntersecting = errors.New("self-intersecting polygon")
)

// minVertices is the smallest vertex count that spans a plane.
const minVertices = 3

// Polygon is a bounded planar polygon with a precomputed plane equation and
// an in-plane 2-D projection used for containment tests. Polygons are
// immutable after construction.
type Polygon struct {
	vertices []r3.Vec
	normal   r3.Vec  // unit normal
	offset   float64 // plane equation: normal·x = offset

	// Orthonormal in-plane basis and projected outline for 2-D tests.
	u, v   r3.Vec
	flat   [][2]float64
	area   float64
	center r3.Vec
}

// NewPolygon builds a polygon from an ordered vertex loop.
//
// The vertices must be coplanar within planarTol, non-collinear, and form a
// simple (non-self-intersecting) outline. The winding order determines the
// initial normal direction; callers that need a specific orientation should
// use FlipNormal afterwards.
func NewPolygon(vertices []r3.Vec, planarTol float64) (*Polygon, error) {
	if len(vertices) < minVertices {
		return nil, fmt.Errorf("%w: need at least %d vertices, got %d",
			ErrDegenerate, minVertices, len(vertices))
	}

	verts := make([]r3.Vec, len(vertices))
	copy(verts, vertices)

	// Newell's method gives a robust normal for any simple planar loop,
	// convex or not. Its magnitude is twice the enclosed area.
	var n r3.Vec
	var center r3.Vec
	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
		center = r3.Add(center, a)
	}
	doubleArea := r3.Norm(n)
	if doubleArea <= planarTol {
		// Two distinct zero-area shapes end up here: a loop whose
		// vertices all sit on one line, and a crossing outline (bowtie)
		// whose lobes cancel each other out.
		if collinear(verts, planarTol) {
			return nil, fmt.Errorf("%w: vertices are collinear", ErrDegenerate)
		}
		return nil, fmt.Errorf("%w: outline lobes cancel to zero area", ErrSelfIntersecting)
	}
	normal := r3.Scale(1/doubleArea, n)
	center = r3.Scale(1/float64(len(verts)), center)
	offset := r3.Dot(normal, center)

	for i, p := range verts {
		if d := math.Abs(r3.Dot(normal, p) - offset); d > planarTol {
			return nil, fmt.Errorf("%w: vertex %d is %g off the plane",
				ErrNonPlanar, i, d)
		}
	}

	poly := &Polygon{
		vertices: verts,
		normal:   normal,
		offset:   offset,
		area:     doubleArea / 2,
		center:   center,
	}
	poly.project()

	if poly.selfIntersects() {
		return nil, fmt.Errorf("%w: outline edges cross", ErrSelfIntersecting)
	}

	return poly, nil
}

// collinear reports whether every vertex lies on the line through the first
// two distinct vertices.
func collinear(verts []r3.Vec, tol float64) bool {
	base := verts[0]
	var e r3.Vec
	for _, v := range verts[1:] {
		e = r3.Sub(v, base)
		if r3.Norm2(e) > 0 {
			break
		}
	}
	if r3.Norm2(e) == 0 {
		return true
	}
	e = r3.Unit(e)
	for _, v := range verts {
		if r3.Norm(r3.Cross(e, r3.Sub(v, base))) > tol {
			return false
		}
	}
	return true
}

// project builds the in-plane basis and the 2-D outline.
func (p *Polygon) project() {
	// Any sufficiently long edge serves as the first basis vector; the loop
	// is guaranteed non-degenerate at this point.
	e := r3.Sub(p.vertices[1], p.vertices[0])
	for i := 1; r3.Norm2(e) == 0 && i < len(p.vertices); i++ {
		e = r3.Sub(p.vertices[(i+1)%len(p.vertices)], p.vertices[i])
	}
	p.u = r3.Unit(r3.Sub(e, r3.Scale(r3.Dot(e, p.normal), p.normal)))
	p.v = r3.Cross(p.normal, p.u)

	p.flat = make([][2]float64, len(p.vertices))
	for i, q := range p.vertices {
		d := r3.Sub(q, p.center)
		p.flat[i] = [2]float64{r3.Dot(d, p.u), r3.Dot(d, p.v)}
	}
}

// selfIntersects reports whether any two non-adjacent outline edges cross.
// O(n^2), acceptable for the small vertex counts of room surfaces.
func (p *Polygon) selfIntersects() bool {
	n := len(p.flat)
	for i := 0; i < n; i++ {
		a1, a2 := p.flat[i], p.flat[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// Skip edges sharing a vertex with edge i.
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := p.flat[j], p.flat[(j+1)%n]
			if segmentsCross2(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsCross2 reports proper intersection of two 2-D segments.
func segmentsCross2(a1, a2, b1, b2 [2]float64) bool {
	d1 := cross2(b1, b2, a1)
	d2 := cross2(b1, b2, a2)
	d3 := cross2(a1, a2, b1)
	d4 := cross2(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// cross2 returns the z-component of (b-a) x (c-a).
func cross2(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// Vertices returns the polygon outline. The slice must not be modified.
func (p *Polygon) Vertices() []r3.Vec { return p.vertices }

// Normal returns the unit normal of the polygon's plane.
func (p *Polygon) Normal() r3.Vec { return p.normal }

// Center returns the vertex centroid, a point on the plane.
func (p *Polygon) Center() r3.Vec { return p.center }

// Area returns the enclosed area.
func (p *Polygon) Area() float64 { return p.area }

// FlipNormal reverses the normal orientation in place.
func (p *Polygon) FlipNormal() {
	p.normal = r3.Scale(-1, p.normal)
	p.offset = -p.offset
	p.project()
}

// SignedDistance returns the distance from q to the plane, positive on the
// normal side.
func (p *Polygon) SignedDistance(q r3.Vec) float64 {
	return r3.Dot(p.normal, q) - p.offset
}

// Mirror reflects q through the polygon's plane. This is the image-source
// construction step; it does not require q to project inside the outline.
func (p *Polygon) Mirror(q r3.Vec) r3.Vec {
	return r3.Sub(q, r3.Scale(2*p.SignedDistance(q), p.normal))
}

// Contains reports whether a point already on the plane projects inside the
// polygon outline. Uses the even-odd rule, so concave outlines work.
func (p *Polygon) Contains(q r3.Vec) bool {
	d := r3.Sub(q, p.center)
	return p.contains2(r3.Dot(d, p.u), r3.Dot(d, p.v))
}

func (p *Polygon) contains2(x, y float64) bool {
	inside := false
	n := len(p.flat)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.flat[i], p.flat[j]
		if (vi[1] > y) != (vj[1] > y) {
			xc := vi[0] + (y-vi[1])/(vj[1]-vi[1])*(vj[0]-vi[0])
			if x < xc {
				inside = !inside
			}
		}
	}
	return inside
}

// IntersectSegment intersects the segment a-b with the polygon.
//
// It returns the intersection point, the segment parameter t in [0, 1]
// (t=0 at a, t=1 at b), and whether a hit exists. Segments parallel to the
// plane within parallelTol report no hit, as do intersections outside the
// outline or outside the segment range. Callers needing an open range
// (occlusion tests) filter on the returned t.
func (p *Polygon) IntersectSegment(a, b r3.Vec, parallelTol float64) (r3.Vec, float64, bool) {
	dir := r3.Sub(b, a)
	denom := r3.Dot(p.normal, dir)
	if math.Abs(denom) <= parallelTol*r3.Norm(dir) {
		return r3.Vec{}, 0, false
	}
	t := (p.offset - r3.Dot(p.normal, a)) / denom
	if t < 0 || t > 1 {
		return r3.Vec{}, 0, false
	}
	hit := r3.Add(a, r3.Scale(t, dir))
	if !p.Contains(hit) {
		return r3.Vec{}, 0, false
	}
	return hit, t, true
}
