package acoustics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-room-acoustics/internal/geom"
	"github.com/tphakala/go-room-acoustics/internal/imagesource"
)

// Surface describes one planar room boundary: an ordered loop of at least
// three coplanar vertices plus an absorption coefficient in [0, 1]
// (0 = perfectly reflective, 1 = fully absorptive). Vertex winding order
// does not matter; normals are oriented toward the room interior during
// Room construction.
type Surface struct {
	Vertices   []r3.Vec
	Absorption float64
}

// Room is an immutable closed set of surfaces bounding a single connected
// interior volume. Construct with NewRoom; a Room is safe for concurrent
// use by any number of solvers.
type Room struct {
	surfaces []Surface
	polys    []*geom.Polygon
	interior r3.Vec
	diagonal float64
	scene    *imagesource.Scene
}

// Source is a point emitter with a reference amplitude. A zero Amplitude is
// replaced with DefaultSourceAmplitude at solver construction.
type Source struct {
	Position  r3.Vec
	Amplitude float64
}

// Listener is a query point at which a response is requested.
type Listener struct {
	Position r3.Vec
}

// NewRoom validates and assembles the surface set into a Room.
//
// Validation fails with an error wrapping ErrGeometry when a surface is
// non-planar beyond tolerance, degenerate, self-intersecting, or when the
// surfaces do not form a closed boundary around the interior sanity point
// (the centroid of all vertices). For rooms whose vertex centroid falls
// outside the air volume, use NewRoomWithInterior.
func NewRoom(surfaces []Surface) (*Room, error) {
	interior, err := vertexCentroid(surfaces)
	if err != nil {
		return nil, err
	}
	return NewRoomWithInterior(surfaces, interior)
}

// NewRoomWithInterior is NewRoom with an explicit interior sanity point,
// needed for L-shaped and other concave rooms where the vertex centroid may
// sit inside a wall or outside the air volume.
func NewRoomWithInterior(surfaces []Surface, interior r3.Vec) (*Room, error) {
	if len(surfaces) == 0 {
		return nil, fmt.Errorf("%w: no surfaces", ErrGeometry)
	}

	r := &Room{
		surfaces: make([]Surface, len(surfaces)),
		polys:    make([]*geom.Polygon, len(surfaces)),
		interior: interior,
	}
	copy(r.surfaces, surfaces)

	for i, s := range r.surfaces {
		if s.Absorption < 0 || s.Absorption > 1 {
			return nil, fmt.Errorf("%w: surface %d absorption %g outside [0, 1]",
				ErrGeometry, i, s.Absorption)
		}
		poly, err := geom.NewPolygon(s.Vertices, defaultPlanarTol)
		if err != nil {
			return nil, fmt.Errorf("%w: surface %d: %v", ErrGeometry, i, err)
		}
		// Orient the normal toward the interior so mirror images land on
		// the far side of each wall.
		if poly.SignedDistance(interior) < 0 {
			poly.FlipNormal()
		}
		r.polys[i] = poly
	}

	r.diagonal = boundingDiagonal(r.surfaces)

	if err := r.checkClosedManifold(); err != nil {
		return nil, err
	}
	if !r.Contains(interior) {
		return nil, fmt.Errorf("%w: surfaces do not enclose the interior point (%g, %g, %g)",
			ErrGeometry, interior.X, interior.Y, interior.Z)
	}

	walls := make([]imagesource.Wall, len(r.polys))
	for i, poly := range r.polys {
		walls[i] = imagesource.Wall{
			Poly:        poly,
			Reflectance: 1 - r.surfaces[i].Absorption,
		}
	}
	r.scene = imagesource.NewScene(walls)

	return r, nil
}

// Surfaces returns the validated surface set. The slice must not be modified.
func (r *Room) Surfaces() []Surface { return r.surfaces }

// Interior returns the sanity-check interior point the room was validated
// against.
func (r *Room) Interior() r3.Vec { return r.interior }

// Contains reports whether p lies inside the room volume. It casts a ray to
// a point guaranteed to be outside the bounding box and counts boundary
// crossings; an odd count means inside. Points on a wall itself count as
// outside.
func (r *Room) Contains(p r3.Vec) bool {
	// An arbitrary irrational-ish direction avoids grazing polygon edges
	// for the axis-aligned rooms that dominate real use.
	dir := r3.Unit(r3.Vec{X: 0.5773, Y: 0.7071, Z: 0.4103})
	far := r3.Add(p, r3.Scale(2*r.diagonal+1, dir))

	crossings := 0
	for _, poly := range r.polys {
		if _, t, ok := poly.IntersectSegment(p, far, defaultParallelTol); ok && t > defaultParallelTol {
			crossings++
		}
	}
	return crossings%2 == 1
}

// imageScene exposes the reflecting wall set to the solver.
func (r *Room) imageScene() *imagesource.Scene { return r.scene }

// checkClosedManifold verifies that every polygon edge is shared by exactly
// two surfaces. Gaps (edge used once) and fins (used more than twice) both
// break the closed-boundary invariant.
func (r *Room) checkClosedManifold() error {
	type edgeKey struct{ a, b [3]int64 }
	counts := make(map[edgeKey]int)

	quantize := func(v r3.Vec) [3]int64 {
		return [3]int64{
			int64(math.Round(v.X / edgeQuantum)),
			int64(math.Round(v.Y / edgeQuantum)),
			int64(math.Round(v.Z / edgeQuantum)),
		}
	}

	for _, poly := range r.polys {
		verts := poly.Vertices()
		for i := range verts {
			a := quantize(verts[i])
			b := quantize(verts[(i+1)%len(verts)])
			// Undirected edge: order endpoints canonically.
			if b[0] < a[0] || (b[0] == a[0] && (b[1] < a[1] || (b[1] == a[1] && b[2] < a[2]))) {
				a, b = b, a
			}
			counts[edgeKey{a, b}]++
		}
	}

	for _, n := range counts {
		if n != edgeUseCount {
			return fmt.Errorf("%w: surface set is not a closed manifold (edge shared by %d surfaces, want %d)",
				ErrGeometry, n, edgeUseCount)
		}
	}
	return nil
}

// vertexCentroid averages every vertex of every surface.
func vertexCentroid(surfaces []Surface) (r3.Vec, error) {
	var sum r3.Vec
	n := 0
	for _, s := range surfaces {
		for _, v := range s.Vertices {
			sum = r3.Add(sum, v)
			n++
		}
	}
	if n == 0 {
		return r3.Vec{}, fmt.Errorf("%w: no vertices", ErrGeometry)
	}
	return r3.Scale(1/float64(n), sum), nil
}

// boundingDiagonal returns the diagonal of the axis-aligned bounding box of
// all surface vertices, used to size containment rays.
func boundingDiagonal(surfaces []Surface) float64 {
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, s := range surfaces {
		for _, v := range s.Vertices {
			lo.X = math.Min(lo.X, v.X)
			lo.Y = math.Min(lo.Y, v.Y)
			lo.Z = math.Min(lo.Z, v.Z)
			hi.X = math.Max(hi.X, v.X)
			hi.Y = math.Max(hi.Y, v.Y)
			hi.Z = math.Max(hi.Z, v.Z)
		}
	}
	return r3.Norm(r3.Sub(hi, lo))
}
