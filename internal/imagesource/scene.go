// Package imagesource implements the image-source reflection-path search and
// the per-path frequency-domain contribution evaluator. It operates on an
// already validated set of reflecting walls; room-level validation lives in
// the public package.
package imagesource

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-room-acoustics/internal/geom"
)

// Wall is a reflecting boundary: a polygon plus the amplitude fraction that
// survives one reflection off it (1 - absorption).
type Wall struct {
	Poly        *geom.Polygon
	Reflectance float64
}

// Scene is the immutable wall set shared by all queries. A Scene is safe for
// concurrent use; the search allocates all mutable state per call.
type Scene struct {
	walls []Wall
}

// NewScene wraps the wall set. The slice is retained and must not change.
func NewScene(walls []Wall) *Scene {
	return &Scene{walls: walls}
}

// Walls returns the wall set. The slice must not be modified.
func (s *Scene) Walls() []Wall { return s.walls }

// Occluded reports whether any wall blocks the open segment a-b. Hits at the
// segment endpoints are ignored (within edgeTol of either end), so legs that
// start or finish on a wall do not occlude themselves.
func (s *Scene) Occluded(a, b r3.Vec, parallelTol, edgeTol float64) bool {
	for i := range s.walls {
		_, t, ok := s.walls[i].Poly.IntersectSegment(a, b, parallelTol)
		if ok && t > edgeTol && t < 1-edgeTol {
			return true
		}
	}
	return false
}
