package imagesource

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// fullyAbsorptive is the reflectance below which a wall cannot return any
// audible energy; such walls are never mirrored.
const fullyAbsorptive = 1e-12

// Options bounds the image-source search.
type Options struct {
	// MaxOrder is the maximum number of reflections per path.
	MaxOrder int

	// MaxDistance prunes paths whose unfolded length exceeds it. Their
	// 1/r contribution is negligible and so, in practice, is that of any
	// longer path extending them. Zero disables the cutoff.
	MaxDistance float64

	// Permissive keeps mirroring from image sources whose own path failed
	// the reflection-point or occlusion checks. The default (strict) stops
	// the branch: a reflection that does not exist cannot feed a deeper
	// one. Permissive search recovers a few paths in strongly concave
	// rooms at extra cost.
	Permissive bool

	// ParallelTol is the ray/plane parallelism threshold.
	ParallelTol float64

	// EdgeTol is the open-interval margin for occlusion tests, as a
	// fraction of segment length.
	EdgeTol float64
}

// Path is one propagation path from source to listener.
//
// Walls holds the reflecting wall indices in bounce order; empty means the
// direct path. Points holds the reflection point on each wall. Length is the
// unfolded geometric length and Attenuation the product of wall reflectances.
type Path struct {
	Walls       []int
	Points      []r3.Vec
	Length      float64
	Attenuation float64
}

// Order returns the number of reflections in the path.
func (p *Path) Order() int { return len(p.Walls) }

// searchState is one node of the explicit work stack: a chain of mirrored
// images and the walls that produced it. Using a stack instead of recursion
// keeps termination bookkeeping simple for large orders.
type searchState struct {
	walls  []int
	images []r3.Vec // images[0] is the real source; len = len(walls)+1
}

// Paths enumerates every valid propagation path from source to listener up
// to opt.MaxOrder reflections, sorted by ascending length (ties broken by
// order, then wall sequence) so results are bit-reproducible across runs.
func (s *Scene) Paths(source, listener r3.Vec, opt Options) []Path {
	var paths []Path

	// Order 0: the direct line, valid when nothing stands between the two
	// points. In a convex room this always holds; concave rooms need the
	// occlusion test.
	if !s.Occluded(source, listener, opt.ParallelTol, opt.EdgeTol) {
		length := r3.Norm(r3.Sub(listener, source))
		if opt.MaxDistance <= 0 || length <= opt.MaxDistance {
			paths = append(paths, Path{Length: length, Attenuation: 1})
		}
	}

	stack := []searchState{{images: []r3.Vec{source}}}
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Mirroring once more would exceed the order bound. Covers the
		// order-0 search, where the initial state itself sits at the bound.
		if len(state.walls) >= opt.MaxOrder {
			continue
		}

		last := -1
		if len(state.walls) > 0 {
			last = state.walls[len(state.walls)-1]
		}

		for w := range s.walls {
			// No immediate re-reflection off the same wall; the image
			// would fold back onto its parent.
			if w == last {
				continue
			}
			if s.walls[w].Reflectance <= fullyAbsorptive {
				continue
			}

			image := s.walls[w].Poly.Mirror(state.images[len(state.images)-1])
			walls := append(append([]int(nil), state.walls...), w)
			images := append(append([]r3.Vec(nil), state.images...), image)

			length := r3.Norm(r3.Sub(image, listener))
			if opt.MaxDistance > 0 && length > opt.MaxDistance {
				// Too faint to matter, and extending the chain only
				// moves the image further out in practice.
				continue
			}

			points, valid := s.validate(walls, images, source, listener, opt)
			if valid {
				att := 1.0
				for _, wi := range walls {
					att *= s.walls[wi].Reflectance
				}
				paths = append(paths, Path{
					Walls:       walls,
					Points:      points,
					Length:      length,
					Attenuation: att,
				})
			}

			if len(walls) < opt.MaxOrder && (valid || opt.Permissive) {
				stack = append(stack, searchState{walls: walls, images: images})
			}
		}
	}

	sort.Slice(paths, func(i, j int) bool {
		a, b := &paths[i], &paths[j]
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		if len(a.Walls) != len(b.Walls) {
			return len(a.Walls) < len(b.Walls)
		}
		for k := range a.Walls {
			if a.Walls[k] != b.Walls[k] {
				return a.Walls[k] < b.Walls[k]
			}
		}
		return false
	})

	return paths
}

// validate back-walks the image chain from the listener, checking that each
// reflection point lands on its finite wall and that no wall occludes any
// leg. On success it returns the reflection points in bounce order.
func (s *Scene) validate(walls []int, images []r3.Vec, source, listener r3.Vec, opt Options) ([]r3.Vec, bool) {
	k := len(walls)
	points := make([]r3.Vec, k)

	// The last leg runs from the final image to the listener and must
	// pierce the last wall inside its bounds; each earlier leg repeats
	// the construction one image down.
	target := listener
	for i := k - 1; i >= 0; i-- {
		hit, _, ok := s.walls[walls[i]].Poly.IntersectSegment(images[i+1], target, opt.ParallelTol)
		if !ok {
			return nil, false
		}
		if s.Occluded(hit, target, opt.ParallelTol, opt.EdgeTol) {
			return nil, false
		}
		points[i] = hit
		target = hit
	}

	// First leg: real source to the first reflection point.
	if s.Occluded(source, target, opt.ParallelTol, opt.EdgeTol) {
		return nil, false
	}

	return points, true
}
