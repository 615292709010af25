package acoustics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// ShoeboxAbsorption holds per-face absorption coefficients for a
// rectangular room.
type ShoeboxAbsorption struct {
	Floor, Ceiling float64
	Front, Back    float64 // walls at y=0 and y=depth
	Left, Right    float64 // walls at x=0 and x=width
}

// Uniform returns a ShoeboxAbsorption with the same coefficient on every
// face.
func Uniform(absorption float64) ShoeboxAbsorption {
	return ShoeboxAbsorption{
		Floor: absorption, Ceiling: absorption,
		Front: absorption, Back: absorption,
		Left: absorption, Right: absorption,
	}
}

// NewShoeboxRoom builds a rectangular room spanning (0,0,0) to
// (width, depth, height) meters with the same absorption on all six faces.
// This covers the common case of quick speaker-placement studies.
func NewShoeboxRoom(width, depth, height, absorption float64) (*Room, error) {
	return NewShoeboxRoomFaces(width, depth, height, Uniform(absorption))
}

// NewShoeboxRoomFaces is NewShoeboxRoom with per-face absorption, for rooms
// with e.g. a treated front wall or a carpeted floor.
func NewShoeboxRoomFaces(width, depth, height float64, faces ShoeboxAbsorption) (*Room, error) {
	if width <= 0 || depth <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: room dimensions must be positive, got %gx%gx%g",
			ErrGeometry, width, depth, height)
	}

	// Corner naming: c(x, y, z) with 0 = low coordinate, 1 = high.
	c := func(x, y, z int) r3.Vec {
		return r3.Vec{
			X: float64(x) * width,
			Y: float64(y) * depth,
			Z: float64(z) * height,
		}
	}

	surfaces := make([]Surface, 0, shoeboxFaces)
	add := func(absorption float64, verts ...r3.Vec) {
		surfaces = append(surfaces, Surface{Vertices: verts, Absorption: absorption})
	}

	add(faces.Floor, c(0, 0, 0), c(1, 0, 0), c(1, 1, 0), c(0, 1, 0))
	add(faces.Ceiling, c(0, 0, 1), c(0, 1, 1), c(1, 1, 1), c(1, 0, 1))
	add(faces.Front, c(0, 0, 0), c(0, 0, 1), c(1, 0, 1), c(1, 0, 0))
	add(faces.Back, c(0, 1, 0), c(1, 1, 0), c(1, 1, 1), c(0, 1, 1))
	add(faces.Left, c(0, 0, 0), c(0, 1, 0), c(0, 1, 1), c(0, 0, 1))
	add(faces.Right, c(1, 0, 0), c(1, 0, 1), c(1, 1, 1), c(1, 1, 0))

	return NewRoom(surfaces)
}

// LinearFrequencies returns n frequencies evenly spaced over [lo, hi] Hz,
// inclusive of both endpoints. A single-point axis samples the arithmetic
// midpoint; n < 1 yields nil.
func LinearFrequencies(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{(lo + hi) / 2}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// LogFrequencies returns n frequencies logarithmically spaced over [lo, hi]
// Hz, the usual axis for bass response plots. Both bounds must be positive.
// A single-point axis samples the geometric midpoint; n < 1 yields nil.
func LogFrequencies(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{math.Sqrt(lo * hi)}
	}
	return floats.LogSpan(make([]float64, n), lo, hi)
}
