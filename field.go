package acoustics

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-room-acoustics/internal/imagesource"
)

// GridSpec describes a regular sampling grid over an axis-aligned region.
// Samples are taken at cell centers, so a plane is expressed by setting one
// axis count to 1.
type GridSpec struct {
	// Min and Max are opposite corners of the region in meters.
	Min, Max r3.Vec

	// Nx, Ny, Nz are the cell counts along each axis; all must be >= 1.
	Nx, Ny, Nz int
}

// Validate checks the grid specification.
func (g *GridSpec) Validate() error {
	if g.Nx < 1 || g.Ny < 1 || g.Nz < 1 {
		return fmt.Errorf("%w: grid cell counts must be at least 1, got %dx%dx%d",
			ErrConfiguration, g.Nx, g.Ny, g.Nz)
	}
	if g.Max.X < g.Min.X || g.Max.Y < g.Min.Y || g.Max.Z < g.Min.Z {
		return fmt.Errorf("%w: grid max corner precedes min corner", ErrConfiguration)
	}
	return nil
}

// Cells returns the total number of grid cells.
func (g *GridSpec) Cells() int { return g.Nx * g.Ny * g.Nz }

// Center returns the position of cell (i, j, k).
func (g *GridSpec) Center(i, j, k int) r3.Vec {
	step := func(lo, hi float64, idx, n int) float64 {
		return lo + (hi-lo)*(float64(idx)+0.5)/float64(n)
	}
	return r3.Vec{
		X: step(g.Min.X, g.Max.X, i, g.Nx),
		Y: step(g.Min.Y, g.Max.Y, j, g.Ny),
		Z: step(g.Min.Z, g.Max.Z, k, g.Nz),
	}
}

// index flattens cell coordinates, x fastest.
func (g *GridSpec) index(i, j, k int) int {
	return (k*g.Ny+j)*g.Nx + i
}

// InterferenceField is the pressure-magnitude map of a room at one
// frequency. Cells outside the room (or otherwise unevaluable, such as a
// cell coincident with the source) carry NaN magnitude and a false
// Evaluated flag; consumers must treat them as "no data", not as silence.
type InterferenceField struct {
	// Grid is the sampling grid the field was computed over.
	Grid GridSpec

	// Frequency is the query frequency in Hz.
	Frequency float64

	// Magnitude holds the pressure magnitude per cell, flattened with x
	// fastest (see At). Not-evaluated cells are NaN.
	Magnitude []float64

	// Evaluated marks the cells that were actually computed.
	Evaluated []bool
}

// newInterferenceField allocates a field with every cell marked
// not-evaluated.
func newInterferenceField(grid GridSpec, frequency float64) *InterferenceField {
	f := &InterferenceField{
		Grid:      grid,
		Frequency: frequency,
		Magnitude: make([]float64, grid.Cells()),
		Evaluated: make([]bool, grid.Cells()),
	}
	for i := range f.Magnitude {
		f.Magnitude[i] = math.NaN()
	}
	return f
}

// At returns the magnitude at cell (i, j, k) and whether the cell was
// evaluated.
func (f *InterferenceField) At(i, j, k int) (float64, bool) {
	idx := f.Grid.index(i, j, k)
	return f.Magnitude[idx], f.Evaluated[idx]
}

// ScaleBy multiplies every evaluated magnitude by s, for normalizing a
// field to a reference level before display. Not-evaluated cells stay NaN.
func (f *InterferenceField) ScaleBy(s float64) {
	f64.Scale(f.Magnitude, f.Magnitude, s)
}

// MaxMagnitude returns the largest evaluated magnitude, or 0 when no cell
// was evaluated.
func (f *InterferenceField) MaxMagnitude() float64 {
	maxVal := 0.0
	for i, m := range f.Magnitude {
		if f.Evaluated[i] && m > maxVal {
			maxVal = m
		}
	}
	return maxVal
}

// Field evaluates the interference field over the grid at one frequency.
// See Fields.
func (s *Solver) Field(ctx context.Context, grid GridSpec, frequency float64) (*InterferenceField, error) {
	fields, err := s.Fields(ctx, grid, []float64{frequency})
	if err != nil {
		return nil, err
	}
	return fields[0], nil
}

// Fields evaluates interference fields over the grid for several
// frequencies at once, sharing one path enumeration per grid cell since
// path geometry does not depend on frequency.
//
// Each grid cell is an independent evaluation: cells outside the room or
// coincident with the source are marked not-evaluated and the sweep
// continues. With Config.EnableParallel set, cells are partitioned into
// disjoint contiguous chunks across worker goroutines; output slot
// assignment, not completion order, determines where results land, so the
// parallel result is bit-identical to the sequential one. Cancellation is
// checked between grid cells and surfaced as the context's error.
func (s *Solver) Fields(ctx context.Context, grid GridSpec, frequencies []float64) ([]*InterferenceField, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(frequencies) == 0 {
		return nil, fmt.Errorf("%w: no query frequencies", ErrConfiguration)
	}
	for i, f := range frequencies {
		if f < 0 {
			return nil, fmt.Errorf("%w: frequency %d is negative (%g Hz)",
				ErrConfiguration, i, f)
		}
	}

	fields := make([]*InterferenceField, len(frequencies))
	for i, f := range frequencies {
		fields[i] = newInterferenceField(grid, f)
	}

	total := grid.Cells()
	workers := 1
	if s.config.EnableParallel {
		workers = s.config.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > total {
			workers = total
		}
	}

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, total)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			s.evaluateCells(ctx, grid, frequencies, fields, lo, hi)
		}(lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// evaluateCells computes the cells in [lo, hi) and writes into the
// corresponding output slots. Runs on one worker goroutine; the slot ranges
// of different workers never overlap.
func (s *Solver) evaluateCells(ctx context.Context, grid GridSpec, frequencies []float64, fields []*InterferenceField, lo, hi int) {
	opt := s.searchOptions()
	scene := s.room.imageScene()

	for idx := lo; idx < hi; idx++ {
		if ctx.Err() != nil {
			return
		}

		i := idx % grid.Nx
		j := (idx / grid.Nx) % grid.Ny
		k := idx / (grid.Nx * grid.Ny)
		pos := grid.Center(i, j, k)

		// Out-of-room cells stay not-evaluated rather than reporting a
		// physically meaningless pressure; same for the degenerate cell
		// sitting on the source itself.
		if !s.room.Contains(pos) {
			continue
		}
		if r3.Norm(r3.Sub(pos, s.source.Position)) < s.config.Tolerance.Coincident {
			continue
		}

		paths := scene.Paths(s.source.Position, pos, opt)
		for fi, freq := range frequencies {
			z := imagesource.SumContributions(paths, freq, s.config.SpeedOfSound, s.source.Amplitude)
			fields[fi].Magnitude[idx] = cmplx.Abs(z)
			fields[fi].Evaluated[idx] = true
		}
	}
}
