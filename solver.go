package acoustics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-room-acoustics/internal/imagesource"
)

// Solver answers frequency-response and interference-field queries for one
// (room, source) pair. It is immutable after construction and safe for
// concurrent use; each query allocates its own working state.
type Solver struct {
	room   *Room
	source Source
	config Config // resolved: presets expanded into explicit bounds
}

// Path is one sound propagation path from the source to a listener.
//
// Surfaces holds the indices (into Room.Surfaces) of the reflecting
// boundaries in bounce order; an empty slice is the direct path. Points
// holds the reflection point on each surface. Length is the unfolded
// geometric path length in meters and Attenuation the accumulated product
// of (1 - absorption) over the reflections.
type Path struct {
	Surfaces    []int
	Points      []r3.Vec
	Length      float64
	Attenuation float64
}

// Order returns the number of reflections in the path; 0 is the direct path.
func (p *Path) Order() int { return len(p.Surfaces) }

// New creates a solver for the given room and source.
//
// The source must lie inside the room and config must validate; otherwise
// an error wrapping ErrConfiguration is returned. A nil config uses
// DefaultConfig. The config is copied; later changes to it do not affect
// the solver.
func New(room *Room, source Source, config *Config) (*Solver, error) {
	if room == nil {
		return nil, fmt.Errorf("%w: room is nil", ErrConfiguration)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if source.Amplitude == 0 {
		source.Amplitude = DefaultSourceAmplitude
	}
	if source.Amplitude < 0 {
		return nil, fmt.Errorf("%w: source amplitude must be positive, got %g",
			ErrConfiguration, source.Amplitude)
	}
	if !room.Contains(source.Position) {
		return nil, fmt.Errorf("%w: source position (%g, %g, %g) is outside the room",
			ErrConfiguration, source.Position.X, source.Position.Y, source.Position.Z)
	}

	return &Solver{
		room:   room,
		source: source,
		config: config.resolved(),
	}, nil
}

// Room returns the room the solver was built for.
func (s *Solver) Room() *Room { return s.room }

// Source returns the source the solver was built for.
func (s *Solver) Source() Source { return s.source }

// searchOptions translates the solver config for the enumerator.
func (s *Solver) searchOptions() imagesource.Options {
	return imagesource.Options{
		MaxOrder:    s.config.MaxOrder,
		MaxDistance: s.config.MaxDistance,
		Permissive:  s.config.Permissive,
		ParallelTol: s.config.Tolerance.Parallel,
		EdgeTol:     s.config.Tolerance.Edge,
	}
}

// checkListener rejects listener positions the solver cannot evaluate.
func (s *Solver) checkListener(pos r3.Vec) error {
	if r3.Norm(r3.Sub(pos, s.source.Position)) < s.config.Tolerance.Coincident {
		return fmt.Errorf("%w: listener coincides with the source", ErrConfiguration)
	}
	if !s.room.Contains(pos) {
		return fmt.Errorf("%w: listener position (%g, %g, %g) is outside the room",
			ErrConfiguration, pos.X, pos.Y, pos.Z)
	}
	return nil
}

// Paths enumerates the propagation paths from the source to the listener,
// sorted by ascending length with the direct path first when it is
// unoccluded. Identical inputs always yield the identical path sequence.
func (s *Solver) Paths(l Listener) ([]Path, error) {
	if err := s.checkListener(l.Position); err != nil {
		return nil, err
	}
	raw := s.room.imageScene().Paths(s.source.Position, l.Position, s.searchOptions())
	paths := make([]Path, len(raw))
	for i, p := range raw {
		paths[i] = Path{
			Surfaces:    p.Walls,
			Points:      p.Points,
			Length:      p.Length,
			Attenuation: p.Attenuation,
		}
	}
	return paths, nil
}

// Response computes the frequency response at the listener for the given
// query frequencies.
//
// Paths are enumerated once (geometry does not depend on frequency) and the
// per-path phasors are summed in path order at each frequency, so repeated
// runs produce bit-identical results. Frequencies must be non-negative; the
// slice is copied into the result.
func (s *Solver) Response(l Listener, frequencies []float64) (*FrequencyResponse, error) {
	if err := s.checkListener(l.Position); err != nil {
		return nil, err
	}
	for i, f := range frequencies {
		if f < 0 {
			return nil, fmt.Errorf("%w: frequency %d is negative (%g Hz)",
				ErrConfiguration, i, f)
		}
	}

	paths := s.room.imageScene().Paths(s.source.Position, l.Position, s.searchOptions())

	resp := &FrequencyResponse{
		Frequencies: append([]float64(nil), frequencies...),
		Pressure:    make([]complex128, len(frequencies)),
	}
	for i, f := range frequencies {
		resp.Pressure[i] = imagesource.SumContributions(
			paths, f, s.config.SpeedOfSound, s.source.Amplitude)
	}
	return resp, nil
}
