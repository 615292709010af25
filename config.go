package acoustics

import (
	"errors"
	"fmt"
)

// Common errors returned by the solver.
var (
	// ErrGeometry indicates an invalid surface set: non-planar or
	// degenerate surfaces, or surfaces that do not enclose a volume.
	// It is raised at Room construction and never recovered internally.
	ErrGeometry = errors.New("invalid room geometry")

	// ErrConfiguration indicates a non-physical query: a listener
	// coincident with the source, a position outside the room, a
	// non-positive speed of sound, or a negative frequency. It is
	// reported per query so a batch sweep can skip one bad cell.
	ErrConfiguration = errors.New("invalid solver configuration")
)

// Config holds solver configuration. The zero value is not usable; start
// from DefaultConfig and adjust.
//
// A Config is copied into the Solver at construction and never mutated
// afterwards, so concurrent queries with different settings can run in
// parallel against the same Room.
type Config struct {
	// SpeedOfSound is the propagation speed in m/s.
	SpeedOfSound float64

	// Detail selects a search preset. When set to anything other than
	// DetailCustom it overrides MaxOrder and MaxDistance.
	Detail DetailPreset

	// MaxOrder is the maximum number of reflections per path.
	MaxOrder int

	// MaxDistance prunes paths longer than this many meters; their 1/r
	// contribution is negligible. Zero disables the cutoff.
	MaxDistance float64

	// Permissive keeps searching for deeper reflections below an image
	// source whose own path failed validation. The default strict policy
	// terminates such branches; see the package documentation for the
	// trade-off.
	Permissive bool

	// EnableParallel distributes grid-field evaluation across worker
	// goroutines. Output is bit-identical to the sequential evaluation
	// because each worker writes disjoint output slots.
	EnableParallel bool

	// Workers is the goroutine count for parallel field evaluation.
	// Zero means one worker per CPU.
	Workers int

	// Tolerance bundles the numeric thresholds used to classify
	// near-degenerate geometry.
	Tolerance Tolerances
}

// Tolerances are the numeric thresholds used instead of exceptions for edge
// cases: values within tolerance are treated as the degenerate case (no
// intersection, coincident points) rather than propagating near-infinite
// amplitudes.
type Tolerances struct {
	// Planar is the maximum vertex distance from a surface's fitted
	// plane, in meters.
	Planar float64

	// Parallel is the ray/plane parallelism threshold; intersections
	// with |dir·normal| below it (per unit direction) count as misses.
	Parallel float64

	// Edge is the fraction of a segment's length excluded at each end
	// during occlusion tests, so legs touching a wall do not occlude
	// themselves.
	Edge float64

	// Coincident is the minimum source/listener separation in meters.
	// Closer placements are rejected as configuration errors.
	Coincident float64
}

// DetailPreset enumerates predefined search depths.
type DetailPreset int

const (
	// DetailQuick searches first-order reflections only. Suitable for
	// interactive previews of large grids.
	DetailQuick DetailPreset = iota

	// DetailLow searches up to second-order reflections.
	DetailLow

	// DetailMedium searches up to third-order reflections, the usual
	// choice for room-mode analysis.
	DetailMedium

	// DetailHigh searches up to fourth-order reflections.
	DetailHigh

	// DetailVeryHigh searches up to sixth-order reflections. Path count
	// grows combinatorially with wall count; expect long sweeps.
	DetailVeryHigh

	// DetailCustom uses MaxOrder and MaxDistance as given.
	DetailCustom
)

// DefaultConfig returns a configuration with standard air at 20 degrees
// Celsius and medium search detail.
func DefaultConfig() *Config {
	return &Config{
		SpeedOfSound: DefaultSpeedOfSound,
		Detail:       DetailMedium,
		Tolerance: Tolerances{
			Planar:     defaultPlanarTol,
			Parallel:   defaultParallelTol,
			Edge:       defaultEdgeTol,
			Coincident: defaultCoincidentTol,
		},
	}
}

// presetOrder maps a preset to its reflection-order bound.
func presetOrder(p DetailPreset) (maxOrder int, maxDistance float64) {
	switch p {
	case DetailQuick:
		return 1, presetQuickDistance
	case DetailLow:
		return 2, presetLowDistance
	case DetailMedium:
		return 3, presetMediumDistance
	case DetailHigh:
		return 4, presetHighDistance
	case DetailVeryHigh:
		return 6, presetVeryHighDistance
	default:
		return 0, 0
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SpeedOfSound <= 0 {
		return fmt.Errorf("%w: speed of sound must be positive, got %g",
			ErrConfiguration, c.SpeedOfSound)
	}

	if c.Detail < DetailQuick || c.Detail > DetailCustom {
		return fmt.Errorf("%w: unknown detail preset %d", ErrConfiguration, c.Detail)
	}

	if c.Detail == DetailCustom {
		if c.MaxOrder < 0 {
			return fmt.Errorf("%w: max order must be non-negative, got %d",
				ErrConfiguration, c.MaxOrder)
		}
		if c.MaxDistance < 0 {
			return fmt.Errorf("%w: max distance must be non-negative, got %g",
				ErrConfiguration, c.MaxDistance)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d",
			ErrConfiguration, c.Workers)
	}

	t := c.Tolerance
	if t.Planar <= 0 || t.Parallel <= 0 || t.Edge <= 0 || t.Coincident <= 0 {
		return fmt.Errorf("%w: tolerances must be positive", ErrConfiguration)
	}

	return nil
}

// resolved returns a copy with the detail preset expanded into explicit
// order and distance bounds.
func (c *Config) resolved() Config {
	out := *c
	if out.Detail != DetailCustom {
		out.MaxOrder, out.MaxDistance = presetOrder(out.Detail)
	}
	return out
}
