// Package acoustics models low-frequency sound behavior inside a room using
// the image-source method, reporting where constructive and destructive
// interference occur and the resulting frequency response at chosen
// listening points.
//
// Given a room's boundary surfaces, per-surface absorption coefficients and
// a speaker position, the solver enumerates the acoustically significant
// propagation paths (the direct ray plus reflections up to a bounded
// order), evaluates each path's complex pressure contribution per
// frequency, and sums them into response curves and spatial interference
// maps. It is aimed at acousticians and audio enthusiasts planning speaker
// and room layouts before physical measurement.
//
// # Features
//
//   - Arbitrary polygonal room geometry, convex or concave, with per-surface
//     absorption; construction-time validation of planarity and closure
//   - Image-source reflection search with configurable order and distance
//     bounds, strict or permissive branch pruning
//   - Deterministic, bit-reproducible output: fixed path ordering and
//     summation order across runs and across parallel and sequential sweeps
//   - Parallel interference-field sweeps with cooperative cancellation
//   - Room impulse response synthesis via inverse FFT
//   - Shoebox-room and frequency-axis helpers for the common cases
//
// # Quick Start
//
// Compute the bass response of a rectangular room:
//
//	room, err := acoustics.NewShoeboxRoom(4, 3, 2.5, 0.15)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	solver, err := acoustics.New(room, acoustics.Source{
//	    Position: r3.Vec{X: 1, Y: 1, Z: 1.2},
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := solver.Response(
//	    acoustics.Listener{Position: r3.Vec{X: 3, Y: 2, Z: 1.2}},
//	    acoustics.LogFrequencies(20, 300, 200),
//	)
//
// Map the interference pattern over a listening plane:
//
//	field, err := solver.Field(ctx, acoustics.GridSpec{
//	    Min: r3.Vec{X: 0, Y: 0, Z: 1.2},
//	    Max: r3.Vec{X: 4, Y: 3, Z: 1.2},
//	    Nx:  200, Ny: 150, Nz: 1,
//	}, 60)
//
// Grid cells outside the room are marked not-evaluated (NaN magnitude with
// a false Evaluated flag) rather than reported as zero pressure.
//
// # Architecture
//
// The solver pipeline mirrors the physics:
//
//	Room + Source -> [Path Enumerator] -> ordered paths
//	              -> [Contribution Evaluator] (per frequency)
//	              -> FrequencyResponse (per listener)
//	              -> InterferenceField  (per grid x frequency)
//
// Path enumeration uses the image-source construction: mirroring the source
// across a wall plane turns a reflected path into a straight line, so the
// k-th order search walks a work stack of virtual sources. Each candidate
// is validated by back-walking the reflection points onto the finite wall
// polygons and checking every leg for occlusion, which makes concave rooms
// work at the cost of extra intersection tests.
//
// # Determinism
//
// Paths are returned sorted by ascending length with deterministic
// tie-breaking, and per-frequency sums always run in path order. Two runs
// with identical inputs produce bit-identical responses, which the
// regression tests rely on.
//
// # Thread Safety
//
// Room and Solver are immutable after construction and safe for concurrent
// use. Field sweeps parallelize internally when Config.EnableParallel is
// set; all other queries are synchronous pure computations.
package acoustics
