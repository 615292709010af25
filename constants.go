package acoustics

// Physical constants
const (
	// DefaultSpeedOfSound is the speed of sound in m/s in dry air at
	// 20 degrees Celsius and 1 atm.
	DefaultSpeedOfSound = 343.0

	// DefaultSourceAmplitude is the reference emission amplitude assigned
	// to a Source constructed with amplitude zero.
	DefaultSourceAmplitude = 1.0
)

// Numeric tolerance defaults
const (
	defaultPlanarTol     = 1e-6 // Vertex distance from fitted plane, meters
	defaultParallelTol   = 1e-9 // Ray/plane parallelism threshold
	defaultEdgeTol       = 1e-9 // Occlusion open-interval margin, fraction of leg
	defaultCoincidentTol = 1e-6 // Minimum source/listener separation, meters
)

// Detail preset distance cutoffs in meters. Beyond these lengths the 1/r
// amplitude drops more than 40 dB below a 1 m reference, which is under the
// visual noise floor of an interference map.
const (
	presetQuickDistance    = 50.0
	presetLowDistance      = 100.0
	presetMediumDistance   = 200.0
	presetHighDistance     = 400.0
	presetVeryHighDistance = 800.0
)

// Shoebox room construction
const (
	shoeboxFaces = 6 // Faces of a rectangular room
)

// Manifold validation
const (
	// edgeUseCount is how many surfaces must share each boundary edge for
	// the surface set to form a closed manifold.
	edgeUseCount = 2

	// edgeQuantum is the grid spacing used to merge nearly identical
	// vertices when pairing edges, in meters.
	edgeQuantum = 1e-6
)

// Field rendering
const (
	// dbPerDecade converts a log10 amplitude ratio to decibels.
	dbPerDecade = 20.0
)
