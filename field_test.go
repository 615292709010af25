package acoustics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// listeningPlane is a coarse horizontal grid at ear height inside the test
// shoebox.
var listeningPlane = GridSpec{
	Min: r3.Vec{X: 0, Y: 0, Z: 1.2},
	Max: r3.Vec{X: 4, Y: 3, Z: 1.2},
	Nx:  16, Ny: 12, Nz: 1,
}

func TestGridSpecValidate(t *testing.T) {
	g := listeningPlane
	require.NoError(t, g.Validate())
	assert.Equal(t, 16*12, g.Cells())

	bad := g
	bad.Nz = 0
	assert.ErrorIs(t, bad.Validate(), ErrConfiguration)

	swapped := g
	swapped.Max.X = -1
	assert.ErrorIs(t, swapped.Validate(), ErrConfiguration)
}

func TestGridSpecCenter(t *testing.T) {
	g := GridSpec{Min: r3.Vec{}, Max: r3.Vec{X: 4, Y: 2, Z: 2}, Nx: 4, Ny: 2, Nz: 1}

	assert.InDelta(t, 0.5, g.Center(0, 0, 0).X, 1e-12)
	assert.InDelta(t, 3.5, g.Center(3, 0, 0).X, 1e-12)
	assert.InDelta(t, 1.5, g.Center(0, 1, 0).Y, 1e-12)
	// A single-cell axis samples the midplane.
	assert.InDelta(t, 1.0, g.Center(0, 0, 0).Z, 1e-12)
}

func TestFieldInsideRoom(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailLow)

	field, err := solver.Field(context.Background(), listeningPlane, 60)
	require.NoError(t, err)
	require.Equal(t, listeningPlane.Cells(), len(field.Magnitude))
	assert.Equal(t, 60.0, field.Frequency)

	evaluated := 0
	for i, ok := range field.Evaluated {
		if ok {
			evaluated++
			assert.False(t, math.IsNaN(field.Magnitude[i]))
			assert.GreaterOrEqual(t, field.Magnitude[i], 0.0)
		} else {
			assert.True(t, math.IsNaN(field.Magnitude[i]),
				"not-evaluated cells carry the NaN sentinel")
		}
	}
	assert.Greater(t, evaluated, listeningPlane.Cells()*9/10,
		"nearly every cell of an interior plane evaluates")
	assert.Positive(t, field.MaxMagnitude())
}

// TestFieldOutsideRoom sweeps a region entirely above the ceiling: every
// cell must be marked not evaluated.
func TestFieldOutsideRoom(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailLow)

	above := GridSpec{
		Min: r3.Vec{X: 0, Y: 0, Z: 3},
		Max: r3.Vec{X: 4, Y: 3, Z: 4},
		Nx:  8, Ny: 6, Nz: 2,
	}
	field, err := solver.Field(context.Background(), above, 60)
	require.NoError(t, err)

	for i := range field.Evaluated {
		assert.False(t, field.Evaluated[i])
		assert.True(t, math.IsNaN(field.Magnitude[i]))
	}
	assert.Equal(t, 0.0, field.MaxMagnitude())
}

// TestFieldCellAtSource verifies the degenerate source cell is skipped, not
// reported as infinite pressure, while the rest of the sweep proceeds.
func TestFieldCellAtSource(t *testing.T) {
	room := testShoebox(t, 0.2)
	// A 1-cell-aligned grid placing one cell center exactly on the source.
	grid := GridSpec{
		Min: r3.Vec{X: 0.5, Y: 0.5, Z: 1.2},
		Max: r3.Vec{X: 1.5, Y: 1.5, Z: 1.2},
		Nx:  1, Ny: 1, Nz: 1,
	}
	solver, err := New(room, Source{Position: grid.Center(0, 0, 0)}, nil)
	require.NoError(t, err)

	field, err := solver.Field(context.Background(), grid, 60)
	require.NoError(t, err)
	assert.False(t, field.Evaluated[0])
	assert.True(t, math.IsNaN(field.Magnitude[0]))
}

func TestFieldParallelMatchesSequential(t *testing.T) {
	room := testShoebox(t, 0.15)
	source := Source{Position: r3.Vec{X: 1, Y: 1, Z: 1.2}}

	seqCfg := DefaultConfig()
	seqCfg.Detail = DetailLow
	parCfg := DefaultConfig()
	parCfg.Detail = DetailLow
	parCfg.EnableParallel = true
	parCfg.Workers = 4

	seq, err := New(room, source, seqCfg)
	require.NoError(t, err)
	par, err := New(room, source, parCfg)
	require.NoError(t, err)

	a, err := seq.Field(context.Background(), listeningPlane, 80)
	require.NoError(t, err)
	b, err := par.Field(context.Background(), listeningPlane, 80)
	require.NoError(t, err)

	require.Equal(t, len(a.Magnitude), len(b.Magnitude))
	for i := range a.Magnitude {
		assert.Equal(t, a.Evaluated[i], b.Evaluated[i], "cell %d", i)
		if a.Evaluated[i] {
			// Bit-identical: slot assignment, not completion order,
			// determines the output.
			assert.Equal(t, a.Magnitude[i], b.Magnitude[i], "cell %d", i)
		}
	}
}

func TestFieldsSharedEnumeration(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailLow)

	fields, err := solver.Fields(context.Background(), listeningPlane, []float64{40, 60, 80})
	require.NoError(t, err)
	require.Len(t, fields, 3)

	single, err := solver.Field(context.Background(), listeningPlane, 60)
	require.NoError(t, err)
	for i := range single.Magnitude {
		if single.Evaluated[i] {
			assert.Equal(t, single.Magnitude[i], fields[1].Magnitude[i],
				"batched and single-frequency sweeps agree bit-exactly")
		}
	}
}

func TestFieldCancellation(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailMedium)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Field(ctx, listeningPlane, 60)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFieldRejectsBadQuery(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailLow)

	_, err := solver.Field(context.Background(), listeningPlane, -5)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = solver.Fields(context.Background(), listeningPlane, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFieldScaleBy(t *testing.T) {
	solver, _ := referenceScenario(t, 0.2, DetailQuick)

	field, err := solver.Field(context.Background(), listeningPlane, 60)
	require.NoError(t, err)

	ref := field.MaxMagnitude()
	require.Positive(t, ref)
	field.ScaleBy(1 / ref)
	assert.InDelta(t, 1.0, field.MaxMagnitude(), 1e-12)
}
