package acoustics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-room-acoustics/internal/testutil"
)

func TestImpulseResponseValidation(t *testing.T) {
	solver, listener := referenceScenario(t, 0.2, DetailQuick)

	_, err := solver.ImpulseResponse(listener, 0, 1024)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = solver.ImpulseResponse(listener, 8000, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

// TestImpulseResponseDirectArrival checks that the dominant energy arrives
// at the direct path's travel-time sample.
func TestImpulseResponseDirectArrival(t *testing.T) {
	// Heavy absorption leaves the direct arrival clearly dominant.
	solver, listener := referenceScenario(t, 0.95, DetailLow)

	const sampleRate = 8000.0
	const n = 4096
	impulse, err := solver.ImpulseResponse(listener, sampleRate, n)
	require.NoError(t, err)
	require.Len(t, impulse, n)
	testutil.AssertNoNaNOrInf(t, impulse)

	peak := 0
	for i, v := range impulse {
		if math.Abs(v) > math.Abs(impulse[peak]) {
			peak = i
		}
	}

	directDelay := math.Sqrt(5) / DefaultSpeedOfSound * sampleRate
	assert.InDelta(t, directDelay, float64(peak), 2.0,
		"direct arrival lands at distance/c seconds")
}

func TestImpulseResponseEnergyScalesWithAmplitude(t *testing.T) {
	room := testShoebox(t, 0.5)
	cfg := DefaultConfig()
	cfg.Detail = DetailQuick

	quiet, err := New(room, Source{Position: listeningPlane.Center(4, 4, 0), Amplitude: 1}, cfg)
	require.NoError(t, err)
	loud, err := New(room, Source{Position: listeningPlane.Center(4, 4, 0), Amplitude: 2}, cfg)
	require.NoError(t, err)

	l := Listener{Position: listeningPlane.Center(12, 8, 0)}
	a, err := quiet.ImpulseResponse(l, 8000, 1024)
	require.NoError(t, err)
	b, err := loud.ImpulseResponse(l, 8000, 1024)
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, 2*a[i], b[i], 1e-9, "sample %d", i)
	}
}
