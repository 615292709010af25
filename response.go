package acoustics

import (
	"math"
	"math/cmplx"
)

// FrequencyResponse is the complex pressure at one listener over an ordered
// sequence of query frequencies. It is owned by the caller; the solver keeps
// no reference to it.
type FrequencyResponse struct {
	// Frequencies holds the query frequencies in Hz, in query order.
	Frequencies []float64

	// Pressure holds the summed complex pressure per frequency, index
	// aligned with Frequencies.
	Pressure []complex128
}

// Len returns the number of frequency samples.
func (r *FrequencyResponse) Len() int { return len(r.Frequencies) }

// Magnitude returns the pressure magnitude at sample i.
func (r *FrequencyResponse) Magnitude(i int) float64 {
	return cmplx.Abs(r.Pressure[i])
}

// MagnitudeDB returns the pressure magnitude at sample i in decibels
// relative to the given reference magnitude.
func (r *FrequencyResponse) MagnitudeDB(i int, ref float64) float64 {
	return dbPerDecade * math.Log10(cmplx.Abs(r.Pressure[i])/ref)
}

// Phase returns the pressure phase at sample i in radians, in (-pi, pi].
func (r *FrequencyResponse) Phase(i int) float64 {
	return cmplx.Phase(r.Pressure[i])
}

// Magnitudes returns the magnitude of every sample as a new slice.
func (r *FrequencyResponse) Magnitudes() []float64 {
	out := make([]float64, len(r.Pressure))
	for i, z := range r.Pressure {
		out[i] = cmplx.Abs(z)
	}
	return out
}
