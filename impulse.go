package acoustics

import (
	"fmt"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minImpulseLength is the shortest meaningful impulse response in samples.
const minImpulseLength = 2

// ImpulseResponse synthesizes the room impulse response at the listener by
// sampling the frequency response on the FFT bin grid and inverse
// transforming it.
//
// The response has n samples at the given sample rate: bin k of the
// half-spectrum corresponds to k*sampleRate/n Hz, and the inverse real FFT
// of the complex pressures yields the time-domain pressure the listener
// receives for a unit impulse emitted by the source. Reflections appear as
// delayed, attenuated copies of the direct arrival. Paths whose travel time
// exceeds n/sampleRate seconds wrap around; choose n to cover the
// configured distance cutoff.
func (s *Solver) ImpulseResponse(l Listener, sampleRate float64, n int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %g",
			ErrConfiguration, sampleRate)
	}
	if n < minImpulseLength {
		return nil, fmt.Errorf("%w: impulse length must be at least %d samples, got %d",
			ErrConfiguration, minImpulseLength, n)
	}

	fft := fourier.NewFFT(n)
	bins := n/2 + 1
	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(n)
	}

	resp, err := s.Response(l, freqs)
	if err != nil {
		return nil, err
	}

	impulse := fft.Sequence(nil, resp.Pressure)
	// gonum's inverse transform does not normalize.
	f64.Scale(impulse, impulse, 1/float64(n))
	return impulse, nil
}
