package imagesource

import "math"

// twoPi is the phase of one full wave cycle.
const twoPi = 2 * math.Pi

// Contribution evaluates one path's complex pressure phasor at the given
// frequency.
//
// The amplitude follows the spherical 1/r spreading law scaled by the source
// amplitude and the accumulated wall reflectance; the phase is the full
// travel-time rotation 2*pi*f*L/c, deliberately not reduced modulo 2*pi so
// that interference between long and short paths keeps full float64
// precision. The returned phasor is amp * exp(-i*phase).
//
// The function is pure: no state is read or written beyond its arguments,
// so it is safe to call from any number of goroutines.
func Contribution(p *Path, frequency, speedOfSound, sourceAmplitude float64) complex128 {
	phase := twoPi * frequency * p.Length / speedOfSound
	amp := sourceAmplitude * p.Attenuation / p.Length
	return complex(amp*math.Cos(phase), -amp*math.Sin(phase))
}

// SumContributions accumulates the phasors of paths at one frequency, in
// slice order. Callers must keep the path order fixed across runs to get
// bit-reproducible floating-point sums.
func SumContributions(paths []Path, frequency, speedOfSound, sourceAmplitude float64) complex128 {
	var total complex128
	for i := range paths {
		total += Contribution(&paths[i], frequency, speedOfSound, sourceAmplitude)
	}
	return total
}
