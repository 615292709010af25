// Package testutil provides reusable test helper functions for the room
// acoustics solver tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-12
	GeometryTolerance = 1e-9
	PathTolerance     = 1e-9
	DBTolerance       = 0.01
)

// AssertVecInDelta verifies that two vectors agree component-wise.
func AssertVecInDelta(t *testing.T, expected, actual r3.Vec, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := assert.InDelta(t, expected.X, actual.X, tolerance, msgAndArgs...)
	ok = assert.InDelta(t, expected.Y, actual.Y, tolerance, msgAndArgs...) && ok
	ok = assert.InDelta(t, expected.Z, actual.Z, tolerance, msgAndArgs...) && ok
	return ok
}

// AssertComplexInDelta verifies that two complex values agree in both
// components.
func AssertComplexInDelta(t *testing.T, expected, actual complex128, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := assert.InDelta(t, real(expected), real(actual), tolerance, msgAndArgs...)
	return assert.InDelta(t, imag(expected), imag(actual), tolerance, msgAndArgs...) && ok
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSortedAscending verifies that a slice is sorted in ascending order.
func AssertSortedAscending(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not sorted",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and
// expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// MagnitudeSum returns the sum of |z| over the slice, the expected response
// magnitude at 0 Hz where no destructive interference is possible.
func MagnitudeSum(zs []complex128) float64 {
	var sum float64
	for _, z := range zs {
		sum += cmplx.Abs(z)
	}
	return sum
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}
