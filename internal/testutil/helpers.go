// Package testutil provides reusable signal generators and assertions for
// the pitch shifter tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// LevelToleranceDB is the allowed RMS level deviation, in decibels, for
// stretched and shifted signals.
const LevelToleranceDB = 1.0

// Minimum FFT size for EstimateFrequency; segments are zero-padded to at
// least this length for finer bin spacing.
const minEstimateFFT = 1 << 16

// GenerateSine returns n samples of a unit-amplitude sine at freq Hz.
func GenerateSine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

// GenerateChord returns the normalized sum of sines at the given frequencies.
func GenerateChord(freqs []float64, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	if len(freqs) == 0 {
		return out
	}
	for _, f := range freqs {
		for i, v := range GenerateSine(f, sampleRate, n) {
			out[i] += v / float64(len(freqs))
		}
	}
	return out
}

// RMS returns the root mean square of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// EstimateFrequency returns the frequency of the strongest spectral peak in s,
// refined by parabolic interpolation on the log magnitude.
func EstimateFrequency(s []float64, sampleRate float64) float64 {
	if len(s) < 3 {
		return 0
	}

	n := minEstimateFFT
	for n < len(s) {
		n *= 2
	}

	buf := make([]float64, n)
	copy(buf, s)
	window.Hann(buf[:len(s)])

	coeffs := fourier.NewFFT(n).Coefficients(nil, buf)

	peak := 1
	for k := 1; k < len(coeffs)-1; k++ {
		if abs(coeffs[k]) > abs(coeffs[peak]) {
			peak = k
		}
	}

	a := math.Log(abs(coeffs[peak-1]) + 1e-300)
	b := math.Log(abs(coeffs[peak]) + 1e-300)
	c := math.Log(abs(coeffs[peak+1]) + 1e-300)
	offset := 0.0
	if den := a - 2*b + c; den != 0 {
		offset = 0.5 * (a - c) / den
	}

	return (float64(peak) + offset) * sampleRate / float64(n)
}

func abs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance, withContext(msgAndArgs,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j])) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", withContext(msgAndArgs, "s[%d] is NaN", i))
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", withContext(msgAndArgs, "s[%d] is Inf", i))
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice", msgAndArgs...)
	}
	center := len(s) / 2
	for i, v := range s {
		if v > s[center] {
			return assert.Fail(t, "center is not max", withContext(msgAndArgs,
				"s[%d]=%f > center s[%d]=%f", i, v, center, s[center]))
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance, withContext(msgAndArgs,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual))
}

// AssertLevelDB verifies that the RMS of actual is within toleranceDB
// decibels of the RMS of expected.
func AssertLevelDB(t *testing.T, expected, actual []float64, toleranceDB float64, msgAndArgs ...any) bool {
	t.Helper()
	want, got := RMS(expected), RMS(actual)
	if want == 0 || got == 0 {
		return assert.Fail(t, "silent signal", withContext(msgAndArgs,
			"expected RMS %f, actual RMS %f", want, got))
	}
	diff := 20 * math.Log10(got/want)
	return assert.LessOrEqual(t, math.Abs(diff), toleranceDB, withContext(msgAndArgs,
		"level differs by %.2f dB (expected RMS %f, actual RMS %f)", diff, want, got))
}

// withContext prefixes a formatted failure detail with the caller's
// testify-style message arguments.
func withContext(msgAndArgs []any, format string, args ...any) string {
	detail := fmt.Sprintf(format, args...)
	if len(msgAndArgs) == 0 {
		return detail
	}
	var msg string
	if f, ok := msgAndArgs[0].(string); ok {
		msg = fmt.Sprintf(f, msgAndArgs[1:]...)
	} else {
		msg = fmt.Sprint(msgAndArgs...)
	}
	return msg + ": " + detail
}
