// Package filter provides Kaiser-windowed sinc filter design for the
// resampling stage of the pitch shifter.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-adjust/internal/mathutil"
	"github.com/tphakala/go-pitch-adjust/internal/simdops"
)

const (
	minFilterTaps = 3
	maxFilterTaps = 16383

	// Nyquist in cycles/sample.
	nyquist = 0.5

	gainFloor = 1e-10
)

// KaiserWindow generates a symmetric Kaiser window of the given length.
//
//	w[n] = I₀(β·sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (N-1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}

	return window
}

// KaiserValue evaluates the continuous Kaiser window at offset d from its
// center, where halfWidth is the distance to either edge. Outside the window
// the value is 0.
func KaiserValue(d, halfWidth, beta float64) float64 {
	if halfWidth <= 0 || math.Abs(d) >= halfWidth {
		return 0
	}
	x := d / halfWidth
	return mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / mathutil.BesselI0(beta)
}

// LowPassParams holds parameters for windowed-sinc lowpass design.
type LowPassParams struct {
	// NumTaps is the filter length; odd lengths give a symmetric filter
	// centered on a sample.
	NumTaps int

	// CutoffFreq is the normalized cutoff in cycles/sample, in (0, 0.5).
	CutoffFreq float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Gain is the DC gain after normalization.
	Gain float64
}

// Validate checks that the parameters describe a realizable filter.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < minFilterTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", p.NumTaps, minFilterTaps)
	}

	if p.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", p.NumTaps, maxFilterTaps)
	}

	if p.CutoffFreq <= 0 || p.CutoffFreq >= nyquist {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.CutoffFreq)
	}

	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}

	if p.Gain <= 0 {
		return fmt.Errorf("invalid gain: %f (must be positive)", p.Gain)
	}

	return nil
}

// DesignLowPassFilter designs a linear-phase Kaiser-windowed sinc lowpass.
// The coefficients are scaled so their sum equals params.Gain.
func DesignLowPassFilter(params LowPassParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	beta := mathutil.KaiserBeta(params.Attenuation)
	window := KaiserWindow(params.NumTaps, beta)

	coeffs := make([]float64, params.NumTaps)
	center := float64(params.NumTaps-1) / 2
	twoFc := 2 * params.CutoffFreq

	for n := range params.NumTaps {
		x := float64(n) - center
		coeffs[n] = twoFc * mathutil.Sinc(twoFc*x) * window[n]
	}

	normalizeGain(coeffs, params.Gain)

	return coeffs, nil
}

// normalizeGain scales coeffs in place so that they sum to gain.
func normalizeGain(coeffs []float64, gain float64) {
	ops := simdops.Float64Ops()
	sum := ops.Sum(coeffs)
	if math.Abs(sum) > gainFloor {
		ops.Scale(coeffs, coeffs, gain/sum)
	}
}

// Response holds the magnitude response of a filter.
type Response struct {
	// Frequencies in cycles/sample, from 0 to just below Nyquist.
	Frequencies []float64

	// Magnitude is the linear magnitude at each frequency.
	Magnitude []float64
}

// FrequencyResponse evaluates the DTFT of coeffs at numPoints frequencies.
func FrequencyResponse(coeffs []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = 512
	}

	resp := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) * nyquist / float64(numPoints)
		omega := 2 * math.Pi * freq

		var re, im float64
		for n, h := range coeffs {
			re += h * math.Cos(omega*float64(n))
			im -= h * math.Sin(omega*float64(n))
		}

		resp.Frequencies[k] = freq
		resp.Magnitude[k] = math.Hypot(re, im)
	}

	return resp
}

// MagnitudeDB converts a linear magnitude to decibels, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	const minMagnitude = 1e-10
	return 20 * math.Log10(math.Max(magnitude, minMagnitude))
}
