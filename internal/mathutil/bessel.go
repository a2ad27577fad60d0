// Package mathutil provides the special functions used by the filter designer.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero.
//
// The power series I₀(x) = Σ ((x/2)^k / k!)² converges for every x; the loop
// stops once a term no longer changes the sum at double precision. Kaiser β
// values used for audio filters stay below 20, well inside the range where the
// series is accurate.
func BesselI0(x float64) float64 {
	half := x / besselHalf
	term := 1.0
	sum := 1.0

	for k := 1; k <= besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselEpsilon {
			break
		}
	}

	return sum
}

// KaiserBeta returns the Kaiser window β for a stopband attenuation in dB.
//
//   - att > 50:       β = 0.1102 (att - 8.7)
//   - 21 ≤ att ≤ 50:  β = 0.5842 (att - 21)^0.4 + 0.07886 (att - 21)
//   - att < 21:       β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}

// EstimateFilterLength returns an odd tap count that reaches attenuation dB
// with the given transition bandwidth (cycles/sample), using Kaiser's
// N ≈ (att - 8) / (2.285 · 2π · Δf).
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	n := (attenuation - kaiserLengthOffset) / (kaiserLengthMultiplier * 2 * math.Pi * transitionBW)
	taps := int(math.Ceil(n))
	if taps%2 == 0 {
		taps++
	}

	return min(max(taps, minFilterLength), maxFilterLength)
}

// Sinc returns the normalized sinc function sin(πx)/(πx).
func Sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
