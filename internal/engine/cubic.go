package engine

import "math"

// cubicResample evaluates input at instants i/ratio with 4-point Catmull-Rom
// Hermite interpolation. Samples outside the input are treated as zero.
// No anti-aliasing is applied, so downsampling folds content above the new
// Nyquist back into the band.
func cubicResample(input []float64, ratio float64, outLen int) []float64 {
	out := make([]float64, outLen)
	if len(input) == 0 {
		return out
	}

	at := func(i int) float64 {
		if i < 0 || i >= len(input) {
			return 0
		}
		return input[i]
	}

	step := 1 / ratio
	for i := range out {
		t := float64(i) * step
		n0 := int(math.Floor(t))
		out[i] = hermite(at(n0-1), at(n0), at(n0+1), at(n0+2), t-float64(n0))
	}

	return out
}

// hermite interpolates between y1 and y2 at fractional position x using the
// neighbors y0 and y3 to estimate the tangents.
func hermite(y0, y1, y2, y3, x float64) float64 {
	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}
