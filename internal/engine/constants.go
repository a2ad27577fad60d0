package engine

// Ratio limits for a single resampling pass.
const (
	minRatio = 1.0 / 256.0
	maxRatio = 256.0
)

// Cubic (Hermite) interpolation constants.
// Formula: y = ((a*x + b)*x + c)*x + d
const (
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Nyquist in cycles/sample.
const nyquist = 0.5

// Number of fractional phases tabulated per quality level.
const (
	phasesLow      = 256
	phasesHigh     = 512
	phasesVeryHigh = 1024
)
