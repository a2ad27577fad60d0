package mathutil

// Series evaluation limits for BesselI0.
const (
	besselHalf     = 2.0
	besselMaxTerms = 64
	besselEpsilon  = 1e-17
)

// Kaiser & Schafer empirical formulas.
const (
	kaiserAttHigh   = 50.0
	kaiserAttMedium = 21.0

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	kaiserLengthOffset     = 8.0
	kaiserLengthMultiplier = 2.285
)

// Filter length bounds.
const (
	minFilterLength     = 3
	maxFilterLength     = 16383
	defaultTransitionBW = 0.01
)

const sincZeroThreshold = 1e-12
