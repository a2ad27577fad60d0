package pitch

import (
	"fmt"
	"math"
)

// PercentageFromTarget converts a requested target value into the shift
// percentage consumed by SemitoneShift: target / ReferencePitch.
func PercentageFromTarget(target float64) float64 {
	return target / ReferencePitch
}

// SemitoneShift returns 12·log2(1 + percentage).
//
// It returns an error wrapping ErrDomain when 1 + percentage is not positive
// or when percentage is NaN or infinite.
func SemitoneShift(percentage float64) (float64, error) {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return 0, fmt.Errorf("%w: percentage %v is not finite", ErrDomain, percentage)
	}

	base := 1 + percentage
	if base <= 0 {
		return 0, fmt.Errorf("%w: 1 + percentage = %v must be positive", ErrDomain, base)
	}

	return SemitonesPerOctave * math.Log2(base), nil
}

// RatioFromSemitones returns the frequency ratio 2^(semitones/12).
func RatioFromSemitones(semitones float64) float64 {
	return math.Exp2(semitones / SemitonesPerOctave)
}
