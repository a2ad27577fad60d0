package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const semitoneTolerance = 1e-9

func TestPercentageFromTarget(t *testing.T) {
	assert.InDelta(t, 0.5, PercentageFromTarget(220), semitoneTolerance)
	assert.InDelta(t, 1.0, PercentageFromTarget(440), semitoneTolerance)
	assert.InDelta(t, 0.0, PercentageFromTarget(0), semitoneTolerance)
	assert.InDelta(t, -1.0, PercentageFromTarget(-440), semitoneTolerance)
}

func TestSemitoneShift_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		semitones float64
	}{
		{"zero_target_is_identity", 0, 0},
		{"reference_is_one_octave", 440, 12},
		{"half_reference", 220, 12 * math.Log2(1.5)},
		{"three_times_reference", 1320, 24},
		{"negative_half", -220, -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SemitoneShift(PercentageFromTarget(tt.target))
			require.NoError(t, err)
			assert.InDelta(t, tt.semitones, got, semitoneTolerance)
		})
	}

	got, err := SemitoneShift(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 7.0195500086, got, 1e-9)
}

func TestSemitoneShift_Domain(t *testing.T) {
	for _, p := range []float64{-1, -1.5, -100, math.Inf(-1), math.Inf(1), math.NaN()} {
		_, err := SemitoneShift(p)
		require.ErrorIs(t, err, ErrDomain, "percentage %v", p)
	}

	_, err := SemitoneShift(PercentageFromTarget(-440))
	require.ErrorIs(t, err, ErrDomain)
}

func TestSemitoneShift_StrictlyIncreasing(t *testing.T) {
	prev := math.Inf(-1)
	for p := -0.99; p < 10; p += 0.01 {
		got, err := SemitoneShift(p)
		require.NoError(t, err)
		assert.Greater(t, got, prev, "percentage %v", p)
		prev = got
	}
}

func TestRatioFromSemitones(t *testing.T) {
	assert.InDelta(t, 1.0, RatioFromSemitones(0), semitoneTolerance)
	assert.InDelta(t, 2.0, RatioFromSemitones(12), semitoneTolerance)
	assert.InDelta(t, 0.5, RatioFromSemitones(-12), semitoneTolerance)

	// Round trip through the percentage form.
	for _, p := range []float64{-0.5, 0, 0.25, 1, 3} {
		s, err := SemitoneShift(p)
		require.NoError(t, err)
		assert.InDelta(t, 1+p, RatioFromSemitones(s), 1e-12)
	}
}
