package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pitch-adjust/internal/testutil"
)

func TestSplitRatio(t *testing.T) {
	tests := []struct {
		ratio  float64
		passes int
	}{
		{1, 1},
		{2, 1},
		{1.0 / 32, 1},
		{256, 1},
		{1.0 / 200, 1},
		{300, 2},
		{1.0 / 1024, 2},
		{math.Exp2(20), 3},
	}

	for _, tt := range tests {
		factors := splitRatio(tt.ratio)
		require.Len(t, factors, tt.passes, "ratio %v", tt.ratio)

		product := 1.0
		for _, f := range factors {
			assert.GreaterOrEqual(t, f, minRatio, "ratio %v", tt.ratio)
			assert.LessOrEqual(t, f, maxRatio, "ratio %v", tt.ratio)
			product *= f
		}
		testutil.AssertRelativeError(t, tt.ratio, product, 1e-9, "ratio %v", tt.ratio)
	}
}

func TestNewCascade_InvalidRatio(t *testing.T) {
	for _, ratio := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		_, err := NewCascade(ratio, QualityLow)
		require.ErrorIs(t, err, ErrInvalidRatio, "ratio %v", ratio)
	}
}

func TestCascade_BeyondSinglePass(t *testing.T) {
	// 1/512 is rejected by a single resampler but reachable in two passes.
	_, err := NewResampler(1.0/512, QualityLow)
	require.ErrorIs(t, err, ErrInvalidRatio)

	c, err := NewCascade(1.0/512, QualityLow)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Stages())
	assert.InDelta(t, 1.0/512, c.Ratio(), 1e-15)
	assert.InDelta(t, 1/math.Sqrt(512), c.Pass(1).Ratio(), 1e-12)

	input := make([]float64, 512*64)
	for i := range input {
		input[i] = 1
	}
	out := c.Process(input)
	require.Len(t, out, 64)

	// Away from the edges the DC level passes through both stages.
	assert.InDelta(t, 1.0, out[32], 1e-3)
}

func TestCascade_SinglePassMatchesResampler(t *testing.T) {
	input := testutil.GenerateSine(1000, testRate, 4000)

	c, err := NewCascade(0.5, QualityMedium)
	require.NoError(t, err)
	r, err := NewResampler(0.5, QualityMedium)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Stages())
	assert.Equal(t, r.Process(input), c.Process(input))
}
