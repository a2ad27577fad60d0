package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pitch-adjust/internal/testutil"
)

const testRate = 44100.0

func TestNewResampler_InvalidRatio(t *testing.T) {
	for _, ratio := range []float64{0, -1, math.NaN(), math.Inf(1), 1.0 / 512, 512} {
		_, err := NewResampler(ratio, QualityHigh)
		require.ErrorIs(t, err, ErrInvalidRatio, "ratio %v", ratio)
	}
}

func TestNewResampler_UnknownQuality(t *testing.T) {
	_, err := NewResampler(2, Quality(42))
	assert.Error(t, err)
}

func TestResampler_OutputLength(t *testing.T) {
	tests := []struct {
		ratio float64
		in    int
		want  int
	}{
		{2, 1000, 2000},
		{0.5, 1000, 500},
		{1 / 1.5, 999, 666},
		{48000.0 / 44100.0, 44100, 48000},
	}

	for _, tt := range tests {
		r, err := NewResampler(tt.ratio, QualityMedium)
		require.NoError(t, err)
		out := r.Process(make([]float64, tt.in))
		assert.Len(t, out, tt.want, "ratio %v", tt.ratio)
		assert.Equal(t, tt.want, r.OutputLength(tt.in))
	}
}

func TestResampler_EmptyInput(t *testing.T) {
	for _, q := range []Quality{QualityQuick, QualityHigh} {
		r, err := NewResampler(0.5, q)
		require.NoError(t, err)
		assert.Empty(t, r.Process(nil))
	}
}

func TestResampler_PreservesDC(t *testing.T) {
	for _, ratio := range []float64{0.5, 0.7937, 1.26, 2} {
		r, err := NewResampler(ratio, QualityHigh)
		require.NoError(t, err)

		input := make([]float64, 4000)
		for i := range input {
			input[i] = 0.5
		}
		out := r.Process(input)

		// Skip the edges where the kernel reaches into the zero padding.
		margin := int(float64(r.FilterLength()) * ratio)
		for i := margin; i < len(out)-margin; i++ {
			require.InDelta(t, 0.5, out[i], 1e-4, "ratio %v sample %d", ratio, i)
		}
	}
}

func TestResampler_SineMatchesAnalytic(t *testing.T) {
	const freq = 1000.0

	for _, q := range []Quality{QualityLow, QualityMedium, QualityHigh, QualityVeryHigh} {
		t.Run(q.String(), func(t *testing.T) {
			ratio := 48000.0 / testRate
			r, err := NewResampler(ratio, q)
			require.NoError(t, err)

			input := testutil.GenerateSine(freq, testRate, 8820)
			out := r.Process(input)

			outRate := testRate * ratio
			margin := r.FilterLength()
			for i := margin; i < len(out)-margin; i++ {
				want := math.Sin(2 * math.Pi * freq * float64(i) / outRate)
				require.InDelta(t, want, out[i], 1e-3, "sample %d", i)
			}
		})
	}
}

func TestResampler_DownsamplingRejectsAlias(t *testing.T) {
	// 15 kHz is above the 11.025 kHz Nyquist after halving the rate.
	r, err := NewResampler(0.5, QualityHigh)
	require.NoError(t, err)

	out := r.Process(testutil.GenerateSine(15000, testRate, 22050))
	margin := r.FilterLength()
	rms := testutil.RMS(out[margin : len(out)-margin])
	assert.Less(t, rms, 1e-3)
}

func TestResampler_QuickUsesCubic(t *testing.T) {
	r, err := NewResampler(2, QualityQuick)
	require.NoError(t, err)
	assert.Equal(t, 4, r.FilterLength())
	assert.Equal(t, QualityQuick, r.Quality())
	assert.InDelta(t, 2.0, r.Ratio(), 0)

	// Hermite interpolation reproduces a linear ramp exactly away from the edges.
	input := make([]float64, 100)
	for i := range input {
		input[i] = float64(i)
	}
	out := r.Process(input)
	require.Len(t, out, 200)
	for i := 4; i < 190; i++ {
		assert.InDelta(t, float64(i)/2, out[i], 1e-9, "sample %d", i)
	}
}

func TestResampler_Kernel(t *testing.T) {
	quick, err := NewResampler(0.5, QualityQuick)
	require.NoError(t, err)
	assert.Nil(t, quick.Kernel())

	high, err := NewResampler(0.5, QualityHigh)
	require.NoError(t, err)
	bank := high.Kernel()
	require.NotNil(t, bank)
	assert.Equal(t, phasesHigh, bank.NumPhases)
	assert.Equal(t, bank.Taps, high.FilterLength())

	// Downsampling narrows the passband to the output Nyquist.
	assert.Less(t, bank.Cutoff, 0.25)
	assert.InDelta(t, 110.0, bank.Attenuation, 0)
}

func TestHermite_HitsSamplePoints(t *testing.T) {
	assert.InDelta(t, 2.0, hermite(1, 2, 3, 4, 0), 1e-12)
	assert.InDelta(t, 3.0, hermite(1, 2, 3, 4, 1), 1e-12)
	assert.InDelta(t, 2.5, hermite(1, 2, 3, 4, 0.5), 1e-12)
}

func TestQuality_String(t *testing.T) {
	assert.Equal(t, "quick", QualityQuick.String())
	assert.Equal(t, "veryhigh", QualityVeryHigh.String())
	assert.Equal(t, "quality(9)", Quality(9).String())
}

func BenchmarkResampler_Process(b *testing.B) {
	r, err := NewResampler(0.5, QualityHigh)
	require.NoError(b, err)
	input := testutil.GenerateSine(440, testRate, 44100)

	for b.Loop() {
		_ = r.Process(input)
	}
}
