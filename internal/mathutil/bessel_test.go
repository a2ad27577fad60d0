package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-pitch-adjust/internal/testutil"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"Zero", 0.0, 1.0, 1e-15},
		{"Half", 0.5, 1.063483371, 1e-8},
		{"One", 1.0, 1.266065878, 1e-8},
		{"Two", 2.0, 2.279585302, 1e-8},
		{"Five", 5.0, 27.23987182, 1e-8},
		{"Ten", 10.0, 2815.716628, 1e-8},
		{"Twenty", 20.0, 4.355828256e7, 1e-8},
		{"Negative one", -1.0, 1.266065878, 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertRelativeError(t, tt.expected, BesselI0(tt.x), tt.tolerance)
		})
	}
}

func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.25; x < 15.0; x += 0.25 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "not increasing at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	assert.InDelta(t, 0.0, KaiserBeta(15), 1e-12)
	assert.InDelta(t, 0.1102*(100-8.7), KaiserBeta(100), 1e-12)
	// Continuous enough at the 50 dB boundary for filter design.
	assert.InDelta(t, KaiserBeta(50), KaiserBeta(50.0001), 5e-2)
}

func TestEstimateFilterLength(t *testing.T) {
	taps := EstimateFilterLength(100, 0.02)
	assert.Equal(t, 1, taps%2, "tap count must be odd")
	assert.InDelta(t, 321, taps, 2)

	assert.Equal(t, minFilterLength, EstimateFilterLength(8, 0.4))
	assert.Equal(t, maxFilterLength, EstimateFilterLength(200, 1e-6))
	assert.Equal(t, EstimateFilterLength(100, defaultTransitionBW), EstimateFilterLength(100, 0))
}

func TestSinc(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(0), 1e-15)
	assert.InDelta(t, 0.0, Sinc(1), 1e-15)
	assert.InDelta(t, 0.0, Sinc(-3), 1e-15)
	assert.InDelta(t, 2/3.141592653589793, Sinc(0.5), 1e-12)
}

func BenchmarkBesselI0(b *testing.B) {
	for b.Loop() {
		_ = BesselI0(10.0)
	}
}
