// Package engine implements whole-buffer arbitrary-ratio resampling used to
// restore the duration of a time-stretched signal.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-adjust/internal/filter"
	"github.com/tphakala/go-pitch-adjust/internal/simdops"
)

// Quality selects the interpolation kernel.
type Quality int

const (
	// QualityQuick uses cubic Hermite interpolation with no anti-aliasing.
	QualityQuick Quality = iota
	// QualityLow uses a ~70 dB windowed-sinc kernel.
	QualityLow
	// QualityMedium uses a ~90 dB windowed-sinc kernel.
	QualityMedium
	// QualityHigh uses a ~110 dB windowed-sinc kernel.
	QualityHigh
	// QualityVeryHigh uses a ~140 dB windowed-sinc kernel.
	QualityVeryHigh
)

// String returns the lower-case preset name.
func (q Quality) String() string {
	switch q {
	case QualityQuick:
		return "quick"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityVeryHigh:
		return "veryhigh"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// kernelSpec holds filter parameters for a quality level. Passband and
// stopband edges are fractions of the lower of the two Nyquist frequencies.
type kernelSpec struct {
	attenuation   float64
	passbandEnd   float64
	stopbandBegin float64
	phases        int
}

var kernelSpecs = map[Quality]kernelSpec{
	QualityLow:      {attenuation: 70, passbandEnd: 0.80, stopbandBegin: 1.0, phases: phasesLow},
	QualityMedium:   {attenuation: 90, passbandEnd: 0.85, stopbandBegin: 0.99, phases: phasesLow},
	QualityHigh:     {attenuation: 110, passbandEnd: 0.90, stopbandBegin: 0.99, phases: phasesHigh},
	QualityVeryHigh: {attenuation: 140, passbandEnd: 0.95, stopbandBegin: 0.995, phases: phasesVeryHigh},
}

// ErrInvalidRatio is returned when the ratio is non-finite or out of range.
var ErrInvalidRatio = errors.New("invalid resampling ratio")

// Resampler converts a complete buffer by a fixed output/input ratio.
//
// The kernel is centered on each output instant, so the output is aligned
// with the input without latency. A Resampler holds only immutable tables and
// is safe for concurrent use.
type Resampler struct {
	ratio   float64
	quality Quality
	bank    *filter.FractionalBank
	ops     *simdops.Ops[float64]
}

// NewResampler designs a resampler for the given output/input ratio.
func NewResampler(ratio float64, quality Quality) (*Resampler, error) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < minRatio || ratio > maxRatio {
		return nil, fmt.Errorf("%w: %v (must be in [%v, %v])", ErrInvalidRatio, ratio, minRatio, maxRatio)
	}

	r := &Resampler{
		ratio:   ratio,
		quality: quality,
		ops:     simdops.Float64Ops(),
	}

	if quality == QualityQuick {
		return r, nil
	}

	spec, ok := kernelSpecs[quality]
	if !ok {
		return nil, fmt.Errorf("unknown quality %d", int(quality))
	}

	// Band edges scale with the narrower of the input and output bands.
	scale := math.Min(1, ratio)
	bank, err := filter.DesignFractionalBank(filter.FractionalParams{
		NumPhases:    spec.phases,
		Cutoff:       nyquist * scale * (spec.passbandEnd + spec.stopbandBegin) / 2,
		TransitionBW: nyquist * scale * (spec.stopbandBegin - spec.passbandEnd),
		Attenuation:  spec.attenuation,
		Gain:         1,
	})
	if err != nil {
		return nil, fmt.Errorf("designing %s kernel for ratio %v: %w", quality, ratio, err)
	}
	r.bank = bank

	return r, nil
}

// Ratio returns the output/input ratio.
func (r *Resampler) Ratio() float64 { return r.ratio }

// Quality returns the quality level the resampler was built with.
func (r *Resampler) Quality() Quality { return r.quality }

// FilterLength returns the number of taps applied per output sample.
func (r *Resampler) FilterLength() int {
	if r.bank == nil {
		return 4
	}
	return r.bank.Taps
}

// Kernel returns the interpolation filter bank, or nil for QualityQuick.
func (r *Resampler) Kernel() *filter.FractionalBank { return r.bank }

// OutputLength returns the number of samples Process produces for n inputs.
func (r *Resampler) OutputLength(n int) int {
	return int(math.Round(float64(n) * r.ratio))
}

// Process resamples input. Output sample i represents time i/ratio in input
// sample units; samples outside the input are treated as silence.
func (r *Resampler) Process(input []float64) []float64 {
	outLen := r.OutputLength(len(input))
	if r.bank == nil {
		return cubicResample(input, r.ratio, outLen)
	}

	out := make([]float64, outLen)
	if len(input) == 0 {
		return out
	}

	bank := r.bank
	taps := bank.Taps

	// HalfTaps of leading silence and HalfTaps+1 trailing so every window
	// is a contiguous slice.
	padded := make([]float64, len(input)+taps+1)
	copy(padded[bank.HalfTaps:], input)

	step := 1 / r.ratio
	phases := float64(bank.NumPhases)
	dot := r.ops.DotProductUnsafe

	for i := range out {
		t := float64(i) * step
		n0 := int(t)
		pos := (t - float64(n0)) * phases
		p := min(int(pos), bank.NumPhases-1)
		x := pos - float64(p)

		window := padded[n0+1 : n0+1+taps]
		out[i] = dot(window, bank.Row(p)) + x*dot(window, bank.DeltaRow(p))
	}

	return out
}
