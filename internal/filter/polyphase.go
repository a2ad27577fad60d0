package filter

import (
	"fmt"

	"github.com/tphakala/go-pitch-adjust/internal/mathutil"
)

const (
	minNumPhases = 2
	maxNumPhases = 8192
)

// FractionalParams describes a fractional-delay filter bank.
type FractionalParams struct {
	// NumPhases is how many fractional offsets in [0, 1) are tabulated.
	NumPhases int

	// Cutoff is the normalized cutoff in cycles/sample of the input rate.
	Cutoff float64

	// TransitionBW is the transition width in cycles/sample of the input rate.
	TransitionBW float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Gain is the DC gain of every phase.
	Gain float64
}

// Validate checks the parameters.
func (p *FractionalParams) Validate() error {
	if p.NumPhases < minNumPhases || p.NumPhases > maxNumPhases {
		return fmt.Errorf("number of phases %d out of range [%d, %d]", p.NumPhases, minNumPhases, maxNumPhases)
	}

	if p.Cutoff <= 0 || p.Cutoff >= nyquist {
		return fmt.Errorf("cutoff frequency %f out of range (0, 0.5)", p.Cutoff)
	}

	if p.TransitionBW <= 0 || p.TransitionBW >= nyquist {
		return fmt.Errorf("transition bandwidth %f out of range (0, 0.5)", p.TransitionBW)
	}

	if p.Attenuation < 0 {
		return fmt.Errorf("attenuation %f dB must be positive", p.Attenuation)
	}

	if p.Gain <= 0 {
		return fmt.Errorf("gain %f must be positive", p.Gain)
	}

	return nil
}

// FractionalBank is a table of windowed-sinc interpolation kernels, one row
// per fractional offset, for arbitrary-ratio resampling.
//
// Row p holds the taps applied to input samples n0-HalfTaps+1 … n0+HalfTaps
// when the output instant lies at n0 + p/NumPhases. Deltas row p holds the
// difference to row p+1 so that offsets between tabulated phases are linearly
// interpolated: coeff = Coeffs[p] + x·Deltas[p].
type FractionalBank struct {
	Coeffs []float64
	Deltas []float64

	NumPhases int
	Taps      int
	HalfTaps  int

	Cutoff       float64
	TransitionBW float64
	Attenuation  float64
}

// DesignFractionalBank builds the kernel table. Each row is normalized to the
// requested DC gain so that every fractional offset passes DC unchanged.
func DesignFractionalBank(params FractionalParams) (*FractionalBank, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fractional bank parameters: %w", err)
	}

	length := mathutil.EstimateFilterLength(params.Attenuation, params.TransitionBW)
	half := (length + 1) / 2
	taps := 2 * half
	if taps > maxFilterTaps {
		return nil, fmt.Errorf("filter too long: %d taps (maximum %d)", taps, maxFilterTaps)
	}

	bank := &FractionalBank{
		NumPhases:    params.NumPhases,
		Taps:         taps,
		HalfTaps:     half,
		Cutoff:       params.Cutoff,
		TransitionBW: params.TransitionBW,
		Attenuation:  params.Attenuation,
		Coeffs:       make([]float64, params.NumPhases*taps),
		Deltas:       make([]float64, params.NumPhases*taps),
	}

	beta := mathutil.KaiserBeta(params.Attenuation)
	twoFc := 2 * params.Cutoff
	halfWidth := float64(half)

	kernel := func(d float64) float64 {
		return twoFc * mathutil.Sinc(twoFc*d) * KaiserValue(d, halfWidth, beta)
	}

	row := func(frac float64, dst []float64) {
		for j := range taps {
			dst[j] = kernel(frac - float64(j-half+1))
		}
		normalizeGain(dst, params.Gain)
	}

	next := make([]float64, taps)
	for p := range params.NumPhases {
		cur := bank.Row(p)
		row(float64(p)/float64(params.NumPhases), cur)
		row(float64(p+1)/float64(params.NumPhases), next)

		delta := bank.DeltaRow(p)
		for j := range taps {
			delta[j] = next[j] - cur[j]
		}
	}

	return bank, nil
}

// Row returns the coefficients for phase p.
func (b *FractionalBank) Row(p int) []float64 {
	return b.Coeffs[p*b.Taps : (p+1)*b.Taps]
}

// DeltaRow returns the phase p to p+1 differences.
func (b *FractionalBank) DeltaRow(p int) []float64 {
	return b.Deltas[p*b.Taps : (p+1)*b.Taps]
}

// Coefficient returns the interpolated tap value at fractional offset frac
// in [0, 1).
func (b *FractionalBank) Coefficient(tap int, frac float64) float64 {
	pos := frac * float64(b.NumPhases)
	p := min(int(pos), b.NumPhases-1)
	x := pos - float64(p)
	return b.Row(p)[tap] + x*b.DeltaRow(p)[tap]
}

// MemoryUsage returns the approximate table size in bytes.
func (b *FractionalBank) MemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(len(b.Coeffs)+len(b.Deltas)) * bytesPerFloat64
}
