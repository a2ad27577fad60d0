// Command analyze-kernel prints the interpolation kernels the pitch shifter
// uses to restore duration after stretching: size, per-phase DC gain and the
// measured passband and stopband of each quality preset.
//
// Usage:
//
//	analyze-kernel                  # +12 and -12 semitones
//	analyze-kernel -s 7 -s -5       # specific shifts
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"
	pitch "github.com/tphakala/go-pitch-adjust"
	"github.com/tphakala/go-pitch-adjust/internal/engine"
	"github.com/tphakala/go-pitch-adjust/internal/filter"
)

const (
	responsePoints = 2048 // frequency grid for response measurements
	bytesPerKiB    = 1024
)

var qualities = []engine.Quality{
	engine.QualityLow,
	engine.QualityMedium,
	engine.QualityHigh,
	engine.QualityVeryHigh,
}

func main() {
	fs := pflag.NewFlagSet("analyze-kernel", pflag.ExitOnError)
	shifts := fs.Float64SliceP("semitones", "s", []float64{12, -12}, "Pitch shifts to analyze")
	_ = fs.Parse(os.Args[1:])

	for _, s := range *shifts {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			fmt.Fprintf(os.Stderr, "skipping %v semitones: not finite\n", s)
			continue
		}

		// The shifter resamples the stretched signal by 1/r.
		ratio := 1 / pitch.RatioFromSemitones(s)
		fmt.Printf("=== %+.2f semitones (resample ratio %.6f) ===\n", s, ratio)

		for _, q := range qualities {
			c, err := engine.NewCascade(ratio, q)
			if err != nil {
				fmt.Printf("  %-9s error: %v\n", q, err)
				continue
			}
			if c.Stages() > 1 {
				fmt.Printf("  %-9s %d passes of ratio %.6f each\n", q, c.Stages(), c.Pass(0).Ratio())
			}
			report(q, c.Pass(0).Kernel())
		}
		fmt.Println()
	}
}

func report(q engine.Quality, bank *filter.FractionalBank) {
	minDC, maxDC := math.Inf(1), math.Inf(-1)
	for p := range bank.NumPhases {
		var dc float64
		for _, c := range bank.Row(p) {
			dc += c
		}
		minDC = math.Min(minDC, dc)
		maxDC = math.Max(maxDC, dc)
	}

	passEdge := bank.Cutoff - bank.TransitionBW/2
	stopEdge := bank.Cutoff + bank.TransitionBW/2
	ripple, stopband := measure(filter.FrequencyResponse(bank.Row(0), responsePoints), passEdge, stopEdge)

	fmt.Printf("  %-9s %5d taps x %4d phases (%6d KiB)  DC [%.12f, %.12f]\n",
		q, bank.Taps, bank.NumPhases, bank.MemoryUsage()/bytesPerKiB, minDC, maxDC)
	fmt.Printf("            passband <%.4f ripple %.4f dB, stopband >%.4f peak %.1f dB (target -%.0f dB)\n",
		passEdge, ripple, stopEdge, stopband, bank.Attenuation)

	// Compare against a single-phase design with the same band edges.
	ref, err := filter.DesignLowPassFilter(filter.LowPassParams{
		NumTaps:     bank.Taps + 1,
		CutoffFreq:  bank.Cutoff,
		Attenuation: bank.Attenuation,
		Gain:        1,
	})
	if err != nil {
		fmt.Printf("            reference design: %v\n", err)
		return
	}
	refRipple, refStop := measure(filter.FrequencyResponse(ref, responsePoints), passEdge, stopEdge)
	fmt.Printf("            reference low-pass ripple %.4f dB, stopband peak %.1f dB\n", refRipple, refStop)
}

// measure returns the peak passband deviation and the highest stopband level,
// both in dB.
func measure(resp filter.Response, passEdge, stopEdge float64) (ripple, stopband float64) {
	stopband = math.Inf(-1)
	for i, f := range resp.Frequencies {
		db := filter.MagnitudeDB(resp.Magnitude[i])
		switch {
		case f <= passEdge:
			ripple = math.Max(ripple, math.Abs(db))
		case f >= stopEdge:
			stopband = math.Max(stopband, db)
		}
	}
	return ripple, stopband
}
