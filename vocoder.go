package pitch

import (
	"context"
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-adjust/internal/engine"
	"github.com/tphakala/go-pitch-adjust/internal/stretch"
)

// PhaseVocoder shifts pitch by time-stretching each channel with a phase
// vocoder and resampling the result back to the original duration.
type PhaseVocoder struct {
	config    Config
	frameSize int
	hop       int
}

// Compile-time interface check.
var _ Shifter = (*PhaseVocoder)(nil)

// NewPhaseVocoder validates cfg and returns a shifter.
func NewPhaseVocoder(cfg Config) (*PhaseVocoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	frameSize, hop := cfg.withDefaults()
	return &PhaseVocoder{config: cfg, frameSize: frameSize, hop: hop}, nil
}

// Config returns the effective configuration, with the default frame size and
// hop filled in when they were left zero.
func (v *PhaseVocoder) Config() Config {
	cfg := v.config
	cfg.FrameSize, cfg.Hop = v.frameSize, v.hop
	return cfg
}

// Shift returns a new signal with every channel shifted by semitones. Frame
// count, channel count, sample rate and bit depth are preserved.
//
// Any finite shift is accepted; resampling past the single-pass ratio limits
// is split into several passes. Non-finite shifts, and shifts whose stretched
// intermediate would exceed maxStretchedFrames, return ErrDomain. The context
// is checked between channels.
func (v *PhaseVocoder) Shift(ctx context.Context, sig *Signal, semitones float64) (*Signal, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return nil, fmt.Errorf("%w: shift of %v semitones", ErrDomain, semitones)
	}

	if math.Abs(semitones) < identitySemitones {
		return sig.Clone(), nil
	}

	ratio := RatioFromSemitones(semitones)
	if math.IsInf(ratio, 0) || math.IsInf(1/ratio, 0) {
		return nil, fmt.Errorf("%w: shift of %v semitones has no finite ratio", ErrDomain, semitones)
	}

	frames := sig.Frames()
	if n := float64(frames) * ratio; n > maxStretchedFrames {
		return nil, fmt.Errorf("%w: shift of %v semitones needs %.0f intermediate samples per channel (limit %d)",
			ErrDomain, semitones, n, maxStretchedFrames)
	}

	st, err := stretch.New(v.frameSize, v.hop)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	rs, err := engine.NewCascade(1/ratio, v.config.Quality.engineQuality())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	out := &Signal{
		Channels:   make([][]float64, len(sig.Channels)),
		SampleRate: sig.SampleRate,
		BitDepth:   sig.BitDepth,
	}

	for ch, data := range sig.Channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stretched, err := st.Process(data, ratio)
		if err != nil {
			return nil, fmt.Errorf("channel %d: stretch: %w", ch, err)
		}

		out.Channels[ch] = fitLength(rs.Process(stretched), frames)
	}

	return out, nil
}

// fitLength truncates or zero-pads s to n samples.
func fitLength(s []float64, n int) []float64 {
	if len(s) == n {
		return s
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}
