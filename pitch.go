package pitch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-pitch-adjust/internal/engine"
	"github.com/tphakala/go-pitch-adjust/internal/stretch"
)

// Shifter applies a tempo-preserving pitch shift to every channel of a
// signal. Implementations must return a new signal with the same number of
// channels, frames and the same sample rate.
type Shifter interface {
	Shift(ctx context.Context, sig *Signal, semitones float64) (*Signal, error)
}

// Error taxonomy. Errors returned by this module wrap one of these, so callers
// classify failures with errors.Is.
var (
	// ErrUsage indicates missing or malformed command-line arguments.
	ErrUsage = errors.New("usage error")

	// ErrIO indicates a missing input file or an unwritable destination.
	ErrIO = errors.New("i/o error")

	// ErrFormat indicates undecodable or unsupported audio content.
	ErrFormat = errors.New("unsupported audio format")

	// ErrDomain indicates a percentage for which 12·log2(1 + p) is undefined, or
	// a shift too large to compute.
	ErrDomain = errors.New("percentage outside semitone domain")

	// ErrInvalidConfig indicates invalid shifter configuration.
	ErrInvalidConfig = errors.New("invalid pitch shifter configuration")

	// ErrInvalidSignal indicates a malformed Signal.
	ErrInvalidSignal = errors.New("invalid signal")
)

// QualityPreset selects the resampling kernel used to restore duration.
type QualityPreset int

const (
	// QualityQuick uses cubic interpolation. Fastest, aliases on upward shifts.
	QualityQuick QualityPreset = iota

	// QualityLow provides a ~70 dB anti-aliasing kernel.
	QualityLow

	// QualityMedium provides a ~90 dB anti-aliasing kernel.
	QualityMedium

	// QualityHigh provides a ~110 dB anti-aliasing kernel.
	QualityHigh

	// QualityVeryHigh provides a ~140 dB anti-aliasing kernel.
	QualityVeryHigh
)

var presetNames = map[QualityPreset]string{
	QualityQuick:    "quick",
	QualityLow:      "low",
	QualityMedium:   "medium",
	QualityHigh:     "high",
	QualityVeryHigh: "veryhigh",
}

// String returns the preset's flag name.
func (q QualityPreset) String() string {
	if name, ok := presetNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QualityPreset(%d)", int(q))
}

// ParseQuality maps a case-insensitive preset name to a QualityPreset.
func ParseQuality(name string) (QualityPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for q, n := range presetNames {
		if n == name {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quality %q (want quick, low, medium, high or veryhigh)", ErrInvalidConfig, name)
}

func (q QualityPreset) engineQuality() engine.Quality {
	switch q {
	case QualityQuick:
		return engine.QualityQuick
	case QualityLow:
		return engine.QualityLow
	case QualityMedium:
		return engine.QualityMedium
	case QualityVeryHigh:
		return engine.QualityVeryHigh
	default:
		return engine.QualityHigh
	}
}

// Config holds PhaseVocoder settings. Zero FrameSize or Hop select the
// defaults.
type Config struct {
	// Quality selects the resampling kernel.
	Quality QualityPreset

	// FrameSize is the STFT length; a power of two >= 64.
	FrameSize int

	// Hop is the STFT hop in samples; must be less than FrameSize.
	Hop int
}

// DefaultConfig returns the configuration used by the command-line tool:
// high quality, 2048-sample frames, 512-sample hop.
func DefaultConfig() Config {
	return Config{
		Quality:   QualityHigh,
		FrameSize: stretch.DefaultFrameSize,
		Hop:       stretch.DefaultHop,
	}
}

// Validate checks the configuration. It does not apply defaults.
func (c *Config) Validate() error {
	if _, ok := presetNames[c.Quality]; !ok {
		return fmt.Errorf("%w: unknown quality preset %d", ErrInvalidConfig, int(c.Quality))
	}

	if c.FrameSize < 0 || c.Hop < 0 {
		return fmt.Errorf("%w: frame size and hop must not be negative", ErrInvalidConfig)
	}

	frame, hop := c.withDefaults()
	if _, err := stretch.New(frame, hop); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c *Config) withDefaults() (frameSize, hop int) {
	frameSize, hop = c.FrameSize, c.Hop
	if frameSize == 0 {
		frameSize = stretch.DefaultFrameSize
	}
	if hop == 0 {
		hop = frameSize / 4
	}
	return frameSize, hop
}
