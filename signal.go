package pitch

import (
	"fmt"
	"math"
	"time"

	"github.com/tphakala/go-pitch-adjust/internal/simdops"
)

// Signal is planar audio with samples normalized to [-1, 1].
type Signal struct {
	// Channels holds one slice per channel. All slices have the same length.
	Channels [][]float64

	// SampleRate in Hz.
	SampleRate int

	// BitDepth is the source PCM depth. Encoders use it as the default output
	// depth.
	BitDepth int
}

// NewSignal allocates a silent signal with the given shape.
func NewSignal(numChannels, frames, sampleRate int) (*Signal, error) {
	if numChannels < 1 || numChannels > maxChannels {
		return nil, fmt.Errorf("%w: channel count must be 1-%d: %d", ErrInvalidSignal, maxChannels, numChannels)
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: negative frame count %d", ErrInvalidSignal, frames)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive: %d", ErrInvalidSignal, sampleRate)
	}

	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	return &Signal{Channels: channels, SampleRate: sampleRate, BitDepth: defaultBitDepth}, nil
}

// SignalFromInterleaved splits interleaved samples into a planar Signal.
func SignalFromInterleaved(samples []float64, numChannels, sampleRate int) (*Signal, error) {
	if numChannels < 1 || numChannels > maxChannels {
		return nil, fmt.Errorf("%w: channel count must be 1-%d: %d", ErrInvalidSignal, maxChannels, numChannels)
	}
	if len(samples)%numChannels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels", ErrInvalidSignal, len(samples), numChannels)
	}

	sig := &Signal{
		Channels:   simdops.Deinterleave(samples, numChannels),
		SampleRate: sampleRate,
		BitDepth:   defaultBitDepth,
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}

// Validate checks the signal's shape and sample rate.
func (s *Signal) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil signal", ErrInvalidSignal)
	}
	if len(s.Channels) == 0 || len(s.Channels) > maxChannels {
		return fmt.Errorf("%w: channel count must be 1-%d: %d", ErrInvalidSignal, maxChannels, len(s.Channels))
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive: %d", ErrInvalidSignal, s.SampleRate)
	}

	frames := len(s.Channels[0])
	for ch, data := range s.Channels {
		if len(data) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d", ErrInvalidSignal, ch, len(data), frames)
		}
	}
	return nil
}

// Frames returns the per-channel sample count.
func (s *Signal) Frames() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// NumChannels returns the channel count.
func (s *Signal) NumChannels() int { return len(s.Channels) }

// Duration returns the playback length.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	seconds := float64(s.Frames()) / float64(s.SampleRate)
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := &Signal{
		Channels:   make([][]float64, len(s.Channels)),
		SampleRate: s.SampleRate,
		BitDepth:   s.BitDepth,
	}
	for ch, data := range s.Channels {
		out.Channels[ch] = append([]float64(nil), data...)
	}
	return out
}

// Mono returns a single-channel signal holding the mean of all channels.
func (s *Signal) Mono() *Signal {
	if len(s.Channels) == 1 {
		return s.Clone()
	}

	mixed := make([]float64, s.Frames())
	for _, data := range s.Channels {
		for i, v := range data {
			mixed[i] += v
		}
	}
	if n := len(s.Channels); n > 0 {
		simdops.Float64Ops().Scale(mixed, mixed, 1/float64(n))
	}

	return &Signal{Channels: [][]float64{mixed}, SampleRate: s.SampleRate, BitDepth: s.BitDepth}
}

// Interleaved returns the samples in frame order (L R L R ... for stereo).
func (s *Signal) Interleaved() []float64 {
	out := make([]float64, s.Frames()*len(s.Channels))
	simdops.Interleave(out, s.Channels)
	return out
}
