// Package pitch shifts the pitch of audio while preserving its tempo.
//
// # Quick Start
//
// The command-line tool derives a semitone count from a target value and
// applies it to a decoded signal:
//
//	percentage := pitch.PercentageFromTarget(220) // 220 / 440 = 0.5
//	semitones, err := pitch.SemitoneShift(percentage)
//	if err != nil {
//	    // errors.Is(err, pitch.ErrDomain) when 1 + percentage <= 0
//	}
//
//	shifter, err := pitch.NewPhaseVocoder(pitch.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shifted, err := shifter.Shift(ctx, signal, semitones)
//
// For a single channel of samples use [ShiftMono].
//
// # Semitones
//
// The semitone count for a percentage p is 12·log2(1 + p). The tool forms p
// by dividing the requested value by [ReferencePitch] (440, concert A), so a
// value of 440 gives p = 1 and a shift of exactly one octave up. This treats a
// frequency as a percentage baseline and will not match what most users expect
// from a "target pitch"; the formula is kept as-is until its intent is settled.
//
// # Architecture
//
// [PhaseVocoder] implements [Shifter] with the classic stretch-and-resample
// method:
//
//	Input -> [Phase vocoder stretch x r] -> [Windowed-sinc resample x 1/r] -> Output
//	             (duration x r)                 (duration restored)
//
// where r = 2^(semitones/12). Every channel is processed independently and
// the result keeps the input's frame count and sample rate.
//
// # Quality Presets
//
//   - [QualityQuick]: cubic interpolation, no anti-aliasing.
//   - [QualityLow]: ~70 dB stopband. Speech and previews.
//   - [QualityMedium]: ~90 dB stopband.
//   - [QualityHigh]: ~110 dB stopband. Default.
//   - [QualityVeryHigh]: ~140 dB stopband. Slowest.
//
// # Thread Safety
//
// A [PhaseVocoder] allocates its work buffers per call, so concurrent Shift
// calls on the same instance are safe.
package pitch
