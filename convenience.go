package pitch

import "context"

// ShiftMono shifts a single channel of samples by semitones and returns a
// slice of the same length.
//
// Example:
//
//	up, err := pitch.ShiftMono(samples, 44100, 12, pitch.QualityHigh)
func ShiftMono(samples []float64, sampleRate int, semitones float64, quality QualityPreset) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.Quality = quality

	shifter, err := NewPhaseVocoder(cfg)
	if err != nil {
		return nil, err
	}

	sig := &Signal{Channels: [][]float64{samples}, SampleRate: sampleRate, BitDepth: defaultBitDepth}
	out, err := shifter.Shift(context.Background(), sig, semitones)
	if err != nil {
		return nil, err
	}
	return out.Channels[0], nil
}
