package pitch

// Semitone conversion constants.
const (
	// ReferencePitch is the divisor applied to a requested target value to
	// form the shift percentage (concert A, 440 Hz).
	ReferencePitch = 440.0

	// SemitonesPerOctave is the number of equal-tempered steps per doubling.
	SemitonesPerOctave = 12.0

	// identitySemitones is the shift below which Shift returns a copy.
	identitySemitones = 1e-9
)

// Signal limits.
const (
	maxChannels     = 256
	defaultBitDepth = 16

	// maxStretchedFrames caps the per-channel length of the time-stretched
	// intermediate, which grows with 2^(semitones/12).
	maxStretchedFrames = 1 << 27
)
