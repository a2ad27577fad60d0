// Package stretch implements phase-vocoder time stretching: the signal's
// duration changes by a rate factor while its frequency content is kept.
//
// The method follows the classic STFT phase vocoder. The input is analysed
// with a Hann-windowed STFT at a fixed hop; synthesis frames are taken at
// fractional analysis positions spaced 1/rate apart, magnitudes are linearly
// interpolated between the two neighbouring analysis frames, and phases are
// accumulated from the measured per-bin phase advance. Phases are locked to
// spectral peaks (identity phase locking, Laroche and Dolson): only peak bins
// carry their own accumulated phase, and every other bin keeps its analysis
// phase offset from the nearest peak. Frames are overlap-added at the analysis
// hop and normalized by the summed squared window.
package stretch

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-pitch-adjust/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	// DefaultFrameSize is the STFT length in samples.
	DefaultFrameSize = 2048

	// DefaultHop is the analysis and synthesis hop (frame/4, 75% overlap).
	DefaultHop = 512

	minFrameSize = 64

	// Window-sum values below this are treated as uncovered samples.
	normFloor = 1e-10

	// Rates within this distance of 1 are passed through unchanged.
	identityEps = 1e-12
)

// ErrInvalidRate is returned for non-finite or non-positive stretch rates.
var ErrInvalidRate = errors.New("invalid stretch rate")

// Stretcher holds the FFT plan, window and work buffers for one frame
// geometry. It is not safe for concurrent use.
type Stretcher struct {
	frameSize int
	hop       int

	fft    *fourier.FFT
	window []float64
	omega  []float64 // expected phase advance per hop for each bin

	ops *simdops.Ops[float64]

	timeBuf  []float64
	specBuf  []complex128
	synth    []complex128
	phaseAcc []float64
	magBuf   []float64
	peaks    []int

	// Analysis frames i and i+1 have different parity, so two slots indexed
	// by i&1 are enough for the forward-only walk over frame positions.
	cacheIdx   [2]int
	cacheMag   [2][]float64
	cachePhase [2][]float64
}

// New creates a Stretcher. frameSize must be a power of two of at least 64 and
// hop must lie in (0, frameSize).
func New(frameSize, hop int) (*Stretcher, error) {
	if frameSize < minFrameSize || frameSize&(frameSize-1) != 0 {
		return nil, fmt.Errorf("frame size must be a power of two >= %d: %d", minFrameSize, frameSize)
	}
	if hop <= 0 || hop >= frameSize {
		return nil, fmt.Errorf("hop must be in (0, %d): %d", frameSize, hop)
	}

	bins := frameSize/2 + 1
	s := &Stretcher{
		frameSize: frameSize,
		hop:       hop,
		fft:       fourier.NewFFT(frameSize),
		window:    periodicHann(frameSize),
		omega:     make([]float64, bins),
		ops:       simdops.Float64Ops(),
		timeBuf:   make([]float64, frameSize),
		specBuf:   make([]complex128, bins),
		synth:     make([]complex128, bins),
		phaseAcc:  make([]float64, bins),
	}

	for k := range bins {
		s.omega[k] = 2 * math.Pi * float64(k) * float64(hop) / float64(frameSize)
	}
	for slot := range s.cacheIdx {
		s.cacheMag[slot] = make([]float64, bins)
		s.cachePhase[slot] = make([]float64, bins)
	}

	return s, nil
}

// FrameSize returns the STFT length.
func (s *Stretcher) FrameSize() int { return s.frameSize }

// Hop returns the hop size.
func (s *Stretcher) Hop() int { return s.hop }

// OutputLength returns the length Process produces for n samples at rate.
func OutputLength(n int, rate float64) int {
	return int(math.Round(float64(n) * rate))
}

// Process stretches input so that its duration is multiplied by rate
// (rate 2 doubles the length). The result has exactly
// OutputLength(len(input), rate) samples.
func (s *Stretcher) Process(input []float64, rate float64) ([]float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	target := OutputLength(len(input), rate)
	if len(input) == 0 || target == 0 {
		return make([]float64, target), nil
	}
	if math.Abs(rate-1) < identityEps {
		out := make([]float64, target)
		copy(out, input)
		return out, nil
	}

	pad := s.frameSize / 2
	analysisFrames := 1 + len(input)/s.hop
	step := 1 / rate

	steps := 0
	for float64(steps)*step < float64(analysisFrames) {
		steps++
	}

	bufLen := (steps-1)*s.hop + s.frameSize
	out := make([]float64, bufLen)
	norm := make([]float64, bufLen)

	s.cacheIdx = [2]int{-1, -1}
	first := s.analyse(input, 0)
	copy(s.phaseAcc, s.cachePhase[first])

	scale := 1 / float64(s.frameSize)

	for k := range steps {
		t := float64(k) * step
		i := int(t)
		alpha := t - float64(i)

		a := s.analyse(input, i)
		b := s.analyse(input, i+1)
		magA, magB := s.cacheMag[a], s.cacheMag[b]
		phA, phB := s.cachePhase[a], s.cachePhase[b]

		mag := s.magBuf
		for bin := range mag {
			mag[bin] = (1-alpha)*magA[bin] + alpha*magB[bin]
		}
		s.lockPhases(mag, phA)

		for bin := range s.synth {
			s.synth[bin] = cmplx.Rect(mag[bin], s.phaseAcc[bin])

			dphi := wrapPhase(phB[bin] - phA[bin] - s.omega[bin])
			s.phaseAcc[bin] += s.omega[bin] + dphi
		}

		frame := s.fft.Sequence(s.timeBuf, s.synth)
		s.ops.Scale(frame, frame, scale)

		base := k * s.hop
		for j, w := range s.window {
			out[base+j] += frame[j] * w
			norm[base+j] += w * w
		}
	}

	for j := range out {
		if norm[j] > normFloor {
			out[j] /= norm[j]
		}
	}

	// Drop the centering pad and fit to the requested length.
	result := make([]float64, target)
	if pad < len(out) {
		copy(result, out[pad:])
	}

	return result, nil
}

// lockPhases rewrites the accumulated phase of every non-peak bin as the
// accumulated phase of its nearest magnitude peak plus the analysis phase
// offset between the two bins. Without peaks the accumulators are left alone.
func (s *Stretcher) lockPhases(mag, analysisPhase []float64) {
	s.peaks = s.peaks[:0]
	for k := 1; k < len(mag)-1; k++ {
		if mag[k] >= mag[k-1] && mag[k] > mag[k+1] {
			s.peaks = append(s.peaks, k)
		}
	}
	if len(s.peaks) == 0 {
		return
	}

	p := 0
	for k := range mag {
		for p+1 < len(s.peaks) && absInt(s.peaks[p+1]-k) < absInt(s.peaks[p]-k) {
			p++
		}
		pk := s.peaks[p]
		if k != pk {
			s.phaseAcc[k] = s.phaseAcc[pk] + analysisPhase[k] - analysisPhase[pk]
		}
	}
}

// analyse computes magnitude and phase of analysis frame i, centered on
// input sample i*hop, into cache slot i&1 and returns the slot.
func (s *Stretcher) analyse(input []float64, i int) int {
	slot := i & 1
	if s.cacheIdx[slot] == i {
		return slot
	}

	start := i*s.hop - s.frameSize/2
	for j := range s.timeBuf {
		idx := start + j
		if idx >= 0 && idx < len(input) {
			s.timeBuf[j] = input[idx] * s.window[j]
		} else {
			s.timeBuf[j] = 0
		}
	}

	coeffs := s.fft.Coefficients(s.specBuf, s.timeBuf)
	mag, phase := s.cacheMag[slot], s.cachePhase[slot]
	for k, c := range coeffs {
		mag[k] = cmplx.Abs(c)
		phase[k] = cmplx.Phase(c)
	}
	s.cacheIdx[slot] = i

	return slot
}

// periodicHann returns an n-point periodic Hann window: the first n points of
// a symmetric window of length n+1.
func periodicHann(n int) []float64 {
	w := make([]float64, n+1)
	for i := range w {
		w[i] = 1
	}
	return window.Hann(w)[:n]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// wrapPhase maps x to [-π, π).
func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}
