package audiofile

import (
	"math"

	"github.com/go-audio/audio"
)

// Supported integer PCM depths.
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// 8-bit WAV stores unsigned samples centered on 128.
	wav8Offset = 128
)

// fullScale returns 2^(bitDepth-1), the magnitude that maps to 1.0.
func fullScale(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return 1 << 7
	case bitsPerSample24:
		return 1 << 23
	case bitsPerSample32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

func validBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample8, bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	}
	return false
}

// intToPlanar converts interleaved integer samples into per-channel floats
// normalized by the bit depth's full scale. A trailing partial frame is
// dropped.
func intToPlanar(data []int, numChannels, bitDepth, offset int) [][]float64 {
	frames := len(data) / numChannels
	result := make([][]float64, numChannels)
	for ch := range numChannels {
		result[ch] = make([]float64, frames)
	}

	invScale := 1.0 / fullScale(bitDepth)

	// Fast path for stereo
	if numChannels == 2 {
		left, right := result[0], result[1]
		for i := range frames {
			left[i] = float64(data[2*i]-offset) * invScale
			right[i] = float64(data[2*i+1]-offset) * invScale
		}
		return result
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			result[ch][i] = float64(data[base+ch]-offset) * invScale
		}
	}

	return result
}

// planarToInt interleaves channels into an IntBuffer at bitDepth, clamping to
// the representable range.
func planarToInt(channels [][]float64, sampleRate, bitDepth, offset int) *audio.IntBuffer {
	numChannels := len(channels)
	frames := 0
	if numChannels > 0 {
		frames = len(channels[0])
	}

	scale := fullScale(bitDepth)
	lo, hi := -scale, scale-1

	data := make([]int, frames*numChannels)
	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			v := math.Round(channels[ch][i] * scale)
			switch {
			case math.IsNaN(v):
				v = 0
			case v > hi:
				v = hi
			case v < lo:
				v = lo
			}
			data[base+ch] = int(v) + offset
		}
	}

	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
}

// float32ToPlanar splits interleaved float32 samples into channels.
func float32ToPlanar(data []float32, numChannels int) [][]float64 {
	frames := len(data) / numChannels
	result := make([][]float64, numChannels)
	for ch := range numChannels {
		result[ch] = make([]float64, frames)
	}
	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			result[ch][i] = float64(data[base+ch])
		}
	}
	return result
}
