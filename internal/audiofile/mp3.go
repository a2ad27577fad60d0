package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	pitch "github.com/tphakala/go-pitch-adjust"
)

// go-mp3 always emits interleaved stereo 16-bit little-endian PCM.
const (
	mp3Channels      = 2
	mp3BytesPerFrame = mp3Channels * 2
)

func decodeMP3(r io.Reader) (*pitch.Signal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrFormat, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrFormat, err)
	}
	raw = raw[:len(raw)-len(raw)%mp3BytesPerFrame]

	samples := make([]int, len(raw)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}

	return &pitch.Signal{
		Channels:   collapseDualMono(intToPlanar(samples, mp3Channels, bitsPerSample16, 0)),
		SampleRate: dec.SampleRate(),
		BitDepth:   bitsPerSample16,
	}, nil
}

// collapseDualMono returns only the first channel when both channels are
// sample-identical, which is how go-mp3 presents a mono stream.
func collapseDualMono(channels [][]float64) [][]float64 {
	if len(channels) != 2 || len(channels[0]) != len(channels[1]) {
		return channels
	}
	for i, v := range channels[0] {
		if channels[1][i] != v {
			return channels
		}
	}
	return channels[:1]
}
