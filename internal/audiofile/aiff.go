package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	pitch "github.com/tphakala/go-pitch-adjust"
)

// aiffReadChunk is the number of samples pulled per PCMBuffer call.
const aiffReadChunk = 1 << 16

func decodeAIFF(r io.ReadSeeker) (*pitch.Signal, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid AIFF file", pitch.ErrFormat)
	}
	dec.ReadInfo()

	format := dec.Format()
	bitDepth := int(dec.BitDepth)
	if format == nil || format.NumChannels < 1 || !validBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: unsupported AIFF layout (%d bits)", pitch.ErrFormat, bitDepth)
	}

	buf := &audio.IntBuffer{Data: make([]int, aiffReadChunk), Format: format}
	var data []int
	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %w", pitch.ErrFormat, err)
		}
		if n < len(buf.Data) {
			break
		}
	}

	return &pitch.Signal{
		Channels:   intToPlanar(data, format.NumChannels, bitDepth, 0),
		SampleRate: format.SampleRate,
		BitDepth:   bitDepth,
	}, nil
}

func encodeAIFF(w io.WriteSeeker, sig *pitch.Signal, bitDepth int) error {
	enc := aiff.NewEncoder(w, sig.SampleRate, bitDepth, sig.NumChannels())
	if err := enc.Write(planarToInt(sig.Channels, sig.SampleRate, bitDepth, 0)); err != nil {
		return err
	}
	return enc.Close()
}
