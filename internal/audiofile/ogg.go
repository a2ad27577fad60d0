package audiofile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	pitch "github.com/tphakala/go-pitch-adjust"
)

func decodeOgg(r io.Reader) (*pitch.Signal, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrFormat, err)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("%w: ogg stream has no channels", pitch.ErrFormat)
	}

	// Vorbis is lossy float; 16 bits is the conventional export depth.
	return &pitch.Signal{
		Channels:   float32ToPlanar(data, format.Channels),
		SampleRate: format.SampleRate,
		BitDepth:   bitsPerSample16,
	}, nil
}
