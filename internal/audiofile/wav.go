package audiofile

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	pitch "github.com/tphakala/go-pitch-adjust"
)

// WAVE format tags accepted by the decoder.
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

func decodeWAV(r io.ReadSeeker) (*pitch.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", pitch.ErrFormat)
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV audio format %d is not integer PCM", pitch.ErrFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrFormat, err)
	}

	channels, bitDepth := int(dec.NumChans), int(dec.BitDepth)
	if channels < 1 || !validBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d channels at %d bits", pitch.ErrFormat, channels, bitDepth)
	}

	offset := 0
	if bitDepth == bitsPerSample8 {
		offset = wav8Offset
	}

	return &pitch.Signal{
		Channels:   intToPlanar(buf.Data, channels, bitDepth, offset),
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
	}, nil
}

func encodeWAV(w io.WriteSeeker, sig *pitch.Signal, bitDepth int) error {
	offset := 0
	if bitDepth == bitsPerSample8 {
		offset = wav8Offset
	}

	enc := wav.NewEncoder(w, sig.SampleRate, bitDepth, sig.NumChannels(), wavFormatPCM)
	if err := enc.Write(planarToInt(sig.Channels, sig.SampleRate, bitDepth, offset)); err != nil {
		return err
	}
	return enc.Close()
}
