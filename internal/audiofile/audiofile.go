// Package audiofile decodes and encodes audio files into pitch.Signal values,
// choosing the codec from the file extension.
//
// Decoding supports WAV, AIFF, MP3 and Ogg Vorbis. Encoding supports integer
// PCM WAV and AIFF at 8, 16, 24 or 32 bits.
//
// The MP3 decoder always produces two channels. When they are identical, as
// for a mono stream, the decoded signal is reduced to a single channel.
package audiofile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pitch "github.com/tphakala/go-pitch-adjust"
)

// Kind identifies a container format.
type Kind int

// Known container formats.
const (
	KindUnknown Kind = iota
	KindWAV
	KindAIFF
	KindMP3
	KindOgg
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindWAV:     "wav",
	KindAIFF:    "aiff",
	KindMP3:     "mp3",
	KindOgg:     "ogg",
}

func (k Kind) String() string { return kindNames[k] }

// CanEncode reports whether Save can write this format.
func (k Kind) CanEncode() bool {
	return k == KindWAV || k == KindAIFF
}

// KindFromPath maps a file extension (case-insensitive) to a Kind.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return KindWAV
	case ".aif", ".aiff":
		return KindAIFF
	case ".mp3":
		return KindMP3
	case ".ogg", ".oga":
		return KindOgg
	default:
		return KindUnknown
	}
}

// Load decodes the file at path at its native sample rate.
//
// Errors wrap pitch.ErrIO when the file cannot be opened and pitch.ErrFormat
// when the extension is unknown or the content cannot be decoded.
func Load(path string) (*pitch.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	var sig *pitch.Signal
	switch KindFromPath(path) {
	case KindWAV:
		sig, err = decodeWAV(f)
	case KindAIFF:
		sig, err = decodeAIFF(f)
	case KindMP3:
		sig, err = decodeMP3(f)
	case KindOgg:
		sig, err = decodeOgg(f)
	default:
		return nil, fmt.Errorf("%w: unrecognized extension %q", pitch.ErrFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", pitch.ErrFormat, filepath.Base(path), err)
	}
	return sig, nil
}

// Save encodes sig at sig.BitDepth (16 when zero) into path. The containing
// directory must exist.
//
// Errors wrap pitch.ErrIO for unsupported output extensions and for create or
// write failures.
func Save(path string, sig *pitch.Signal) (err error) {
	if err := sig.Validate(); err != nil {
		return err
	}

	kind := KindFromPath(path)
	if !kind.CanEncode() {
		return fmt.Errorf("%w: cannot encode %q (want .wav or .aiff)", pitch.ErrIO, filepath.Ext(path))
	}

	bitDepth := sig.BitDepth
	if bitDepth == 0 {
		bitDepth = bitsPerSample16
	}
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("%w: unsupported output bit depth %d", pitch.ErrIO, bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", pitch.ErrIO, err)
	}
	// Close errors matter: encoders patch chunk sizes on Close.
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %w", pitch.ErrIO, closeErr)
		}
	}()

	if kind == KindWAV {
		err = encodeWAV(f, sig, bitDepth)
	} else {
		err = encodeAIFF(f, sig, bitDepth)
	}
	if err != nil {
		return fmt.Errorf("%w: writing %s: %w", pitch.ErrIO, filepath.Base(path), err)
	}
	return nil
}
