// Package cli implements the pitch-adjust command: argument parsing and the
// load, shift and save pipeline.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	pitch "github.com/tphakala/go-pitch-adjust"
)

// CommandName is the program name used in usage text.
const CommandName = "pitch-adjust"

// Flag names.
const (
	flagInput    = "input_file"
	flagOutput   = "output_file"
	flagPitch    = "new_pitch"
	flagQuality  = "quality"
	flagBitDepth = "bit_depth"
	flagMono     = "mono"
	flagVerbose  = "verbose"
)

// Options is the validated command configuration.
type Options struct {
	InputPath   string
	OutputPath  string
	TargetPitch float64

	// Quality selects the resampling kernel used by the shifter.
	Quality pitch.QualityPreset

	// BitDepth overrides the output PCM depth. Zero keeps the source depth.
	BitDepth int

	// Mono mixes all channels down before shifting.
	Mono bool

	Verbose bool
}

// UsageError reports missing or malformed arguments. Usage holds the help
// text to print. Missing lists the required flags that were absent; it is
// empty when the arguments were malformed instead.
type UsageError struct {
	Reason  string
	Usage   string
	Missing []string
	Err     error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%v: %s", pitch.ErrUsage, e.Reason)
}

// Unwrap exposes pitch.ErrUsage and the underlying cause, if any.
func (e *UsageError) Unwrap() []error {
	if e.Err == nil {
		return []error{pitch.ErrUsage}
	}
	return []error{pitch.ErrUsage, e.Err}
}

type rawFlags struct {
	input    string
	output   string
	target   float64
	quality  string
	bitDepth int
	mono     bool
	verbose  bool
}

func newFlagSet(raw *rawFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(CommandName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVar(&raw.input, flagInput, "", "Path to the input audio file (wav, aiff, mp3, ogg)")
	fs.StringVar(&raw.output, flagOutput, "", "Path to save the adjusted audio file (wav, aiff)")
	fs.Float64Var(&raw.target, flagPitch, 0, "The target pitch; the shift percentage is new_pitch / 440")
	fs.StringVar(&raw.quality, flagQuality, pitch.QualityHigh.String(), "Resampling quality: quick, low, medium, high, veryhigh")
	fs.IntVar(&raw.bitDepth, flagBitDepth, 0, "Output bit depth: 16, 24 or 32 (0 keeps the source depth)")
	fs.BoolVar(&raw.mono, flagMono, false, "Mix down to mono before shifting")
	fs.BoolVarP(&raw.verbose, flagVerbose, "v", false, "Verbose output")

	return fs
}

// Usage returns the help text.
func Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s --%s <path> --%s <path> --%s <value> [options]\n\n",
		CommandName, flagInput, flagOutput, flagPitch)
	b.WriteString("Adjust the pitch of a song by a percentage without changing its tempo.\n\n")
	b.WriteString("Options:\n")
	b.WriteString(newFlagSet(&rawFlags{}).FlagUsages())
	fmt.Fprintf(&b, "\nExample:\n  %s --%s song.mp3 --%s song_up.wav --%s 220\n",
		CommandName, flagInput, flagOutput, flagPitch)
	return b.String()
}

// ParseArguments parses argv (without the program name).
//
// It returns pflag.ErrHelp when help was requested, and a *UsageError when a
// required argument is missing or a value is malformed. --new_pitch counts as
// present whenever it is given, including an explicit zero.
func ParseArguments(argv []string) (Options, error) {
	var raw rawFlags
	fs := newFlagSet(&raw)

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Options{}, pflag.ErrHelp
		}
		return Options{}, usageError(err.Error(), err)
	}
	if fs.NArg() > 0 {
		return Options{}, usageError(fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")), nil)
	}

	var missing []string
	if raw.input == "" {
		missing = append(missing, "--"+flagInput)
	}
	if raw.output == "" {
		missing = append(missing, "--"+flagOutput)
	}
	if !fs.Changed(flagPitch) {
		missing = append(missing, "--"+flagPitch)
	}
	if len(missing) > 0 {
		usageErr := usageError("missing required arguments: "+strings.Join(missing, ", "), nil)
		usageErr.Missing = missing
		return Options{}, usageErr
	}

	quality, err := pitch.ParseQuality(raw.quality)
	if err != nil {
		return Options{}, usageError(err.Error(), err)
	}

	switch raw.bitDepth {
	case 0, 16, 24, 32:
	default:
		return Options{}, usageError(fmt.Sprintf("--%s must be 0, 16, 24 or 32: %d", flagBitDepth, raw.bitDepth), nil)
	}

	return Options{
		InputPath:   raw.input,
		OutputPath:  raw.output,
		TargetPitch: raw.target,
		Quality:     quality,
		BitDepth:    raw.bitDepth,
		Mono:        raw.mono,
		Verbose:     raw.verbose,
	}, nil
}

func usageError(reason string, err error) *UsageError {
	return &UsageError{Reason: reason, Usage: Usage(), Err: err}
}
