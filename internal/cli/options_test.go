package cli

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pitch "github.com/tphakala/go-pitch-adjust"
)

func TestParseArguments_Valid(t *testing.T) {
	opts, err := ParseArguments([]string{
		"--input_file", "in.mp3",
		"--output_file", "out.wav",
		"--new_pitch", "220",
	})
	require.NoError(t, err)

	assert.Equal(t, "in.mp3", opts.InputPath)
	assert.Equal(t, "out.wav", opts.OutputPath)
	assert.InDelta(t, 220.0, opts.TargetPitch, 0)
	assert.Equal(t, pitch.QualityHigh, opts.Quality)
	assert.Equal(t, 0, opts.BitDepth)
	assert.False(t, opts.Mono)
	assert.False(t, opts.Verbose)
}

func TestParseArguments_AllOptions(t *testing.T) {
	opts, err := ParseArguments([]string{
		"--input_file=a.wav",
		"--output_file=b.aiff",
		"--new_pitch=-110.5",
		"--quality", "veryhigh",
		"--bit_depth", "24",
		"--mono",
		"-v",
	})
	require.NoError(t, err)

	assert.InDelta(t, -110.5, opts.TargetPitch, 0)
	assert.Equal(t, pitch.QualityVeryHigh, opts.Quality)
	assert.Equal(t, 24, opts.BitDepth)
	assert.True(t, opts.Mono)
	assert.True(t, opts.Verbose)
}

func TestParseArguments_ZeroPitchIsPresent(t *testing.T) {
	opts, err := ParseArguments([]string{"--input_file", "a.wav", "--output_file", "b.wav", "--new_pitch", "0"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, opts.TargetPitch, 0)
}

func TestParseArguments_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"empty", nil},
		{"missing_pitch", []string{"--input_file", "song.mp3", "--output_file", "out.wav"}},
		{"missing_input", []string{"--output_file", "out.wav", "--new_pitch", "220"}},
		{"missing_output", []string{"--input_file", "song.mp3", "--new_pitch", "220"}},
		{"empty_input", []string{"--input_file", "", "--output_file", "out.wav", "--new_pitch", "220"}},
		{"bad_pitch", []string{"--input_file", "a", "--output_file", "b", "--new_pitch", "high"}},
		{"unknown_flag", []string{"--input_file", "a", "--output_file", "b", "--new_pitch", "1", "--speed", "2"}},
		{"positional", []string{"--input_file", "a", "--output_file", "b", "--new_pitch", "1", "extra"}},
		{"bad_quality", []string{"--input_file", "a", "--output_file", "b", "--new_pitch", "1", "--quality", "ultra"}},
		{"bad_bit_depth", []string{"--input_file", "a", "--output_file", "b", "--new_pitch", "1", "--bit_depth", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArguments(tt.argv)
			require.ErrorIs(t, err, pitch.ErrUsage)

			var usageErr *UsageError
			require.True(t, errors.As(err, &usageErr))
			assert.Contains(t, usageErr.Usage, "--new_pitch")
			assert.NotEmpty(t, usageErr.Reason)
		})
	}
}

func TestParseArguments_MissingNamesFlags(t *testing.T) {
	_, err := ParseArguments([]string{"--input_file", "song.mp3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output_file")
	assert.Contains(t, err.Error(), "--new_pitch")
	assert.NotContains(t, err.Error(), "--input_file")

	var usageErr *UsageError
	require.True(t, errors.As(err, &usageErr))
	assert.Equal(t, []string{"--output_file", "--new_pitch"}, usageErr.Missing)

	_, err = ParseArguments([]string{"--input_file", "a", "--output_file", "b", "--new_pitch", "high"})
	require.True(t, errors.As(err, &usageErr))
	assert.Empty(t, usageErr.Missing, "malformed value is not a missing flag")
}

func TestParseArguments_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		_, err := ParseArguments([]string{arg})
		require.ErrorIs(t, err, pflag.ErrHelp, arg)
	}
}

func TestParseArguments_BadQualityKeepsCause(t *testing.T) {
	_, err := ParseArguments([]string{"--input_file", "a", "--output_file", "b", "--new_pitch", "1", "--quality", "ultra"})
	require.ErrorIs(t, err, pitch.ErrUsage)
	require.ErrorIs(t, err, pitch.ErrInvalidConfig)
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for _, flag := range []string{"--input_file", "--output_file", "--new_pitch", "--quality", "--bit_depth", "--mono", "--verbose"} {
		assert.Contains(t, usage, flag)
	}
	assert.Contains(t, usage, CommandName)
}
