// Command pitch-adjust shifts the pitch of an audio file without changing its
// tempo.
//
// Usage:
//
//	pitch-adjust --input_file song.mp3 --output_file song_up.wav --new_pitch 220
//	pitch-adjust --input_file in.wav --output_file out.aiff --new_pitch -110 --quality veryhigh
//	pitch-adjust --input_file in.ogg --output_file out.wav --new_pitch 440 --bit_depth 24 -v
//
// The shift percentage is new_pitch / 440 and the semitone shift is
// 12·log2(1 + percentage), so --new_pitch 440 raises the audio by one octave.
// Output is written as WAV or AIFF depending on the output extension.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tphakala/go-pitch-adjust/internal/cli"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the command and reports failures on stderr. A non-nil return
// means the process should exit with status 1.
func run(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	// Missing arguments print help on stdout, like --help; malformed ones
	// print it with the error on stderr.
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		w := stderr
		if len(usageErr.Missing) > 0 {
			w = stdout
		}
		fmt.Fprint(w, usageErr.Usage)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return err
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   cli.CommandName + " --input_file <path> --output_file <path> --new_pitch <value>",
		Short: "Adjust the pitch of a song without changing its tempo",
		Long: `Adjust the pitch of a song by a percentage without changing its tempo.

The percentage is new_pitch / 440 and the shift is 12*log2(1 + percentage)
semitones. Inputs may be WAV, AIFF, MP3 or Ogg Vorbis; outputs are WAV or AIFF.`,

		// Flags are parsed by cli.ParseArguments so that parsing stays a pure
		// function of argv.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cli.ParseArguments(args)
			if errors.Is(err, pflag.ErrHelp) {
				fmt.Fprint(cmd.OutOrStdout(), cli.Usage())
				return nil
			}
			if err != nil {
				return err
			}

			deps, err := cli.DefaultDeps(opts)
			if err != nil {
				return err
			}
			deps.Stdout = cmd.OutOrStdout()

			return cli.Run(cmd.Context(), opts, deps)
		},
	}
}
