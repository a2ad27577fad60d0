package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	pitch "github.com/tphakala/go-pitch-adjust"
	"github.com/tphakala/go-pitch-adjust/internal/audiofile"
)

// Deps are the collaborators Run delegates to.
type Deps struct {
	Load    func(path string) (*pitch.Signal, error)
	Save    func(path string, sig *pitch.Signal) error
	Shifter pitch.Shifter

	// Stdout receives the progress lines.
	Stdout io.Writer

	// Logger receives verbose diagnostics. Nil uses the standard logger.
	Logger *log.Logger
}

// configurer is implemented by shifters that can report their settings.
type configurer interface {
	Config() pitch.Config
}

// DefaultDeps wires the file codecs and a PhaseVocoder at the requested
// quality.
func DefaultDeps(opts Options) (Deps, error) {
	cfg := pitch.DefaultConfig()
	cfg.Quality = opts.Quality

	shifter, err := pitch.NewPhaseVocoder(cfg)
	if err != nil {
		return Deps{}, err
	}

	return Deps{
		Load:    audiofile.Load,
		Save:    audiofile.Save,
		Shifter: shifter,
		Stdout:  os.Stdout,
	}, nil
}

// Run computes the semitone shift for opts.TargetPitch, then loads, shifts
// and saves the audio. A percentage outside the semitone domain aborts before
// any file is touched.
func Run(ctx context.Context, opts Options, deps Deps) error {
	if deps.Load == nil || deps.Save == nil || deps.Shifter == nil {
		return fmt.Errorf("%w: incomplete pipeline dependencies", pitch.ErrInvalidConfig)
	}
	out := deps.Stdout
	if out == nil {
		out = io.Discard
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	percentage := pitch.PercentageFromTarget(opts.TargetPitch)
	fmt.Fprintf(out, "Pitch shifting to %v\n", percentage)

	semitones, err := pitch.SemitoneShift(percentage)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Calculated semitones adj: %v\n", semitones)

	if opts.Verbose {
		logger.Printf("Input: %s", opts.InputPath)
		logger.Printf("Output: %s", opts.OutputPath)
		if c, ok := deps.Shifter.(configurer); ok {
			cfg := c.Config()
			logger.Printf("Quality: %s (frame %d, hop %d)", cfg.Quality, cfg.FrameSize, cfg.Hop)
		} else {
			logger.Printf("Quality: %s", opts.Quality)
		}
		logger.Printf("Ratio: %.6f", pitch.RatioFromSemitones(semitones))
	}

	start := time.Now()

	sig, err := deps.Load(opts.InputPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.InputPath, err)
	}
	if opts.Verbose {
		logger.Printf("Input format: %d Hz, %d channels, %d-bit, %d frames (%s)",
			sig.SampleRate, sig.NumChannels(), sig.BitDepth, sig.Frames(), sig.Duration())
	}

	if opts.Mono && sig.NumChannels() > 1 {
		sig = sig.Mono()
		if opts.Verbose {
			logger.Printf("Mixed down to mono")
		}
	}

	shifted, err := deps.Shifter.Shift(ctx, sig, semitones)
	if err != nil {
		return fmt.Errorf("shifting pitch: %w", err)
	}
	if opts.BitDepth != 0 {
		shifted.BitDepth = opts.BitDepth
	}

	if err := deps.Save(opts.OutputPath, shifted); err != nil {
		return fmt.Errorf("saving %s: %w", opts.OutputPath, err)
	}

	fmt.Fprintf(out, "Pitch adjusted by %v%% and saved as: %s\n", percentage, opts.OutputPath)

	if opts.Verbose {
		elapsed := time.Since(start)
		logger.Printf("Wrote %s (%d-bit)", filepath.Base(opts.OutputPath), shifted.BitDepth)
		if secs := elapsed.Seconds(); secs > 0 {
			logger.Printf("Duration: %.2fs, Speed: %.1fx realtime", secs, sig.Duration().Seconds()/secs)
		}
	}

	return nil
}
