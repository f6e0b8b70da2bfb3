package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/frism/frism/internal/errors"
)

var version = "0.1.0-dev (compiled manually)"

// GlobalOptions hold all global options for frism.
type GlobalOptions struct {
	Quiet   bool
	Verbose int

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// verbosity is set as follows:
	//  0 means: only print errors, this is used when --quiet is specified
	//  1 is the default: print the summary of each command
	//  2 means: print more messages, used when --verbose is specified
	//  3 means: print every part, used when --verbose=2 is specified
	verbosity uint

	// minimal pause between two status line updates
	minUpdatePause time.Duration
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output progress or summary messages (default: $FRISM_QUIET)")
	// use empty parameter name as `-v, --verbose n` instead of the correct `--verbose=n` is confusing
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``, max level/times is 2)")

	if quiet, err := strconv.ParseBool(os.Getenv("FRISM_QUIET")); err == nil {
		opts.Quiet = quiet
	}
}

func (opts *GlobalOptions) PreRun() error {
	opts.verbosity = 1
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Verbose >= 2:
		opts.verbosity = 3
	case opts.Verbose > 0:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	}

	opts.minUpdatePause = time.Second / 60
	if s, ok := os.LookupEnv("FRISM_PROGRESS_FPS"); ok {
		fps, err := strconv.Atoi(s)
		if err != nil || fps < 1 {
			return errors.Fatalf("invalid value %q for $FRISM_PROGRESS_FPS, expected a number >= 1", s)
		}
		opts.minUpdatePause = time.Second / time.Duration(min(fps, 60))
	}

	return nil
}

var globalOptions = GlobalOptions{
	stdin:  os.Stdin,
	stdout: os.Stdout,
	stderr: os.Stderr,
}

// Warnf writes the message to the configured stderr stream.
func Warnf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(globalOptions.stderr, format, args...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write to stderr: %v\n", err)
	}
}
