package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/frism/frism/internal/debug"
	"github.com/frism/frism/internal/errors"
	"github.com/frism/frism/internal/parts"
	"github.com/frism/frism/internal/size"
	"github.com/frism/frism/internal/ui"
	"github.com/frism/frism/internal/ui/progress"
)

func newSplitCommand(gopts *GlobalOptions) *cobra.Command {
	var opts SplitOptions

	cmd := &cobra.Command{
		Use:   "split <file> <size>... | split - <basename> <size>...",
		Short: "Split a file into numbered parts",
		Long: `
The "split" command splits a file into parts of the given size, named
<file>.0, <file>.1 and so on. Only the last part may be smaller.

The size is a number optionally followed by k, m or g for KiB, MiB and GiB.
All arguments after the file name are joined and whitespace is removed, so
"1 00 0 k" is the same as "1000k".

If the file name is "-", the data is read from stdin and the next argument is
used as the basename for the parts.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		Example: `  frism split filename.ext 50m
  frism split filename.ext 1 00 0 000 k
  cat filename.ext | frism split - filename.ext 50m`,
		DisableAutoGenTag: true,
		Args:              cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := parseSplitArgs(args)
			if err != nil {
				return newUsageError(cmd, "%v", err)
			}

			term, printer, cancel := setupTermstatus(*gopts)
			defer cancel()
			return runSplit(cmd.Context(), opts, *gopts, spec, term, printer)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// SplitOptions bundles all options for the split command.
type SplitOptions struct {
	Stream bool
}

func (opts *SplitOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVar(&opts.Stream, "stream", false, "split data from stdin while reading it instead of buffering all of it in memory first")
}

// splitArgs is the parsed command line of the split command.
type splitArgs struct {
	// source is the file to split, or "-" for stdin
	source   string
	basename string
	size     string
}

func (s splitArgs) fromStdin() bool {
	return s.source == "-"
}

func parseSplitArgs(args []string) (splitArgs, error) {
	if len(args) == 0 {
		return splitArgs{}, errors.New("no file given")
	}

	spec := splitArgs{source: args[0], basename: args[0]}
	sizeArgs := args[1:]

	if spec.fromStdin() {
		if len(args) < 2 {
			return splitArgs{}, errors.New("reading from stdin requires a basename for the parts")
		}
		spec.basename = args[1]
		sizeArgs = args[2:]
	}

	spec.size = size.Normalize(sizeArgs)
	if spec.size == "" {
		return splitArgs{}, errors.New("no size given")
	}

	return spec, nil
}

func runSplit(ctx context.Context, opts SplitOptions, gopts GlobalOptions, spec splitArgs, term ui.Terminal, printer progress.Printer) error {
	chunkSize, err := size.Parse(spec.size)
	if err != nil {
		return errors.Fatalf("%v", err)
	}

	rep := newPartProgress(term, printer)

	var stats parts.Stats
	if spec.fromStdin() {
		stats, err = splitReader(ctx, opts, gopts.stdin, spec.basename, chunkSize, rep)
	} else {
		stats, err = splitFile(ctx, opts, spec.source, chunkSize, rep)
	}
	term.SetStatus(nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errors.Fatalf("split %v failed after %d parts: %v", spec.source, stats.Parts, err)
	}

	switch stats.Parts {
	case 0:
		printer.P("Wrote 0 parts, the input is empty")
	case 1:
		printer.P("Wrote 1 part (%s) to %s", ui.FormatBytes(stats.Bytes), ui.Quote(parts.Name(spec.basename, 0)))
	default:
		printer.P("Wrote %d parts (%s) to %s ... %s", stats.Parts, ui.FormatBytes(stats.Bytes),
			ui.Quote(parts.Name(spec.basename, 0)), ui.Quote(parts.Name(spec.basename, stats.Parts-1)))
	}
	return nil
}

// splitFile splits a file by name. Files which cannot be seeked, like named
// pipes, are split like stdin. The file is only opened once, reopening a
// named pipe would discard the data already written to it.
func splitFile(ctx context.Context, opts SplitOptions, filename string, chunkSize uint64, rep parts.Reporter) (parts.Stats, error) {
	f, err := os.Open(filename)
	if err != nil {
		return parts.Stats{}, errors.Wrap(err, "Open")
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := parts.SplitReadSeeker(ctx, f, filename, chunkSize, rep)
	if !parts.IsNotSeekable(err) {
		return stats, err
	}

	debug.Log("%v is not seekable, reading it as a stream: %v", filename, err)
	return splitReader(ctx, opts, f, filename, chunkSize, rep)
}

func splitReader(ctx context.Context, opts SplitOptions, rd io.Reader, basename string, chunkSize uint64, rep parts.Reporter) (parts.Stats, error) {
	if opts.Stream {
		return parts.SplitStream(ctx, rd, basename, chunkSize, rep)
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return parts.Stats{}, errors.Wrap(err, "ReadAll")
	}
	return parts.SplitBytes(ctx, data, basename, chunkSize, rep)
}
