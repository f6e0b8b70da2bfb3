package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/frism/frism/internal/errors"
	"github.com/frism/frism/internal/parts"
	"github.com/frism/frism/internal/ui"
	"github.com/frism/frism/internal/ui/progress"
)

func newJoinCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <basename> [outfile]",
		Short: "Join numbered parts into a single file",
		Long: `
The "join" command concatenates the parts <basename>.0, <basename>.1 and so on
into a single file. Parts are found by counting up from 0 until a part is
missing, so the basename is given without the ".0" suffix.

The output is written to outfile, or to a file named like the last element of
basename in the current directory.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		Example: `  frism join filename.ext
  frism join /mnt/usb/filename.ext restored.ext`,
		DisableAutoGenTag: true,
		Args:              cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newUsageError(cmd, "no basename given")
			}
			if len(args) > 2 {
				return newUsageError(cmd, "too many arguments, expected <basename> [outfile]")
			}

			term, printer, cancel := setupTermstatus(*gopts)
			defer cancel()
			return runJoin(cmd.Context(), args, term, printer)
		},
	}

	return cmd
}

func runJoin(ctx context.Context, args []string, term ui.Terminal, printer progress.Printer) error {
	basename := args[0]
	var outfile string
	if len(args) > 1 {
		outfile = args[1]
	}

	stats, err := parts.Join(ctx, basename, outfile, newPartProgress(term, printer))
	term.SetStatus(nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errors.Fatalf("join %v failed after %d parts: %v", basename, stats.Parts, err)
	}

	if stats.Parts == 0 {
		printer.P("no parts found for %s, %s is empty", ui.Quote(basename), ui.Quote(stats.Output))
	}
	printer.V("Joined %d parts (%s)", stats.Parts, ui.FormatBytes(stats.Bytes))
	printer.P("Wrote to %s", ui.Quote(stats.Output))
	return nil
}
