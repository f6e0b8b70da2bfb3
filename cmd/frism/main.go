package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/frism/frism/internal/debug"
	"github.com/frism/frism/internal/errors"
)

func init() {
	// don't let maxprocs log to stderr
	_, _ = maxprocs.Set()
}

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frism <split|join> ...",
		Short: "Split files into numbered parts and join them again",
		Long: `
frism splits a file, or the data read from stdin, into parts of a fixed size
named <basename>.0, <basename>.1 and so on. The join command finds these parts
again by counting up from 0 until a part is missing, and concatenates them.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		// the subcommands are the only valid first argument
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newUsageError(cmd, "no command given, use 'split' or 'join'")
			}
			return newUsageError(cmd, "invalid command %q, use 'split' or 'join'", args[0])
		},

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return gopts.PreRun()
		},
	}

	cmd.SetIn(gopts.stdin)
	cmd.SetOut(gopts.stdout)
	cmd.SetErr(gopts.stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(c, "%v", err)
	})

	gopts.AddFlags(cmd.PersistentFlags())

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newSplitCommand(gopts),
		newJoinCommand(gopts),
		newVersionCommand(gopts),
	)

	registerProfiling(cmd)

	return cmd
}

// usageError is returned for invalid command lines. main prints the usage
// of cmd before the message.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func newUsageError(cmd *cobra.Command, format string, args ...interface{}) error {
	return errors.WithStack(&usageError{cmd: cmd, msg: fmt.Sprintf(format, args...)})
}

// exitCode returns the exit status for err and prints a description of it
// to stderr.
func exitCode(err error, stderr io.Writer, logged *bytes.Buffer) int {
	if err == nil {
		return 0
	}

	var usageErr *usageError
	var msg string
	switch {
	case errors.As(err, &usageErr):
		_, _ = fmt.Fprint(stderr, usageErr.cmd.UsageString())
		msg = fmt.Sprintf("\nFatal: %v", usageErr.msg)
	case errors.Is(err, context.Canceled):
		msg = "interrupted, parts written so far are left in place"
	case errors.IsFatal(err):
		msg = err.Error()
	default:
		msg = fmt.Sprintf("%+v", err)

		if logged != nil && logged.Len() > 0 {
			msg += "\nalso, the following messages were logged by a library:\n"
			sc := bufio.NewScanner(logged)
			for sc.Scan() {
				msg += fmt.Sprintln(sc.Text())
			}
		}
	}

	_, _ = fmt.Fprintln(stderr, msg)

	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}

func main() {
	// keep messages logged by libraries, they are shown if an error occurs
	logBuffer := bytes.NewBuffer(nil)
	log.SetOutput(logBuffer)

	debug.Log("main %#v", os.Args)
	debug.Log("frism %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ctx := createGlobalContext()
	err := newRootCommand(&globalOptions).ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err, globalOptions.stderr, logBuffer)
	runCleanupHandlers()
	Exit(code)
}
