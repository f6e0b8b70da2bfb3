package main

import (
	"github.com/frism/frism/internal/ui/progress"
	"github.com/frism/frism/internal/ui/termstatus"
)

// setupTermstatus creates a new termstatus writing to the streams configured
// in gopts, together with a printer that honors the verbosity. The returned
// function must be called to shut down the termstatus.
//
// Expected usage:
// ```
// term, printer, cancel := setupTermstatus(gopts)
// defer cancel()
// // do stuff
// ```
func setupTermstatus(gopts GlobalOptions) (*termstatus.Terminal, progress.Printer, func()) {
	term := termstatus.New(gopts.stdout, gopts.stderr, gopts.Quiet)
	term.SetMinUpdatePause(gopts.minUpdatePause)
	term, cancel := termstatus.Start(term)

	return term, progress.NewTerminalPrinter(term, gopts.verbosity), cancel
}
