package progress

import (
	"fmt"

	"github.com/frism/frism/internal/ui"
)

// A Printer prints messages at different verbosity levels.
// It must be safe to call its methods from concurrent goroutines.
type Printer interface {
	// E prints an error, regardless of the verbosity.
	E(msg string, args ...interface{})
	// P prints a message unless output is quiet.
	P(msg string, args ...interface{})
	// V prints a message in verbose mode.
	V(msg string, args ...interface{})
	// VV prints a message in very verbose mode.
	VV(msg string, args ...interface{})
}

// TerminalPrinter prints messages to a ui.Terminal. Verbosity 0 only shows
// errors, 1 is the default, 2 and 3 enable V and VV.
type TerminalPrinter struct {
	term      ui.Terminal
	verbosity uint
}

var _ Printer = (*TerminalPrinter)(nil)

// NewTerminalPrinter returns a Printer writing to term.
func NewTerminalPrinter(term ui.Terminal, verbosity uint) *TerminalPrinter {
	return &TerminalPrinter{term: term, verbosity: verbosity}
}

func (p *TerminalPrinter) E(msg string, args ...interface{}) {
	p.term.Error(fmt.Sprintf(msg, args...))
}

func (p *TerminalPrinter) P(msg string, args ...interface{}) {
	if p.verbosity >= 1 {
		p.term.Print(fmt.Sprintf(msg, args...))
	}
}

func (p *TerminalPrinter) V(msg string, args ...interface{}) {
	if p.verbosity >= 2 {
		p.term.Print(fmt.Sprintf(msg, args...))
	}
}

func (p *TerminalPrinter) VV(msg string, args ...interface{}) {
	if p.verbosity >= 3 {
		p.term.Print(fmt.Sprintf(msg, args...))
	}
}
