package main

import (
	"fmt"
	"time"

	"github.com/frism/frism/internal/parts"
	"github.com/frism/frism/internal/ui"
	"github.com/frism/frism/internal/ui/progress"
)

// partProgress shows the part currently processed in the status line.
type partProgress struct {
	term    ui.Terminal
	printer progress.Printer
	start   time.Time
}

var _ parts.Reporter = &partProgress{}

func newPartProgress(term ui.Terminal, printer progress.Printer) *partProgress {
	return &partProgress{
		term:    term,
		printer: printer,
		start:   time.Now(),
	}
}

func (p *partProgress) status(format string, args ...interface{}) {
	p.term.SetStatus([]string{
		fmt.Sprintf("[%s] ", ui.FormatDuration(time.Since(p.start))) + fmt.Sprintf(format, args...),
	})
}

func (p *partProgress) PartWritten(name string, done, total uint64) {
	if total > 0 {
		p.status("(%s) Wrote %s", ui.FormatPercent(done, total), ui.Quote(name))
	} else {
		p.status("(%s) Wrote %s", ui.FormatBytes(done), ui.Quote(name))
	}
	p.printer.VV("wrote %s", ui.Quote(name))
}

func (p *partProgress) PartJoined(name string, size uint64) {
	p.status("Joined %s", ui.Quote(name))
	p.printer.VV("joined %s (%s)", ui.Quote(name), ui.FormatBytes(size))
}

func (p *partProgress) Done(output string) {
	p.term.SetStatus(nil)
}
