package termstatus

import (
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/frism/frism/internal/ui"
)

var _ ui.Terminal = &Terminal{}

// Terminal is used to write messages and display status lines which can be
// updated. When the output is redirected to a file, the status lines are not
// printed.
type Terminal struct {
	wr              io.Writer
	fd              uintptr
	errWriter       io.Writer
	msg             chan message
	status          chan status
	canUpdateStatus bool
	minUpdatePause  time.Duration

	lastStatus []string

	// closed when Run returns, sends and barriers are skipped afterwards
	closed chan struct{}
}

type message struct {
	line    string
	err     bool
	barrier chan struct{}
}

type status struct {
	lines []string
}

type fder interface {
	Fd() uintptr
}

// Start runs term in a new goroutine. The returned function flushes pending
// output and stops the goroutine.
func Start(term *Terminal) (*Terminal, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		term.Run(ctx)
	}()

	return term, func() {
		term.Flush()
		cancel()
		<-done
	}
}

// New returns a new Terminal for wr. Status lines are only shown when wr is
// the *os.File of a terminal that supports cursor movement, and
// disableStatus is false. Normal output (Print) is written to wr, errors to
// errWriter.
func New(wr io.Writer, errWriter io.Writer, disableStatus bool) *Terminal {
	t := &Terminal{
		wr:             wr,
		errWriter:      errWriter,
		msg:            make(chan message),
		status:         make(chan status),
		closed:         make(chan struct{}),
		minUpdatePause: time.Second / 60,
	}

	if disableStatus {
		return t
	}

	if d, ok := wr.(fder); ok && CanUpdateStatus(d.Fd()) {
		t.canUpdateStatus = true
		t.fd = d.Fd()
	}

	return t
}

// SetMinUpdatePause limits how often the status lines are redrawn. Updates
// arriving faster are coalesced and only the latest one is shown. It must
// be called before Run.
func (t *Terminal) SetMinUpdatePause(d time.Duration) {
	t.minUpdatePause = d
}

// CanUpdateStatus return whether the status output is updated in place.
func (t *Terminal) CanUpdateStatus() bool {
	return t.canUpdateStatus
}

// Run updates the screen. It should be run in a separate goroutine. When
// ctx is cancelled, the status lines are cleanly removed.
func (t *Terminal) Run(ctx context.Context) {
	defer close(t.closed)
	if t.canUpdateStatus {
		t.run(ctx)
		return
	}

	t.runWithoutStatus(ctx)
}

// run listens on the channels and updates the terminal screen.
func (t *Terminal) run(ctx context.Context) {
	var (
		pending    []string
		hasPending bool
		lastRedraw time.Time
	)
	redraw := time.NewTimer(time.Hour)
	redraw.Stop()
	defer redraw.Stop()

	for {
		select {
		case <-ctx.Done():
			t.clearStatus()
			return

		case msg := <-t.msg:
			if msg.barrier != nil {
				if hasPending {
					t.writeStatus(pending)
					hasPending = false
				}
				close(msg.barrier)
				continue
			}

			t.clearStatus()
			t.writeMessage(msg)
			t.redrawStatus()

		case stat := <-t.status:
			if wait := t.minUpdatePause - time.Since(lastRedraw); wait > 0 {
				if !hasPending {
					redraw.Reset(wait)
				}
				pending, hasPending = stat.lines, true
				continue
			}
			t.writeStatus(stat.lines)
			lastRedraw = time.Now()

		case <-redraw.C:
			if hasPending {
				t.writeStatus(pending)
				hasPending = false
				lastRedraw = time.Now()
			}
		}
	}
}

func (t *Terminal) writeMessage(msg message) {
	dst := t.wr
	if msg.err {
		dst = t.errWriter
	}

	if _, err := io.WriteString(dst, msg.line); err != nil {
		t.writeError(err)
	}
}

func (t *Terminal) writeError(err error) {
	_, _ = io.WriteString(t.errWriter, "write failed: "+err.Error()+"\n")
}

// writeStatus replaces the current status lines by lines.
func (t *Terminal) writeStatus(lines []string) {
	t.clearStatus()
	t.lastStatus = sanitizeLines(lines, terminalWidth(t.fd))
	t.redrawStatus()
}

// clearStatus removes the status lines from the screen, the cursor ends up
// at the start of the first status line.
func (t *Terminal) clearStatus() {
	if len(t.lastStatus) == 0 {
		return
	}

	if err := clearLines(t.wr, len(t.lastStatus)-1); err != nil {
		t.writeError(err)
	}
}

func (t *Terminal) redrawStatus() {
	if len(t.lastStatus) == 0 {
		return
	}

	if _, err := io.WriteString(t.wr, strings.Join(t.lastStatus, "\n")); err != nil {
		t.writeError(err)
	}
}

// runWithoutStatus listens on the channels and just prints out the messages,
// without status lines.
func (t *Terminal) runWithoutStatus(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-t.msg:
			if msg.barrier != nil {
				close(msg.barrier)
				continue
			}
			t.writeMessage(msg)
		case <-t.status:
		}
	}
}

// Flush waits until all pending messages have been written.
func (t *Terminal) Flush() {
	ch := make(chan struct{})
	select {
	case t.msg <- message{barrier: ch}:
	case <-t.closed:
		return
	}

	select {
	case <-ch:
	case <-t.closed:
	}
}

func (t *Terminal) print(line string, isErr bool) {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	select {
	case t.msg <- message{line: line, err: isErr}:
	case <-t.closed:
	}
}

// Print writes a line to the terminal.
func (t *Terminal) Print(line string) {
	t.print(line, false)
}

// Error writes an error to the terminal.
func (t *Terminal) Error(line string) {
	t.print(line, true)
}

// SetStatus updates the status lines. An empty slice removes them.
func (t *Terminal) SetStatus(lines []string) {
	if !t.canUpdateStatus {
		return
	}

	select {
	case t.status <- status{lines: append([]string(nil), lines...)}:
	case <-t.closed:
	}
}

// sanitizeLines replaces line breaks within the status lines and truncates
// them to the terminal width.
func sanitizeLines(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(strings.ReplaceAll(line, "\n", " "), " ")
		if width > 0 {
			line = ui.Truncate(line, width-1)
		}
		out = append(out, line)
	}
	return out
}

// terminalWidth returns the width of the terminal at fd, or zero if it
// cannot be determined.
func terminalWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return w
}
