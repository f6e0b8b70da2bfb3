package termstatus

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	rtest "github.com/frism/frism/internal/test"
)

func TestPrintWithoutStatus(t *testing.T) {
	var stdout, stderr bytes.Buffer

	term, cancel := Start(New(&stdout, &stderr, false))
	rtest.Assert(t, !term.CanUpdateStatus(), "buffer must not support status lines")

	term.Print("foo")
	term.SetStatus([]string{"status is dropped"})
	term.Error("bar\n")
	term.Print("baz\n")
	cancel()

	rtest.Equals(t, "foo\nbaz\n", stdout.String())
	rtest.Equals(t, "bar\n", stderr.String())
}

func TestStatusLines(t *testing.T) {
	var stdout, stderr bytes.Buffer

	term := New(&stdout, &stderr, false)
	term.canUpdateStatus = true
	term.SetMinUpdatePause(0)
	_, cancel := Start(term)

	term.SetStatus([]string{"(50.00%) Wrote a.0"})
	term.Print("message")
	term.SetStatus([]string{"(100.00%) Wrote a.1"})
	cancel()

	want := "(50.00%) Wrote a.0" +
		"\r\x1b[2K" + "message\n" + "(50.00%) Wrote a.0" +
		"\r\x1b[2K" + "(100.00%) Wrote a.1" +
		"\r\x1b[2K"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Errorf("output differs (-want +got):\n%s", diff)
	}
	rtest.Equals(t, "", stderr.String())
}

func TestPrintAfterShutdown(t *testing.T) {
	var stdout bytes.Buffer

	term, cancel := Start(New(&stdout, &stdout, false))
	cancel()

	// must neither block nor panic
	term.Print("late")
	term.SetStatus([]string{"late"})
	term.Flush()

	rtest.Equals(t, "", stdout.String())
}

func TestSanitizeLines(t *testing.T) {
	var tests = []struct {
		lines []string
		width int
		want  []string
	}{
		{nil, 80, []string{}},
		{[]string{"foo\nbar"}, 80, []string{"foo bar"}},
		{[]string{"trailing  "}, 0, []string{"trailing"}},
		{[]string{"0123456789"}, 6, []string{"01234"}},
	}

	for _, test := range tests {
		rtest.Equals(t, test.want, sanitizeLines(test.lines, test.width))
	}
}

func TestClearLines(t *testing.T) {
	var buf bytes.Buffer
	rtest.OK(t, clearLines(&buf, 2))
	rtest.Equals(t, "\r\x1b[2K\x1b[1A\x1b[2K\x1b[1A\x1b[2K", buf.String())
}
