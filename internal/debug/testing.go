package debug

import (
	"log"
	"testing"
)

// TestLogTo directs the debug log to l for the duration of the test.
func TestLogTo(t testing.TB, l *log.Logger) {
	prevLogger, prevEnabled := opts.logger, opts.isEnabled
	opts.logger = l
	opts.isEnabled = true

	t.Cleanup(func() {
		opts.logger, opts.isEnabled = prevLogger, prevEnabled
	})
}
