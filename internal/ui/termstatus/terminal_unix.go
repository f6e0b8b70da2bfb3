//go:build !windows

package termstatus

import (
	"os"

	"golang.org/x/term"
)

// CanUpdateStatus returns true if status lines can be printed, the process
// output is not redirected to a file or pipe.
func CanUpdateStatus(fd uintptr) bool {
	if !term.IsTerminal(int(fd)) {
		return false
	}
	t := os.Getenv("TERM")
	if t == "" {
		return false
	}
	return t != "dumb"
}
