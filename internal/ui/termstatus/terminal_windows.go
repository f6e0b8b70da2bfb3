//go:build windows

package termstatus

import (
	"golang.org/x/sys/windows"
)

// CanUpdateStatus returns true if status lines can be printed. Consoles
// must accept the escape sequences written by clearLines, so virtual
// terminal processing is enabled on them. A pipe is assumed to be mintty or
// cygwin, which understand the sequences as well.
func CanUpdateStatus(fd uintptr) bool {
	h := windows.Handle(fd)

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		ft, err := windows.GetFileType(h)
		return err == nil && ft == windows.FILE_TYPE_PIPE
	}

	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
