package termstatus

import "io"

const (
	posixMoveCursorHome = "\r"
	posixMoveCursorUp   = "\x1b[1A"
	posixClearLine      = "\x1b[2K"
)

// clearLines clears the current line and the n lines above. Afterwards the
// cursor is positioned at the start of the first cleared line.
func clearLines(wr io.Writer, n int) error {
	if _, err := io.WriteString(wr, posixMoveCursorHome+posixClearLine); err != nil {
		return err
	}

	for ; n > 0; n-- {
		if _, err := io.WriteString(wr, posixMoveCursorUp+posixClearLine); err != nil {
			return err
		}
	}
	return nil
}
