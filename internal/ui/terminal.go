// Package ui contains the output primitives shared by all frism commands.
package ui

// Terminal is used to write messages and display status lines which can be
// updated. See termstatus.Terminal for a concrete implementation.
type Terminal interface {
	// Print writes a line to the terminal. Appends a newline if not present.
	Print(line string)
	// Error writes an error to the terminal. Appends a newline if not present.
	Error(line string)
	// SetStatus replaces the status lines, nil removes them.
	SetStatus(lines []string)
	// CanUpdateStatus returns true if the terminal can update the status lines.
	CanUpdateStatus() bool
}
