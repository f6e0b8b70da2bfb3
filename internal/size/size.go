// Package size parses human-written chunk sizes such as "50m" or "1 00 0 k".
package size

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode"

	"github.com/frism/frism/internal/errors"
)

var (
	// ErrZero is returned for sizes that evaluate to zero bytes.
	ErrZero = errors.New("size must be at least one byte")
	// ErrUnknownUnit is returned when the literal ends in a letter other than
	// k, m or g.
	ErrUnknownUnit = errors.New("unknown unit, use k, m or g")
)

// ParseError records a size literal that could not be parsed.
type ParseError struct {
	Literal string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid size argument %q: %v", e.Literal, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize concatenates args and removes all whitespace, so that a size may
// be typed with embedded spaces on the command line.
func Normalize(args []string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.Join(args, ""))
}

// Parse returns the number of bytes described by s: a decimal number,
// optionally followed by one of the case-insensitive units k (KiB), m (MiB)
// or g (GiB).
func Parse(s string) (uint64, error) {
	if s == "" {
		return 0, &ParseError{Literal: s, Err: errors.New("expected size, got empty string")}
	}

	numStr := s[:len(s)-1]
	var unit uint64 = 1

	switch s[len(s)-1] {
	case 'k', 'K':
		unit = 1 << 10
	case 'm', 'M':
		unit = 1 << 20
	case 'g', 'G':
		unit = 1 << 30
	default:
		if last := rune(s[len(s)-1]); unicode.IsLetter(last) && numStr != "" && isDigits(numStr) {
			return 0, &ParseError{Literal: s, Err: ErrUnknownUnit}
		}
		numStr = s
	}

	value, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Literal: s, Err: err}
	}

	hi, lo := bits.Mul64(value, unit)
	if hi != 0 {
		return 0, &ParseError{Literal: s, Err: strconv.ErrRange}
	}
	if lo == 0 {
		return 0, &ParseError{Literal: s, Err: ErrZero}
	}

	return lo, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
