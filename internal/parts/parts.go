// Package parts splits byte sources into numbered part files and joins such
// parts back together.
//
// A family of parts shares a basename. Part i is stored in the file
// "<basename>.<i>", indices start at zero and have no gaps. Every part holds
// exactly the chunk size in bytes, except for the last one, which holds the
// remainder. No metadata is stored besides the file names, so joining relies
// on reading parts in increasing index order.
package parts

import (
	"strconv"

	"github.com/frism/frism/internal/errors"
)

// ErrInvalidChunkSize is returned by the splitters for a chunk size of zero
// or one that does not fit into memory.
var ErrInvalidChunkSize = errors.New("chunk size must be at least one byte")

// Name returns the file name of the part with the given index.
func Name(basename string, index int) string {
	return basename + "." + strconv.Itoa(index)
}

// Stats summarizes a split or join operation.
type Stats struct {
	// Parts is the number of parts written or joined.
	Parts int
	// Bytes is the number of bytes stored in those parts.
	Bytes uint64
	// Output is the file written by Join, it is empty after a split.
	Output string
}

// Reporter is notified about the progress of an operation. Methods are
// called synchronously from the goroutine running the operation.
type Reporter interface {
	// PartWritten is called after a part has been written and closed. done
	// is the number of bytes consumed from the source so far, total is the
	// size of the source, or zero if it is not known in advance.
	PartWritten(name string, done, total uint64)
	// PartJoined is called after a part has been appended to the output.
	PartJoined(name string, size uint64)
	// Done is called once the output file of a join is complete.
	Done(output string)
}

// NopReporter discards all progress information.
type NopReporter struct{}

var _ Reporter = NopReporter{}

func (NopReporter) PartWritten(string, uint64, uint64) {}
func (NopReporter) PartJoined(string, uint64)          {}
func (NopReporter) Done(string)                        {}

func reporterOrNop(rep Reporter) Reporter {
	if rep == nil {
		return NopReporter{}
	}
	return rep
}
