package parts

import (
	"context"
	"io"
	"math"
	"os"

	"github.com/frism/frism/internal/debug"
	"github.com/frism/frism/internal/errors"
)

type notSeekableError struct {
	err error
}

func (e *notSeekableError) Error() string { return "source is not seekable: " + e.err.Error() }
func (e *notSeekableError) Unwrap() error { return e.err }

// IsNotSeekable reports whether err was returned by SplitFile because the
// source could not be seeked. Such sources can be split with SplitStream or
// SplitBytes instead.
func IsNotSeekable(err error) bool {
	var e *notSeekableError
	return errors.As(err, &e)
}

func checkChunkSize(chunkSize uint64) error {
	if chunkSize == 0 || chunkSize > math.MaxInt {
		return errors.WithStack(ErrInvalidChunkSize)
	}
	return nil
}

// partWriter creates the numbered parts of one split operation.
type partWriter struct {
	basename string
	total    uint64
	rep      Reporter

	stats Stats
}

// write stores buf as the next part. The part is synced and closed before
// write returns.
func (w *partWriter) write(buf []byte) error {
	name := Name(w.basename, w.stats.Parts)

	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "Create")
	}

	if _, err = f.Write(buf); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "Write")
	}

	if err = f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "Sync")
	}

	if err = f.Close(); err != nil {
		return errors.Wrap(err, "Close")
	}

	w.stats.Parts++
	w.stats.Bytes += uint64(len(buf))

	debug.Log("wrote %v (%d bytes, %d/%d)", name, len(buf), w.stats.Bytes, w.total)
	w.rep.PartWritten(name, w.stats.Bytes, w.total)

	return nil
}

// readChunks fills buf from rd and passes every non-empty window to fn. Only
// the last window may be shorter than buf.
func readChunks(ctx context.Context, rd io.Reader, buf []byte, fn func([]byte) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := io.ReadFull(rd, buf)
		if n > 0 {
			if werr := fn(buf[:n]); werr != nil {
				return werr
			}
		}

		switch {
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			return nil
		case err != nil:
			return errors.Wrap(err, "Read")
		}
	}
}

// SplitFile splits the file at filename into parts named after filename,
// reusing a single buffer of chunkSize bytes. If the file cannot be seeked
// to determine its size, the returned error satisfies IsNotSeekable.
//
// An error aborts the operation, parts written so far are kept.
func SplitFile(ctx context.Context, filename string, chunkSize uint64, rep Reporter) (Stats, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return Stats{}, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return Stats{}, errors.Wrap(err, "Open")
	}
	defer func() {
		_ = f.Close()
	}()

	return SplitReadSeeker(ctx, f, filename, chunkSize, rep)
}

// SplitReadSeeker is like SplitFile for a source which is already open. When
// rs cannot be seeked, nothing has been read from it and the returned error
// satisfies IsNotSeekable, so the caller can still pass rs to SplitStream.
func SplitReadSeeker(ctx context.Context, rs io.ReadSeeker, basename string, chunkSize uint64, rep Reporter) (Stats, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return Stats{}, err
	}

	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return Stats{}, errors.WithStack(&notSeekableError{err: err})
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return Stats{}, errors.WithStack(&notSeekableError{err: err})
	}

	debug.Log("splitting %v (%d bytes) into parts of %d bytes", basename, end, chunkSize)

	w := &partWriter{
		basename: basename,
		total:    uint64(end),
		rep:      reporterOrNop(rep),
	}

	buf := make([]byte, chunkSize)
	err = readChunks(ctx, rs, buf, w.write)
	return w.stats, err
}

// SplitBytes splits data into parts named after basename. Each part is a
// window of data, so no copy of the input is made.
func SplitBytes(ctx context.Context, data []byte, basename string, chunkSize uint64, rep Reporter) (Stats, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return Stats{}, err
	}

	w := &partWriter{
		basename: basename,
		total:    uint64(len(data)),
		rep:      reporterOrNop(rep),
	}

	debug.Log("splitting %d buffered bytes into parts of %d bytes named %v", len(data), chunkSize, basename)

	for offset := uint64(0); offset < uint64(len(data)); {
		if err := ctx.Err(); err != nil {
			return w.stats, err
		}

		n := min(chunkSize, uint64(len(data))-offset)
		if err := w.write(data[offset : offset+n]); err != nil {
			return w.stats, err
		}
		offset += n
	}

	return w.stats, nil
}

// SplitStream splits everything read from rd into parts named after
// basename. Only one buffer of chunkSize bytes is held in memory, the total
// size is unknown and reported as zero.
func SplitStream(ctx context.Context, rd io.Reader, basename string, chunkSize uint64, rep Reporter) (Stats, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return Stats{}, err
	}

	w := &partWriter{
		basename: basename,
		rep:      reporterOrNop(rep),
	}

	debug.Log("splitting stream into parts of %d bytes named %v", chunkSize, basename)

	buf := make([]byte, chunkSize)
	err := readChunks(ctx, rd, buf, w.write)
	return w.stats, err
}
