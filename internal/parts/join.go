package parts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/frism/frism/internal/debug"
	"github.com/frism/frism/internal/errors"
)

// OutputName returns the file Join writes to: outfile if set, otherwise the
// last element of basename. Parts found in another directory are therefore
// joined into the current directory by default.
func OutputName(basename, outfile string) string {
	if outfile != "" {
		return outfile
	}
	return filepath.Base(basename)
}

// Join concatenates the parts basename.0, basename.1, ... into the file
// returned by OutputName. The first missing index ends the sequence, parts
// after a gap are ignored. If basename.0 does not exist, an empty output
// file is created.
//
// An error opening or reading an existing part aborts the operation and
// leaves the partially written output in place.
func Join(ctx context.Context, basename, outfile string, rep Reporter) (Stats, error) {
	rep = reporterOrNop(rep)
	output := OutputName(basename, outfile)
	stats := Stats{Output: output}

	out, err := os.Create(output)
	if err != nil {
		return stats, errors.Wrap(err, "Create")
	}

	err = joinParts(ctx, basename, out, rep, &stats)
	if err != nil {
		_ = out.Close()
		return stats, err
	}

	if err = out.Close(); err != nil {
		return stats, errors.Wrap(err, "Close")
	}

	debug.Log("joined %d parts (%d bytes) into %v", stats.Parts, stats.Bytes, output)
	rep.Done(output)

	return stats, nil
}

func joinParts(ctx context.Context, basename string, out *os.File, rep Reporter, stats *Stats) error {
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := Name(basename, index)
		exists, err := partExists(name)
		if err != nil {
			return err
		}
		if !exists {
			debug.Log("%v not found, no more parts", name)
			return nil
		}

		data, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrap(err, "ReadFile")
		}

		if _, err = out.Write(data); err != nil {
			return errors.Wrap(err, "Write")
		}

		stats.Parts++
		stats.Bytes += uint64(len(data))

		debug.Log("appended %v (%d bytes)", name, len(data))
		rep.PartJoined(name, uint64(len(data)))
	}
}

// partExists reports whether a part file is present. Errors other than a
// missing file are returned.
func partExists(name string) (bool, error) {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrap(err, "Stat")
	}
}
