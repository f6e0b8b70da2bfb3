package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frism/frism/internal/errors"
	"github.com/frism/frism/internal/parts"
	rtest "github.com/frism/frism/internal/test"
)

func partCount(t testing.TB, basename string) int {
	t.Helper()

	for i := 0; ; i++ {
		_, err := os.Stat(parts.Name(basename, i))
		if errors.Is(err, os.ErrNotExist) {
			return i
		}
		rtest.OK(t, err)
	}
}

func TestSplitJoinFile(t *testing.T) {
	dir := rtest.TempDir(t)
	data := rtest.Random(5, 5*1024+17)
	filename := rtest.WriteFile(t, dir, "data.bin", data)

	env, err := testRun(t, nil, "split", filename, "1", "k")
	rtest.OK(t, err)
	rtest.Equals(t, 6, partCount(t, filename))
	rtest.Assert(t, strings.Contains(env.stdout.String(), "Wrote 6 parts"),
		"unexpected output %q", env.stdout.String())

	output := filepath.Join(dir, "restored.bin")
	env, err = testRun(t, nil, "join", filename, output)
	rtest.OK(t, err)
	rtest.Equals(t, data, rtest.ReadFile(t, output))
	rtest.Assert(t, strings.Contains(env.stdout.String(), "Wrote to "+output),
		"unexpected output %q", env.stdout.String())
}

func TestSplitJoinStdin(t *testing.T) {
	for _, stream := range []bool{false, true} {
		dir := rtest.TempDir(t)
		data := rtest.Random(7, 10000)
		basename := filepath.Join(dir, "piped.bin")

		args := []string{"split", "-", basename, "3000"}
		if stream {
			args = append(args, "--stream")
		}

		_, err := testRun(t, data, args...)
		rtest.OK(t, err)
		rtest.Equals(t, 4, partCount(t, basename))

		rtest.Chdir(t, dir)
		_, err = testRun(t, nil, "join", basename)
		rtest.OK(t, err)
		rtest.Equals(t, data, rtest.ReadFile(t, basename))
	}
}

func TestJoinDefaultOutputName(t *testing.T) {
	partsDir := rtest.TempDir(t)
	workDir := rtest.TempDir(t)

	rtest.WriteFile(t, partsDir, "data.bin.0", []byte("foo"))
	rtest.WriteFile(t, partsDir, "data.bin.1", []byte("bar"))

	rtest.Chdir(t, workDir)
	_, err := testRun(t, nil, "join", filepath.Join(partsDir, "data.bin"))
	rtest.OK(t, err)

	rtest.Equals(t, []byte("foobar"), rtest.ReadFile(t, filepath.Join(workDir, "data.bin")))
}

func TestJoinWithoutParts(t *testing.T) {
	dir := rtest.TempDir(t)
	output := filepath.Join(dir, "empty.bin")

	_, err := testRun(t, nil, "join", filepath.Join(dir, "missing"), output)
	rtest.OK(t, err)
	rtest.Equals(t, []byte{}, rtest.ReadFile(t, output))
}

func TestSplitInvalidSize(t *testing.T) {
	dir := rtest.TempDir(t)
	filename := rtest.WriteFile(t, dir, "data.bin", []byte("foobar"))

	for _, size := range []string{"abc", "0", "10x"} {
		_, err := testRun(t, nil, "split", filename, size)
		rtest.Assert(t, errors.IsFatal(err), "expected fatal error for size %q, got %v", size, err)
		rtest.Assert(t, strings.Contains(err.Error(), `"`+size+`"`),
			"error %q does not name the literal %q", err, size)
		rtest.Equals(t, 0, partCount(t, filename))
	}
}

func TestSplitMissingFile(t *testing.T) {
	filename := filepath.Join(rtest.TempDir(t), "missing")

	_, err := testRun(t, nil, "split", filename, "10")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "expected not-exist error, got %v", err)
}

func TestUsageErrors(t *testing.T) {
	dir := rtest.TempDir(t)
	filename := rtest.WriteFile(t, dir, "data.bin", []byte("foobar"))

	for _, args := range [][]string{
		{},
		{"frobnicate", filename},
		{"split"},
		{"split", filename},
		{"split", "-"},
		{"split", "-", filepath.Join(dir, "stdin.bin")},
		{"join"},
		{"join", "a", "b", "c"},
		{"split", "--no-such-flag", filename, "10"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := testRun(t, []byte("stdin data"), args...)
			var usageErr *usageError
			rtest.Assert(t, errors.As(err, &usageErr), "expected usage error for %v, got %v", args, err)

			var stderr bytes.Buffer
			rtest.Equals(t, 1, exitCode(err, &stderr, nil))
			rtest.Assert(t, strings.Contains(stderr.String(), "Usage:"), "usage missing from %q", stderr.String())
		})
	}

	rtest.Equals(t, 0, partCount(t, filename))
	rtest.Equals(t, 0, partCount(t, filepath.Join(dir, "stdin.bin")))
}

func TestQuietAndVerbose(t *testing.T) {
	dir := rtest.TempDir(t)
	filename := rtest.WriteFile(t, dir, "data.bin", rtest.Random(3, 100))

	env, err := testRun(t, nil, "--quiet", "split", filename, "10")
	rtest.OK(t, err)
	rtest.Equals(t, "", env.stdout.String())

	env, err = testRun(t, nil, "-vv", "split", filename, "50")
	rtest.OK(t, err)
	rtest.Assert(t, strings.Contains(env.stdout.String(), "wrote "+parts.Name(filename, 1)),
		"expected per-part messages, got %q", env.stdout.String())

	_, err = testRun(t, nil, "-q", "-v", "split", filename, "10")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer

	rtest.Equals(t, 0, exitCode(nil, &stderr, nil))
	rtest.Equals(t, "", stderr.String())

	rtest.Equals(t, 1, exitCode(errors.Fatal("broken"), &stderr, nil))
	rtest.Equals(t, "Fatal: broken\n", stderr.String())

	stderr.Reset()
	rtest.Equals(t, 130, exitCode(errors.Wrap(context.Canceled, "Split"), &stderr, nil))

	stderr.Reset()
	logged := bytes.NewBufferString("library message\n")
	rtest.Equals(t, 1, exitCode(errors.New("unexpected"), &stderr, logged))
	rtest.Assert(t, strings.Contains(stderr.String(), "library message"),
		"logged messages missing from %q", stderr.String())
}
