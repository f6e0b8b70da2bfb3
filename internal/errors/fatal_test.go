package errors_test

import (
	"io/fs"
	"testing"

	"github.com/frism/frism/internal/errors"
)

func TestFatal(t *testing.T) {
	for _, v := range []struct {
		err      error
		expected bool
	}{
		{errors.Fatal("broken"), true},
		{errors.Fatalf("broken %d", 42), true},
		{errors.Wrap(errors.Fatal("broken"), "split"), true},
		{errors.New("error"), false},
		{nil, false},
	} {
		if errors.IsFatal(v.err) != v.expected {
			t.Fatalf("IsFatal for %q, expected: %v, got: %v", v.err, v.expected, errors.IsFatal(v.err))
		}
	}
}

func TestFatalfKeepsUnderlyingError(t *testing.T) {
	fatal := errors.Fatalf("open part %v failed: %v", "data.bin.3", fs.ErrPermission)

	if fatal.Error() != "Fatal: open part data.bin.3 failed: permission denied" {
		t.Errorf("unexpected error message: %v", fatal.Error())
	}

	if !errors.Is(fatal, fs.ErrPermission) {
		t.Error("fatal error should wrap the underlying error")
	}
}
