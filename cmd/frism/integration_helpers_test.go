package main

import (
	"bytes"
	"context"
	"testing"
	"time"
)

type testEnvironment struct {
	stdin          *bytes.Reader
	stdout, stderr bytes.Buffer
}

func newTestEnvironment(stdin []byte) *testEnvironment {
	return &testEnvironment{stdin: bytes.NewReader(stdin)}
}

func (env *testEnvironment) globalOptions() *GlobalOptions {
	return &GlobalOptions{
		stdin:          env.stdin,
		stdout:         &env.stdout,
		stderr:         &env.stderr,
		minUpdatePause: time.Second / 60,
	}
}

// run executes frism with args like main would, but returns the error
// instead of exiting.
func (env *testEnvironment) run(t testing.TB, args ...string) error {
	t.Helper()
	t.Logf("running frism %v", args)

	cmd := newRootCommand(env.globalOptions())
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.TODO())
}

func testRun(t testing.TB, stdin []byte, args ...string) (*testEnvironment, error) {
	t.Helper()

	env := newTestEnvironment(stdin)
	err := env.run(t, args...)
	return env, err
}
