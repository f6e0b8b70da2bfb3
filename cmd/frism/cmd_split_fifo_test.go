//go:build unix

package main

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/frism/frism/internal/parts"
	rtest "github.com/frism/frism/internal/test"
)

func TestSplitNamedPipe(t *testing.T) {
	for _, stream := range []bool{false, true} {
		name := "buffered"
		if stream {
			name = "stream"
		}

		t.Run(name, func(t *testing.T) {
			fifo := filepath.Join(rtest.TempDir(t), "fifo")
			if err := syscall.Mkfifo(fifo, 0600); err != nil {
				t.Skipf("unable to create named pipe: %v", err)
			}

			data := rtest.Random(23, 25)
			writeErr := make(chan error, 1)
			go func() {
				f, err := os.OpenFile(fifo, os.O_WRONLY, 0)
				if err != nil {
					writeErr <- err
					return
				}
				_, err = f.Write(data)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				writeErr <- err
			}()

			type result struct {
				stats parts.Stats
				err   error
			}
			done := make(chan result, 1)
			go func() {
				stats, err := splitFile(context.TODO(), SplitOptions{Stream: stream}, fifo, 10, nil)
				done <- result{stats, err}
			}()

			var res result
			select {
			case res = <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("splitting the named pipe did not finish")
			}

			rtest.OK(t, res.err)
			rtest.OK(t, <-writeErr)
			rtest.Equals(t, 3, res.stats.Parts)
			rtest.Equals(t, uint64(len(data)), res.stats.Bytes)

			var joined []byte
			for i := 0; i < res.stats.Parts; i++ {
				joined = append(joined, rtest.ReadFile(t, parts.Name(fifo, i))...)
			}
			rtest.Equals(t, data, joined)
		})
	}
}
