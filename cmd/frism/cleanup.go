package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/frism/frism/internal/debug"
)

var cleanupHandlers struct {
	sync.Mutex
	list []func() error
}

// AddCleanupHandler registers f to be run before frism exits.
func AddCleanupHandler(f func() error) {
	cleanupHandlers.Lock()
	defer cleanupHandlers.Unlock()

	cleanupHandlers.list = append(cleanupHandlers.list, f)
}

// runCleanupHandlers runs all registered cleanup handlers in reverse order.
func runCleanupHandlers() {
	cleanupHandlers.Lock()
	defer cleanupHandlers.Unlock()

	for i := len(cleanupHandlers.list) - 1; i >= 0; i-- {
		if err := cleanupHandlers.list[i](); err != nil {
			Warnf("error in cleanup handler: %v\n", err)
		}
	}
	cleanupHandlers.list = nil
}

func createGlobalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	go cleanupHandler(ch, cancel)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	return ctx
}

// cleanupHandler cancels the global context on SIGINT or SIGTERM. The
// running operation stops before the next part.
func cleanupHandler(c <-chan os.Signal, cancel context.CancelFunc) {
	s := <-c
	debug.Log("signal %v received, cleaning up", s)
	Warnf("\nsignal %v received, cleaning up\n", s)

	if val, _ := os.LookupEnv("FRISM_DEBUG_STACKTRACE_SIGINT"); val != "" {
		_, _ = os.Stderr.WriteString("\n--- STACKTRACE START ---\n\n")
		_, _ = os.Stderr.WriteString(debug.DumpStacktrace())
		_, _ = os.Stderr.WriteString("\n--- STACKTRACE END ---\n")
	}

	cancel()
}

// Exit terminates the process with the given exit code.
func Exit(code int) {
	debug.Log("exiting with status code %d", code)
	os.Exit(code)
}
