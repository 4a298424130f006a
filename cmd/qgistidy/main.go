package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/qgistidy/internal/cli"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(qgistidy.ExitProcessingError)
		}
	}()

	if os.Getenv("QGISTIDY_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		// A dry run that found changes is a result, not a failure.
		if !errors.Is(err, qgistidy.ErrWouldChange) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(qgistidy.ExitCodeForError(err))
	}
}
