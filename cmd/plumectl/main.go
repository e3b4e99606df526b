// Command plumectl drives a Manager through configure, negotiate, feed, and
// a fixed number of run steps from a set of YAML configuration files,
// printing the active parameter set once negotiation completes (spec.md §6, the Go
// analogue of the teacher's own small CLI entry points).
package main

import (
	"fmt"
	"os"

	"github.com/ecmwf/plume/internal/perr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plumectl:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a perr.Kind to a process exit status (spec.md §6):
// BadValue/Precondition -> 2, NotFound/TypeMismatch -> 3, LibraryLoad -> 4,
// anything else -> 1.
func exitCodeFor(err error) int {
	pe, ok := err.(*perr.Error)
	if !ok {
		return 1
	}
	switch pe.Kind {
	case perr.BadValue, perr.Precondition:
		return 2
	case perr.NotFound, perr.TypeMismatch:
		return 3
	case perr.LibraryLoad:
		return 4
	default:
		return 1
	}
}
