// Package diag provides structured logging for test harnesses and
// executable examples. It is never imported by mutex, semaphore, queue,
// flags, or thread themselves — those packages carry no logging and no
// global error state, by contract, so every diagnostic event here is
// emitted from outside the primitive call paths: conformance suites and
// godoc examples observing a scenario from the caller's side.
package diag

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the concrete logger type every caller in this module uses.
type Logger = logiface.Logger[*stumpy.Event]

// New builds a JSON-line logger writing to w (os.Stderr if nil), grounded
// on the stumpy factory pattern: WithStumpy configures the line encoding,
// WithLevel sets the minimum enabled level.
func New(w io.Writer, level logiface.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	)
}

// Default is a package-level logger at info level, for examples and
// conformance runs that don't need a custom writer.
var Default = New(nil, logiface.LevelInformational)
