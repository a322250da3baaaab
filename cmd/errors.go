package cmd

import (
	"errors"

	"github.com/curl/urler/internal/domain"
	m "github.com/curl/urler/internal/model"
)

// Process exit codes. Each failure class keeps its own stable code so
// scripts can branch on the status instead of parsing stderr.
const (
	// exitOK means every requested URL was produced.
	exitOK = 0

	// exitFile means a --url-file could not be read.
	exitFile = 1

	// exitAppend means an --append argument named an unsupported target.
	exitAppend = 2

	// exitArg means a command line option missed its argument.
	exitArg = 3

	// exitFlag means an unknown or misused command line flag.
	exitFlag = 4

	// exitSet means a --set problem: bad syntax, unknown or duplicate
	// component.
	exitSet = 5

	// exitMem is reserved for allocation failure.
	exitMem = 6

	// exitURL means no URL could be produced from the given input.
	exitURL = 7

	// exitEngine means the URL engine rejected a mutation.
	exitEngine = 8
)

// exitError carries the process exit code for a failed command. Printed
// marks errors whose diagnostics already went to stderr during the run.
type exitError struct {
	Err     error
	Code    int
	Printed bool
}

// Error implements the error interface.
func (e *exitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *exitError) Unwrap() error {
	return e.Err
}

// exitStatus maps a command error to its exit code and reports whether its
// diagnostics were already printed.
func exitStatus(err error) (int, bool) {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.Code, ee.Printed
	}

	switch {
	case errors.Is(err, m.ErrSetSyntax),
		errors.Is(err, domain.ErrUnknownComponent),
		errors.Is(err, domain.ErrDuplicateComponent):
		return exitSet, false
	case errors.Is(err, m.ErrAppendTarget):
		return exitAppend, false
	case errors.Is(err, domain.ErrEngineFailed):
		return exitEngine, false
	case errors.Is(err, domain.ErrIncompleteURL):
		// Every failed input was reported as it happened.
		return exitURL, true
	}

	return exitFile, false
}
