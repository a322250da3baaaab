// Package domain implements the URL mutation pipeline: applying set, append
// and redirect operations to a URL and rendering the result.
package domain

import "errors"

// Pipeline error taxonomy. Duplicate components, unknown components and
// engine failures abort the whole run; an incomplete URL only fails the
// input that produced it and the batch moves on.
var (
	// ErrDuplicateComponent reports a component targeted by more than one
	// set operation in the same run.
	ErrDuplicateComponent = errors.New("a component can only be set once per URL")

	// ErrUnknownComponent reports a set operation naming no known component.
	ErrUnknownComponent = errors.New("set unknown component")

	// ErrEngineFailed wraps an engine error raised while applying mutations.
	ErrEngineFailed = errors.New("engine failure")

	// ErrIncompleteURL reports an input whose components do not add up to a
	// whole URL.
	ErrIncompleteURL = errors.New("not enough input for a URL")
)
