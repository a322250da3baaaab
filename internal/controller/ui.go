// Package controller provides output adapters for presenting transformed URLs.
package controller

import "context"

// UI abstracts where transformed URLs and their diagnostics end up.
// Implementations can print plainly or drive an interactive terminal.
type UI interface {
	// DisplayURL writes one result URL as its own output line.
	DisplayURL(ctx context.Context, url string)

	// DisplayRendered writes an already formatted rendering verbatim.
	DisplayRendered(ctx context.Context, rendered string)

	// DisplayDiff writes a component diff between input and output.
	DisplayDiff(ctx context.Context, diff string)

	// ComponentFailed reports a non-fatal component lookup failure during
	// format rendering.
	ComponentFailed(ctx context.Context, component string, err error)

	// InputFailed reports an input URL that could not produce any output.
	InputFailed(ctx context.Context, input string, err error)
}
