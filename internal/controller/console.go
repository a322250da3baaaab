package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

const progName = "urler"

// Console implements UI on a cobra command's streams. Result lines go to
// stdout and diagnostics to stderr so output stays pipe-friendly.
type Console struct {
	cmd *cobra.Command
}

// NewConsole creates a Console bound to cmd's output streams.
func NewConsole(cmd *cobra.Command) *Console {
	return &Console{cmd: cmd}
}

// DisplayURL prints one URL per line.
func (c *Console) DisplayURL(ctx context.Context, url string) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.printf("%s\n", url)
}

// DisplayRendered prints a formatted rendering as-is. The renderer owns all
// newlines, including the final one.
func (c *Console) DisplayRendered(ctx context.Context, rendered string) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.printf("%s", rendered)
}

// DisplayDiff prints a component diff.
func (c *Console) DisplayDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.printf("%s", diff)
}

// ComponentFailed reports a failed component lookup during rendering.
func (c *Console) ComponentFailed(ctx context.Context, component string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	c.errorf("%s: %v (%s)\n", progName, err, component)
}

// InputFailed reports an input URL that produced no output.
func (c *Console) InputFailed(ctx context.Context, input string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	if input == "" {
		c.errorf("%s error: %v\n", progName, err)
		return
	}

	c.errorf("%s error: %v [%s]\n", progName, err, input)
}

func (c *Console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.cmd.OutOrStdout(), format, args...)
}

func (c *Console) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.cmd.ErrOrStderr(), format, args...)
}
