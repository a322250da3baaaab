package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newTestConsole() (*Console, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return NewConsole(cmd), out, errOut
}

func TestConsoleDisplayURL(t *testing.T) {
	console, out, errOut := newTestConsole()

	console.DisplayURL(context.Background(), "https://example.com/")
	console.DisplayURL(context.Background(), "https://other.example/")

	assert.Equal(t, "https://example.com/\nhttps://other.example/\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleDisplayRenderedKeepsNewlines(t *testing.T) {
	console, out, _ := newTestConsole()

	console.DisplayRendered(context.Background(), "host: example.com\n")

	assert.Equal(t, "host: example.com\n", out.String())
}

func TestConsoleDisplayDiff(t *testing.T) {
	console, out, _ := newTestConsole()

	console.DisplayDiff(context.Background(), "-a\n+b\n")

	assert.Equal(t, "-a\n+b\n", out.String())
}

func TestConsoleComponentFailed(t *testing.T) {
	console, out, errOut := newTestConsole()

	console.ComponentFailed(context.Background(), "port", errors.New("bad port number"))

	assert.Empty(t, out.String())
	assert.Equal(t, "urler: bad port number (port)\n", errOut.String())
}

func TestConsoleInputFailed(t *testing.T) {
	console, _, errOut := newTestConsole()

	console.InputFailed(context.Background(), "%%%", errors.New("not enough input for a URL"))
	assert.Equal(t, "urler error: not enough input for a URL [%%%]\n", errOut.String())

	errOut.Reset()

	console.InputFailed(context.Background(), "", errors.New("not enough input for a URL"))
	assert.Equal(t, "urler error: not enough input for a URL\n", errOut.String())
}

func TestConsoleHonorsCancelledContext(t *testing.T) {
	console, out, errOut := newTestConsole()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	console.DisplayURL(ctx, "https://example.com/")
	console.DisplayRendered(ctx, "x")
	console.DisplayDiff(ctx, "x")
	console.ComponentFailed(ctx, "host", errors.New("boom"))
	console.InputFailed(ctx, "x", errors.New("boom"))

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}
