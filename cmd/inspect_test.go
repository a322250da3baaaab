package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCmd_NeedsTerminal(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newInspectCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"inspect", "https://example.com/"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInspectCmd_AtMostOneURL(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newInspectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"inspect", "https://a.example/", "https://b.example/"})

	require.Error(t, cmd.Execute())
}
