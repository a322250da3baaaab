package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/curl/urler/internal/model"
)

func TestComponentsCmd_ListsEveryComponent(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newComponentsCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"components"})

	require.NoError(t, cmd.Execute())

	for _, c := range m.Components() {
		assert.Contains(t, out.String(), c.String())
	}

	assert.Contains(t, out.String(), "COMPONENT")
	assert.Contains(t, out.String(), "APPEND")
}

func TestComponentsCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newComponentsCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"components", "extra"})

	require.Error(t, cmd.Execute())
}
