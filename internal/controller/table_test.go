package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/curl/urler/internal/model"
)

func TestComponentTable(t *testing.T) {
	table := ComponentTable()

	for _, c := range m.Components() {
		assert.Contains(t, table, c.String())
	}

	// The url pseudo component is read only; path takes both mutations.
	lines := strings.Split(table, "\n")
	for _, line := range lines {
		if strings.Contains(line, "the complete URL") {
			assert.NotContains(t, line, "yes")
		}

		if strings.Contains(line, "leading slash") {
			assert.Equal(t, 2, strings.Count(line, "yes"))
		}
	}
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
