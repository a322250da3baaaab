package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curl/urler/internal/domain"
	m "github.com/curl/urler/internal/model"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantPrinted bool
	}{
		{
			"set syntax",
			fmt.Errorf("%w: %q", m.ErrSetSyntax, "novalue"),
			exitSet,
			false,
		},
		{
			"unknown component",
			fmt.Errorf("%w: %s", domain.ErrUnknownComponent, "bogus"),
			exitSet,
			false,
		},
		{
			"duplicate component",
			fmt.Errorf("%w (%s)", domain.ErrDuplicateComponent, "host"),
			exitSet,
			false,
		},
		{
			"append target",
			fmt.Errorf("%w: %q", m.ErrAppendTarget, "host=x"),
			exitAppend,
			false,
		},
		{
			"engine failure",
			fmt.Errorf("%w: bad port", domain.ErrEngineFailed),
			exitEngine,
			false,
		},
		{
			"incomplete URL already reported",
			domain.ErrIncompleteURL,
			exitURL,
			true,
		},
		{
			"explicit exit error",
			&exitError{Err: errors.New("only one --get is supported"), Code: exitFlag},
			exitFlag,
			false,
		},
		{
			"explicit printed exit error",
			&exitError{Err: errors.New("boom"), Code: exitEngine, Printed: true},
			exitEngine,
			true,
		},
		{
			"wrapped exit error",
			fmt.Errorf("run failed: %w", &exitError{Err: errors.New("x"), Code: exitFile}),
			exitFile,
			false,
		},
		{
			"unclassified error",
			errors.New("something else"),
			exitFile,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, printed := exitStatus(tt.err)
			assert.Equal(t, tt.wantCode, code, "code")
			assert.Equal(t, tt.wantPrinted, printed, "printed")
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []int{exitOK, exitFile, exitAppend, exitArg, exitFlag, exitSet, exitMem, exitURL, exitEngine}

	seen := map[int]bool{}
	for _, code := range codes {
		assert.False(t, seen[code], "code %d assigned twice", code)
		seen[code] = true
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &exitError{Err: inner, Code: exitFlag}

	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)
}
