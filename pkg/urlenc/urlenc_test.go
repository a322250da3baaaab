package urlenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unreserved untouched", input: "AZaz09-._~", want: "AZaz09-._~"},
		{name: "space", input: "hello world", want: "hello%20world"},
		{name: "slash", input: "a/b", want: "a%2Fb"},
		{name: "reserved punctuation", input: "a=b&c?d#e", want: "a%3Db%26c%3Fd%23e"},
		{name: "percent itself", input: "100%", want: "100%25"},
		{name: "utf8 encoded bytewise", input: "å", want: "%C3%A5"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "slashes survive", input: "/a/b/c", want: "/a/b/c"},
		{name: "segment content escaped", input: "/a b/c", want: "/a%20b/c"},
		{name: "reserved escaped", input: "/a?b", want: "/a%3Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapePath(tt.input))
		})
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "space becomes plus", input: "two words", want: "two+words"},
		{name: "separators escaped too", input: "a=b&c=d", want: "a%3Db%26c%3Dd"},
		{name: "unreserved untouched", input: "plain-value_1", want: "plain-value_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeQuery(tt.input))
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "basic", input: "hello%20world", want: "hello world"},
		{name: "lowercase hex", input: "%2fpath", want: "/path"},
		{name: "plus stays plus", input: "a+b", want: "a+b"},
		{name: "stray percent copied through", input: "100%", want: "100%"},
		{name: "truncated escape copied through", input: "x%4", want: "x%4"},
		{name: "non hex escape copied through", input: "%zz", want: "%zz"},
		{name: "decoded control byte rejected", input: "%0a", wantErr: true},
		{name: "literal control byte rejected", input: "a\tb", wantErr: true},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unescape(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrControlByte)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	inputs := []string{"plain", "with space", "a/b?c=d&e", "blåbærsyltetøy"}

	for _, input := range inputs {
		got, err := Unescape(Escape(input))
		require.NoError(t, err)
		assert.Equal(t, input, got)
	}
}
