// Package engine provides the URL engine boundary: parsing, component
// access and percent-coding live behind the Engine and Handle interfaces so
// the mutation pipeline can run against a deterministic fake in tests.
package engine

import (
	"errors"

	m "github.com/curl/urler/internal/model"
)

// Flags adjust individual Set and Get calls.
type Flags uint

const (
	// GuessScheme lets Set of the url component infer a scheme for
	// scheme-less input instead of failing.
	GuessScheme Flags = 1 << iota
	// NonSupportScheme accepts schemes outside the well known set.
	NonSupportScheme
	// URLEncode percent-encodes the value before it is stored.
	URLEncode
	// URLDecode percent-decodes the value before it is returned.
	URLDecode
	// DefaultPort makes a port Get fall back to the scheme default when no
	// explicit port is present.
	DefaultPort
)

// ErrAbsent marks a component that is legitimately unset. It is a normal
// Get outcome, not a failure.
var ErrAbsent = errors.New("component not set")

// Handle is one engine-managed URL under mutation. Handles are cheap,
// single use and never shared between inputs.
type Handle interface {
	// Set assigns a component. Setting the url component parses value as a
	// whole URL; on a handle that already has state a scheme-less value is
	// resolved against it as a reference. A failed Set leaves the previous
	// state untouched.
	Set(c m.Component, value string, flags Flags) error
	// Get returns a component in its encoded wire form unless URLDecode is
	// given. Unset components report ErrAbsent.
	Get(c m.Component, flags Flags) (string, error)
}

// Engine creates handles and exposes the percent-coding primitives used by
// append normalization.
type Engine interface {
	New() Handle
	Escape(s string) string
	Unescape(s string) (string, error)
}
