package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for raw mutation arguments.
var (
	// ErrSetSyntax reports a --set argument without a component=value shape.
	ErrSetSyntax = errors.New("invalid --set syntax, expected component=value")
	// ErrAppendTarget reports an --append argument naming a component other
	// than path or query.
	ErrAppendTarget = errors.New("--append supports path= and query= only")
)

// AppendTarget selects which component an AppendOp extends.
type AppendTarget int

const (
	// AppendPath appends a path segment.
	AppendPath AppendTarget = iota
	// AppendQuery appends a query key=value pair.
	AppendQuery
)

// String returns the component name of the append target.
func (a AppendTarget) String() string {
	if a == AppendQuery {
		return "query"
	}

	return "path"
}

// SetOp is a single --set request. Key holds the component name exactly as
// the user wrote it; resolution against the registry happens during
// execution so unknown names fail in the same place duplicate ones do.
type SetOp struct {
	Key    string
	Value  string
	Encode bool // false when written as component:=value
}

// AppendOp is a single --append request. Segment stays raw here; execution
// percent-encodes it before any concatenation.
type AppendOp struct {
	Target  AppendTarget
	Segment string
}

// MutationSet describes one run: the base URLs, an optional redirect,
// ordered set and append operations, an optional output template and the
// output flags. It is built once and shared read-only across the batch.
type MutationSet struct {
	URLs         []string
	Redirect     *string
	Sets         []SetOp
	Appends      []AppendOp
	Format       *string
	DecodeOutput bool
	Diff         bool
}

// ParseSetOp splits a raw --set argument into a SetOp. The component name
// must be non-empty and followed by "=" or ":="; everything after the
// separator, including nothing at all, is the value.
func ParseSetOp(raw string) (SetOp, error) {
	eq := strings.IndexByte(raw, '=')
	if eq < 1 {
		return SetOp{}, fmt.Errorf("%w: %q", ErrSetSyntax, raw)
	}

	op := SetOp{Key: raw[:eq], Value: raw[eq+1:], Encode: true}
	if strings.HasSuffix(op.Key, ":") {
		op.Key = strings.TrimSuffix(op.Key, ":")
		op.Encode = false
	}

	return op, nil
}

// ParseAppendOp splits a raw --append argument into an AppendOp. Only the
// path and query components accept appends; the prefix match is case
// insensitive like component lookup.
func ParseAppendOp(raw string) (AppendOp, error) {
	switch {
	case hasFoldPrefix(raw, "path="):
		return AppendOp{Target: AppendPath, Segment: raw[len("path="):]}, nil
	case hasFoldPrefix(raw, "query="):
		return AppendOp{Target: AppendQuery, Segment: raw[len("query="):]}, nil
	}

	return AppendOp{}, fmt.Errorf("%w: %q", ErrAppendTarget, raw)
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
