package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

// baseFlags parse whole URLs the permissive way: scheme-less input gets a
// guessed scheme and nonstandard schemes are allowed through.
const baseFlags = engine.GuessScheme | engine.NonSupportScheme

// Executor applies one MutationSet to one URL.
type Executor interface {
	// Execute builds a handle from base (nil means start empty) and applies
	// the redirect, set and append operations in that order.
	Execute(ctx context.Context, mset m.MutationSet, base *string) (engine.Handle, error)
}

type executor struct {
	eng engine.Engine
}

// NewExecutor constructs an Executor backed by eng.
func NewExecutor(eng engine.Engine) Executor {
	return &executor{eng: eng}
}

func (e *executor) Execute(ctx context.Context, mset m.MutationSet, base *string) (engine.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := e.eng.New()

	// A base that does not parse is not fatal here. The handle simply stays
	// empty and rendering decides later whether enough components exist.
	if base != nil {
		if err := h.Set(m.ComponentURL, *base, baseFlags); err != nil {
			slog.Debug("Base URL rejected", "url", *base, "error", err)
		}
	}

	if mset.Redirect != nil {
		if err := h.Set(m.ComponentURL, *mset.Redirect, baseFlags); err != nil {
			slog.Error("Failed to apply redirect", "redirect", *mset.Redirect, "error", err)
			return nil, fmt.Errorf("%w: redirect %q: %v", ErrEngineFailed, *mset.Redirect, err)
		}
	}

	if err := e.applySets(h, mset.Sets); err != nil {
		return nil, err
	}

	if err := e.applyAppends(h, mset.Appends); err != nil {
		return nil, err
	}

	return h, nil
}

// applySets applies every set operation, enforcing that each component is
// assigned at most once per URL. The whole URL is only assignable through a
// base or redirect, never through a set operation.
func (e *executor) applySets(h engine.Handle, sets []m.SetOp) error {
	var assigned [m.NumComponents]bool

	for _, op := range sets {
		c, ok := m.LookupComponent(op.Key)
		if !ok || c == m.ComponentURL {
			return fmt.Errorf("%w: %s", ErrUnknownComponent, op.Key)
		}

		if assigned[c] {
			return fmt.Errorf("%w (%s)", ErrDuplicateComponent, c)
		}

		assigned[c] = true

		flags := engine.NonSupportScheme
		if op.Encode {
			flags |= engine.URLEncode
		}

		if err := h.Set(c, op.Value, flags); err != nil {
			slog.Error("Failed to set component", "component", c.String(), "value", op.Value, "error", err)
			return fmt.Errorf("%w: set %s: %v", ErrEngineFailed, c, err)
		}
	}

	return nil
}

// applyAppends extends path and query, path appends first, each group in
// input order.
func (e *executor) applyAppends(h engine.Handle, appends []m.AppendOp) error {
	for _, target := range []m.AppendTarget{m.AppendPath, m.AppendQuery} {
		for _, op := range appends {
			if op.Target != target {
				continue
			}

			var err error
			if target == m.AppendPath {
				err = e.appendPath(h, op.Segment)
			} else {
				err = e.appendQuery(h, op.Segment)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}

// appendPath adds one encoded segment to the path. Encoding happens before
// the join so the inserted separator never gets encoded itself.
func (e *executor) appendPath(h engine.Handle, segment string) error {
	current, err := currentComponent(h, m.ComponentPath)
	if err != nil {
		return err
	}

	joined := current
	if !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	joined += e.eng.Escape(segment)

	if err := h.Set(m.ComponentPath, joined, 0); err != nil {
		slog.Error("Failed to append path segment", "segment", segment, "error", err)
		return fmt.Errorf("%w: append path: %v", ErrEngineFailed, err)
	}

	return nil
}

func (e *executor) appendQuery(h engine.Handle, segment string) error {
	current, err := currentComponent(h, m.ComponentQuery)
	if err != nil {
		return err
	}

	joined := e.encodeQuerySegment(segment)
	if current != "" {
		joined = current + "&" + joined
	}

	if err := h.Set(m.ComponentQuery, joined, 0); err != nil {
		slog.Error("Failed to append query segment", "segment", segment, "error", err)
		return fmt.Errorf("%w: append query: %v", ErrEngineFailed, err)
	}

	return nil
}

// encodeQuerySegment encodes key and value separately around the first "="
// so the separator survives, or the whole segment when there is none.
func (e *executor) encodeQuerySegment(segment string) string {
	eq := strings.IndexByte(segment, '=')
	if eq < 0 {
		return e.eng.Escape(segment)
	}

	return e.eng.Escape(segment[:eq]) + "=" + e.eng.Escape(segment[eq+1:])
}

// currentComponent reads a component, treating absent as empty.
func currentComponent(h engine.Handle, c m.Component) (string, error) {
	v, err := h.Get(c, 0)
	if err != nil {
		if errors.Is(err, engine.ErrAbsent) {
			return "", nil
		}

		slog.Error("Failed to read component", "component", c.String(), "error", err)

		return "", fmt.Errorf("%w: get %s: %v", ErrEngineFailed, c, err)
	}

	return v, nil
}
