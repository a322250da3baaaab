package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/curl/urler/internal/controller"
	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

// Renderer evaluates output format templates against a URL handle.
type Renderer interface {
	// Render expands template in a single left-to-right pass and returns the
	// result, always terminated by exactly one trailing newline.
	Render(ctx context.Context, template string, h engine.Handle, decode bool) string
}

type renderer struct {
	ui controller.UI
}

// NewRenderer constructs a Renderer reporting component failures to ui.
func NewRenderer(ui controller.UI) Renderer {
	return &renderer{ui: ui}
}

func (r *renderer) Render(ctx context.Context, template string, h engine.Handle, decode bool) string {
	var b strings.Builder

	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				// Unterminated token, drop the rest.
				i = len(template)
				continue
			}

			r.substitute(ctx, &b, template[i+1:i+1+end], h, decode)
			i += end + 1

		case '}':
			// A }} pair collapses, mirroring {{.
			if i+1 < len(template) && template[i+1] == '}' {
				i++
			}
			b.WriteByte('}')

		case '\\':
			if i+1 >= len(template) {
				b.WriteByte('\\')
				continue
			}

			i++
			switch template[i] {
			case 'r':
				b.WriteByte('\r')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				// Unknown escapes keep the backslash.
				b.WriteByte('\\')
				b.WriteByte(template[i])
			}

		default:
			b.WriteByte(template[i])
		}
	}

	b.WriteByte('\n')

	return b.String()
}

// substitute expands one {name} token. Unknown names and absent components
// expand to nothing; any other engine failure is reported and skipped.
func (r *renderer) substitute(ctx context.Context, b *strings.Builder, name string, h engine.Handle, decode bool) {
	c, ok := m.LookupComponent(name)
	if !ok {
		return
	}

	flags := engine.DefaultPort
	if decode {
		flags |= engine.URLDecode
	}

	v, err := h.Get(c, flags)
	switch {
	case err == nil:
		b.WriteString(v)
	case errors.Is(err, engine.ErrAbsent):
		// Nothing to render.
	default:
		r.ui.ComponentFailed(ctx, c.String(), err)
	}
}
