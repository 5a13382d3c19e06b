// Package render interpolates raw variable values as templates against the
// partially-resolved context. It is the engine side of the rendering
// boundary: a pure function from (raw value, context) to rendered value.
package render

import (
	"bytes"
	"regexp"
	"strings"
	"text/template"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

// funcMap provides the string helpers available in variable templates.
// These supplement the built-in template functions (eq, ne, and, or, ...).
var funcMap = template.FuncMap{
	"lower":      strings.ToLower,
	"upper":      strings.ToUpper,
	"trimSpace":  strings.TrimSpace,
	"trimPrefix": strings.TrimPrefix,
	"trimSuffix": strings.TrimSuffix,
	"replace":    strings.ReplaceAll,
	"contains":   strings.Contains,
	"split":      strings.Split,
	"join":       strings.Join,
	// slug lowercases and collapses non-alphanumeric runs into hyphens,
	// for deriving repository names from human-readable project names.
	"slug": Slug,
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts s into a lowercase hyphen-separated identifier.
func Slug(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// Renderer renders template-bearing values against a resolved context. The
// zero value is not usable; construct with New.
type Renderer struct {
	funcs template.FuncMap
}

// New returns a renderer with the default function map.
func New() *Renderer {
	return &Renderer{funcs: funcMap}
}

// RenderString interpolates tmpl against the context bindings. Strings
// without template syntax pass through untouched. A reference to a key the
// context does not hold yet fails with ErrUndefinedVariable.
func (r *Renderer) RenderString(tmpl string, ctx *variable.Context) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("variable").Funcs(r.funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", errors.Wrapf(err, "parse template %q", tmpl)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx.Bindings()); err != nil {
		return "", errors.Wrapf(
			errors.WithSecondary(errors.ErrUndefinedVariable, err),
			"render template %q", tmpl)
	}
	return buf.String(), nil
}

// RenderValue renders a raw value recursively:
//   - nil and booleans pass through unchanged
//   - mappings render both keys and values, preserving iteration order
//   - lists render each element, preserving order
//   - strings are interpreted as templates against the context
func (r *Renderer) RenderValue(raw variable.Value, ctx *variable.Context) (variable.Value, error) {
	switch raw.Kind() {
	case variable.KindNil, variable.KindBool:
		return raw, nil
	case variable.KindDict:
		out := variable.NewOrderedDict()
		for _, k := range raw.AsDict().Keys() {
			e, _ := raw.AsDict().Get(k)
			rk, err := r.RenderString(k, ctx)
			if err != nil {
				return variable.Nil(), err
			}
			rv, err := r.RenderValue(e, ctx)
			if err != nil {
				return variable.Nil(), err
			}
			out.Set(rk, rv)
		}
		return variable.Dict(out), nil
	case variable.KindList:
		out := make([]variable.Value, 0, len(raw.AsList()))
		for _, e := range raw.AsList() {
			rv, err := r.RenderValue(e, ctx)
			if err != nil {
				return variable.Nil(), err
			}
			out = append(out, rv)
		}
		return variable.List(out), nil
	default:
		s, err := r.RenderString(raw.AsString(), ctx)
		if err != nil {
			return variable.Nil(), err
		}
		return variable.String(s), nil
	}
}
