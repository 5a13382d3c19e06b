// Package variable defines the template-variable tree and the tagged-union
// value model the resolution engine operates on.
package variable

import (
	"fmt"
	"strings"
)

// Markers and reserved names shared across the engine.
const (
	// PrivateMarker prefixes variables copied verbatim into the context,
	// never rendered and never prompted.
	PrivateMarker = "_"
	// DerivedMarker prefixes variables that are rendered but never prompted.
	DerivedMarker = "__"
	// PathSeparator joins nested variable names into flat context keys.
	PathSeparator = "/"
	// RootKey is the reserved top-level key under which the variable tree
	// (and the template bindings) live.
	RootKey = "cookiecutter"
)

// Kind discriminates the shapes a raw variable value can take.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the tagged union over {nil, bool, string, list, dict}. Scalars
// that are not strings (numbers in a source document, say) are folded into
// KindString at decode time; the engine treats them as template text anyway.
type Value struct {
	kind Kind
	b    bool
	s    string
	list []Value
	dict *OrderedDict
}

// Nil returns the null value.
func Nil() Value { return Value{kind: KindNil} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string (possibly template-bearing).
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered list of values.
func List(vs []Value) Value { return Value{kind: KindList, list: vs} }

// Dict wraps an ordered mapping.
func Dict(d *OrderedDict) Value { return Value{kind: KindDict, dict: d} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool { return v.b }

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string { return v.s }

// AsList returns the list payload. Valid only for KindList.
func (v Value) AsList() []Value { return v.list }

// AsDict returns the dict payload. Valid only for KindDict.
func (v Value) AsDict() *OrderedDict { return v.dict }

// Equal reports deep equality across the union. Used for branch matching,
// so it must be an exact predicate: values of different kinds never match.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		return v.dict.Equal(o.dict)
	}
	return false
}

// Interface converts to plain Go values (nil, bool, string, []any,
// map[string]any). Dict order is lost; use the Value itself where order
// matters.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindDict:
		out := make(map[string]any, v.dict.Len())
		for _, k := range v.dict.Keys() {
			e, _ := v.dict.Get(k)
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// Display renders the value for prompts and error snapshots.
func (v Value) Display() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		parts := make([]string, 0, v.dict.Len())
		for _, k := range v.dict.Keys() {
			e, _ := v.dict.Get(k)
			parts = append(parts, fmt.Sprintf("%q: %q", k, e.Display()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
