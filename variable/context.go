package variable

import (
	"fmt"
	"strings"
)

// Context is the flat resolved mapping built during one resolution pass.
// It is append-only while the pass runs: later renders may only see keys
// stored earlier in traversal order. Not safe for concurrent use; a pass
// owns its context exclusively.
type Context struct {
	keys   []string
	values map[string]Value
}

// NewContext returns an empty resolved context.
func NewContext() *Context {
	return &Context{values: make(map[string]Value)}
}

// Set appends key with its resolved value. Setting an existing key
// replaces the value in place without reordering.
func (c *Context) Set(key string, v Value) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// Get returns the resolved value for key.
func (c *Context) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key has been resolved.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the resolution order. The caller must not mutate the
// returned slice.
func (c *Context) Keys() []string { return c.keys }

// Len returns the number of resolved variables.
func (c *Context) Len() int { return len(c.keys) }

// Equal reports whether both contexts hold the same keys in the same
// order with equal values.
func (c *Context) Equal(o *Context) bool {
	if c.Len() != o.Len() {
		return false
	}
	for i, k := range c.keys {
		if o.keys[i] != k {
			return false
		}
		ov, ok := o.Get(k)
		if !ok || !c.values[k].Equal(ov) {
			return false
		}
	}
	return true
}

// Bindings exposes the context as plain Go values under the reserved root
// key, the shape the template engine binds against.
func (c *Context) Bindings() map[string]any {
	flat := make(map[string]any, len(c.keys))
	for _, k := range c.keys {
		flat[k] = c.values[k].Interface()
	}
	return map[string]any{RootKey: flat}
}

// ToValue returns the context as an ordered mapping, for persistence.
func (c *Context) ToValue() Value {
	d := NewOrderedDict()
	for _, k := range c.keys {
		d.Set(k, c.values[k])
	}
	return Dict(d)
}

// ContextFromValue rebuilds a context from its persisted mapping form.
func ContextFromValue(v Value) (*Context, bool) {
	if v.Kind() != KindDict {
		return nil, false
	}
	ctx := NewContext()
	for _, k := range v.AsDict().Keys() {
		e, _ := v.AsDict().Get(k)
		ctx.Set(k, e)
	}
	return ctx, true
}

// Snapshot renders the context for fatal-error reports: one key=value pair
// per resolved variable, in resolution order.
func (c *Context) Snapshot() string {
	parts := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, c.values[k].Display()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
