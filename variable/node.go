package variable

import (
	"strings"

	"github.com/stencil-cli/stencil/errors"
)

// Node is one variable in the specification tree. A parent owns its
// children; the resolver holds a root it does not own. Children are branch
// candidates: a child activates when its Match value equals the parent's
// resolved value.
type Node struct {
	Name     string
	Raw      Value
	Prompt   string
	Children []*Node
	Match    Value
	Meta     *OrderedDict
}

// PromptText returns the human-readable question for this variable,
// defaulting to the variable name.
func (n *Node) PromptText() string {
	if n.Prompt != "" {
		return n.Prompt
	}
	return n.Name
}

// IsPrivate reports a single-marker name: copied verbatim, never rendered
// or prompted.
func (n *Node) IsPrivate() bool {
	return strings.HasPrefix(n.Name, PrivateMarker) && !n.IsDerived()
}

// IsDerived reports a double-marker name: rendered but never prompted.
func (n *Node) IsDerived() bool {
	return strings.HasPrefix(n.Name, DerivedMarker)
}

// FindChild returns the direct child with the given name.
func (n *Node) FindChild(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// SetChildValue replaces the raw value of the direct child with the given
// name. Unknown names are ignored.
func (n *Node) SetChildValue(name string, v Value) {
	if c, ok := n.FindChild(name); ok {
		c.Raw = v
	}
}

// Metadata returns the node's free-form metadata mapping, if any.
func (n *Node) Metadata() (*OrderedDict, bool) {
	if n.Meta == nil {
		return nil, false
	}
	return n.Meta, true
}

// ApplyOverrides pushes a path-keyed flat map of values down into matching
// descendants, splitting keys on the path separator. Keys whose first
// segment has no matching child are ignored silently. No type validation
// happens here: an override replaces the raw value wholesale, so the
// variable takes on the override's kind (a string override on a dict
// variable turns it into an ordinary text variable). Remaining mismatches
// surface later during rendering or prompting.
func (n *Node) ApplyOverrides(flat map[string]Value) {
	for key, v := range flat {
		segments := strings.Split(key, PathSeparator)
		if len(segments) > 1 {
			if child, ok := n.FindChild(segments[0]); ok {
				child.ApplyOverrides(map[string]Value{
					strings.Join(segments[1:], PathSeparator): v,
				})
			}
			continue
		}
		n.SetChildValue(key, v)
	}
}

// Flatten walks the subtree and returns the flat path-keyed mapping of the
// values currently stored on each node, prefixing nested names with their
// parent path. Used when a replayed tree is consumed directly.
func (n *Node) Flatten(prefix string) *Context {
	ctx := NewContext()
	n.flattenInto(prefix, ctx)
	return ctx
}

func (n *Node) flattenInto(prefix string, ctx *Context) {
	for _, c := range n.Children {
		key := prefix + c.Name
		ctx.Set(key, c.Raw)
		c.flattenInto(key+PathSeparator, ctx)
	}
}

// NodeFromValue rebuilds a Node from its serialized mapping form:
// {name, value, prompt, variables, matches, metadata}. This is the inverse
// of ToValue and is how replay documents reconstruct the tree.
func NodeFromValue(v Value) (*Node, error) {
	if v.Kind() != KindDict {
		return nil, errors.Newf("variable node must be a mapping, got %s", v.Kind())
	}
	d := v.AsDict()

	n := &Node{
		Name:   d.GetString("name"),
		Prompt: d.GetString("prompt"),
		Match:  Nil(),
	}
	if raw, ok := d.Get("value"); ok {
		n.Raw = raw
	} else {
		n.Raw = Nil()
	}
	if m, ok := d.Get("matches"); ok {
		n.Match = m
	}
	if meta, ok := d.Get("metadata"); ok && meta.Kind() == KindDict {
		n.Meta = meta.AsDict()
	}
	if vars, ok := d.Get("variables"); ok && vars.Kind() == KindList {
		for _, c := range vars.AsList() {
			child, err := NodeFromValue(c)
			if err != nil {
				return nil, errors.Wrapf(err, "in variable %q", n.Name)
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

// ToValue serializes the node (and its subtree) into the mapping form
// consumed by NodeFromValue. Empty fields are omitted, keeping replay
// documents readable.
func (n *Node) ToValue() Value {
	d := NewOrderedDict()
	d.Set("name", String(n.Name))
	d.Set("value", n.Raw)
	if n.Prompt != "" && n.Prompt != n.Name {
		d.Set("prompt", String(n.Prompt))
	}
	if !n.Match.IsNil() {
		d.Set("matches", n.Match)
	}
	if n.Meta != nil {
		d.Set("metadata", Dict(n.Meta))
	}
	if len(n.Children) > 0 {
		children := make([]Value, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.ToValue()
		}
		d.Set("variables", List(children))
	}
	return Dict(d)
}
