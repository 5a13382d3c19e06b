package variable

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/stencil-cli/stencil/errors"
)

// UnmarshalYAML decodes any YAML shape into the tagged union. Mapping order
// is preserved; non-string scalars (numbers, timestamps) fold into strings.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	parsed, err := valueFromNode(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the union back into a YAML node tree.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (d *OrderedDict) UnmarshalYAML(n *yaml.Node) error {
	parsed, err := valueFromNode(n)
	if err != nil {
		return err
	}
	if parsed.Kind() != KindDict {
		return errors.Newf("expected a mapping, got %s", parsed.Kind())
	}
	*d = *parsed.AsDict()
	return nil
}

// MarshalYAML encodes the mapping in insertion order.
func (d *OrderedDict) MarshalYAML() (any, error) {
	return Dict(d).yamlNode(), nil
}

func valueFromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Nil(), nil
		}
		return valueFromNode(n.Content[0])
	case yaml.AliasNode:
		return valueFromNode(n.Alias)
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Nil(), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return Nil(), errors.Wrapf(err, "line %d: bad boolean %q", n.Line, n.Value)
			}
			return Bool(b), nil
		default:
			return String(n.Value), nil
		}
	case yaml.SequenceNode:
		list := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			e, err := valueFromNode(c)
			if err != nil {
				return Nil(), err
			}
			list = append(list, e)
		}
		return List(list), nil
	case yaml.MappingNode:
		d := NewOrderedDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return Nil(), errors.Newf("line %d: mapping key must be a scalar", key.Line)
			}
			e, err := valueFromNode(n.Content[i+1])
			if err != nil {
				return Nil(), err
			}
			d.Set(key.Value, e)
		}
		return Dict(d), nil
	}
	return Nil(), errors.Newf("unsupported YAML node kind %d", n.Kind)
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindNil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.list {
			n.Content = append(n.Content, e.yamlNode())
		}
		return n
	case KindDict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.dict.Keys() {
			e, _ := v.dict.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				e.yamlNode(),
			)
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
