package prompt

import (
	"encoding/json"
	"strings"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

// Validation messages shown on JSON re-prompt. The two failure classes are
// deliberately distinct: syntax errors versus a well-formed non-object.
const (
	msgJSONDecode = "Unable to decode to JSON."
	msgJSONDict   = "Requires JSON dict."
)

var (
	errJSONDecode = errors.New(msgJSONDecode)
	errJSONDict   = errors.New(msgJSONDict)
)

// DecodeObject parses an operator-entered JSON object literal into an
// ordered mapping, preserving member order. Numbers fold into strings,
// matching the variable value model.
func DecodeObject(input string) (*variable.OrderedDict, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, errJSONDecode
	}
	// Trailing tokens after the first value are a syntax error too.
	if dec.More() {
		return nil, errJSONDecode
	}
	if v.Kind() != variable.KindDict {
		return nil, errJSONDict
	}
	return v.AsDict(), nil
}

// EncodeObject renders an ordered mapping as a compact JSON object, in key
// order, for display as a prompt default.
func EncodeObject(d *variable.OrderedDict) string {
	var b strings.Builder
	encodeDict(&b, d)
	return b.String()
}

func decodeValue(dec *json.Decoder) (variable.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return variable.Nil(), err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := variable.NewOrderedDict()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return variable.Nil(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return variable.Nil(), errors.Newf("object key %v is not a string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return variable.Nil(), err
				}
				d.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return variable.Nil(), err
			}
			return variable.Dict(d), nil
		case '[':
			var list []variable.Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return variable.Nil(), err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return variable.Nil(), err
			}
			return variable.List(list), nil
		}
		return variable.Nil(), errors.Newf("unexpected delimiter %v", t)
	case string:
		return variable.String(t), nil
	case bool:
		return variable.Bool(t), nil
	case json.Number:
		return variable.String(t.String()), nil
	case nil:
		return variable.Nil(), nil
	}
	return variable.Nil(), errors.Newf("unexpected token %v", tok)
}

func encodeValue(b *strings.Builder, v variable.Value) {
	switch v.Kind() {
	case variable.KindNil:
		b.WriteString("null")
	case variable.KindBool:
		if v.AsBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case variable.KindString:
		raw, _ := json.Marshal(v.AsString())
		b.Write(raw)
	case variable.KindList:
		b.WriteByte('[')
		for i, e := range v.AsList() {
			if i > 0 {
				b.WriteString(", ")
			}
			encodeValue(b, e)
		}
		b.WriteByte(']')
	case variable.KindDict:
		encodeDict(b, v.AsDict())
	}
}

func encodeDict(b *strings.Builder, d *variable.OrderedDict) {
	b.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		raw, _ := json.Marshal(k)
		b.Write(raw)
		b.WriteString(": ")
		e, _ := d.Get(k)
		encodeValue(b, e)
	}
	b.WriteByte('}')
}
