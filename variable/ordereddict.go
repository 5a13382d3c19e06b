package variable

// OrderedDict is a string-keyed mapping that preserves insertion order.
// Source documents drive prompt ordering, so plain Go maps are not enough.
type OrderedDict struct {
	keys   []string
	values map[string]Value
}

// NewOrderedDict returns an empty ordered mapping. A fresh container is
// constructed per call; instances are never shared as defaults.
func NewOrderedDict() *OrderedDict {
	return &OrderedDict{values: make(map[string]Value)}
}

// Set inserts or replaces key. Replacing keeps the key's original position.
func (d *OrderedDict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value for key and whether it exists.
func (d *OrderedDict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// GetString returns the string payload for key, or "" when absent or not
// a string.
func (d *OrderedDict) GetString(key string) string {
	v, ok := d.values[key]
	if !ok || v.Kind() != KindString {
		return ""
	}
	return v.AsString()
}

// Keys returns the keys in insertion order. The caller must not mutate
// the returned slice.
func (d *OrderedDict) Keys() []string { return d.keys }

// Len returns the number of entries.
func (d *OrderedDict) Len() int { return len(d.keys) }

// Equal reports deep equality including key order.
func (d *OrderedDict) Equal(o *OrderedDict) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if len(d.keys) != len(o.keys) {
		return false
	}
	for i, k := range d.keys {
		if o.keys[i] != k {
			return false
		}
		ov, ok := o.values[k]
		if !ok || !d.values[k].Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep-enough copy: the key order and map are fresh, the
// Values themselves are immutable.
func (d *OrderedDict) Clone() *OrderedDict {
	out := NewOrderedDict()
	for _, k := range d.keys {
		out.Set(k, d.values[k])
	}
	return out
}
