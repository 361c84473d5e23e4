package script

// Value is one node of a parsed script tree. The concrete types are
// Integer, Float, String, Array and *Dict; nothing else implements it.
type Value interface {
	value()
}

// Integer is a 64-bit signed integer literal.
type Integer int64

// Float is a 64-bit floating point literal.
type Float float64

// String holds decoded text: escape sequences from the source have
// already been turned into real control characters.
type String string

// Array is an ordered sequence of values. Element order is significant.
type Array []Value

func (Integer) value() {}
func (Float) value()   {}
func (String) value()  {}
func (Array) value()   {}
func (*Dict) value()   {}

// Dict is a string-keyed mapping that remembers insertion order, so
// serialization and block traversal are deterministic even though the
// grammar itself attaches no meaning to key order.
type Dict struct {
	keys    []string
	entries map[string]Value
}

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

// Set inserts or replaces a key. A replaced key keeps its original position.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

// Get returns the value for key, or nil and false if absent.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not modify it.
func (d *Dict) Keys() []string {
	return d.keys
}

// Retain deletes every entry whose key the keep function rejects,
// preserving the order of the survivors.
func (d *Dict) Retain(keep func(key string) bool) {
	kept := d.keys[:0]
	for _, k := range d.keys {
		if keep(k) {
			kept = append(kept, k)
			continue
		}
		delete(d.entries, k)
	}
	d.keys = kept
}

// Equal reports structural equality of two values. Dictionaries compare
// by key set, not key order, since the grammar gives order no meaning.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok || !Equal(av.entries[k], bval) {
				return false
			}
		}
		return true
	}
	return false
}
