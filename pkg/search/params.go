package search

import (
	"net/url"
	"sort"
	"strings"
)

// Params is an insertion-ordered mapping from key to Value.
// The zero value is not usable; create Params with New, FromMap or Parse.
//
// Params is not safe for concurrent use. Each recompute works on its own copy.
type Params struct {
	keys []string
	vals map[string]Value
}

// New returns an empty Params.
func New() *Params {
	return &Params{vals: make(map[string]Value)}
}

// FromMap builds Params from a plain string map.
// Keys are sorted so the resulting order is deterministic.
func FromMap(m map[string]string) *Params {
	p := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.SetString(k, m[k])
	}
	return p
}

// FromValues builds Params from url.Values, keeping the first value of each key.
// Keys with an empty value list become flags.
func FromValues(v url.Values) *Params {
	p := New()
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if vs := v[k]; len(vs) > 0 {
			p.SetString(k, vs[0])
		} else {
			p.SetFlag(k)
		}
	}
	return p
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position and only its value changes.
func (p *Params) Set(key string, v Value) {
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = v
}

// SetString stores a string value.
func (p *Params) SetString(key, value string) {
	p.Set(key, String(value))
}

// SetFlag stores the valueless-key flag.
func (p *Params) SetFlag(key string) {
	p.Set(key, Flag())
}

// SetNull stores a tombstone so the key is dropped when building a URL.
func (p *Params) SetNull(key string) {
	p.Set(key, Null())
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	v, ok := p.vals[key]
	return v, ok
}

// Has reports whether key is present, including as a tombstone.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Delete removes key entirely. Unlike SetNull, the key no longer exists.
func (p *Params) Delete(key string) {
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys, tombstones included.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (p *Params) Each(fn func(key string, v Value)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.vals[k])
	}
}

// Clone returns an independent copy. Cloning nil yields an empty Params.
func (p *Params) Clone() *Params {
	out := New()
	if p == nil {
		return out
	}
	out.keys = make([]string, len(p.keys))
	copy(out.keys, p.keys)
	for k, v := range p.vals {
		out.vals[k] = v
	}
	return out
}

// Equal reports whether p and o hold the same entries in the same order.
func (p *Params) Equal(o *Params) bool {
	if p.Len() != o.Len() {
		return false
	}
	for i, k := range p.Keys() {
		if o.keys[i] != k || o.vals[k] != p.vals[k] {
			return false
		}
	}
	return true
}

// Map returns the non-null entries as a plain string map.
func (p *Params) Map() map[string]string {
	out := make(map[string]string, p.Len())
	p.Each(func(k string, v Value) {
		if !v.IsNull() {
			out[k] = v.String()
		}
	})
	return out
}

// String returns a debug rendering such as {a:"1", debug:true, page:null}.
func (p *Params) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	p.Each(func(k string, v Value) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v.GoString())
		i++
	})
	b.WriteByte('}')
	return b.String()
}
