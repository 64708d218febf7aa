package search

import "strconv"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNull marks a tombstone. Null values are never serialized.
	KindNull Kind = iota

	// KindString is a plain "key=value" value.
	KindString

	// KindFlag is a presence-only key ("?debug"). It serializes as "true".
	KindFlag
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Value is a single search parameter value.
// The zero Value is Null.
type Value struct {
	kind Kind
	s    string
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Flag returns the valueless-key value (boolean true).
func Flag() Value {
	return Value{kind: KindFlag}
}

// Null returns the tombstone value.
func Null() Value {
	return Value{}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is a tombstone.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsFlag reports whether v is the valueless-key flag.
func (v Value) IsFlag() bool {
	return v.kind == KindFlag
}

// String returns the value with default string coercion applied:
// flags render as "true" and null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFlag:
		return strconv.FormatBool(true)
	default:
		return ""
	}
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s)
	case KindFlag:
		return "true"
	default:
		return "null"
	}
}
