package search

import "strings"

// ParseOptions tunes Parse for callers that need different pair handling.
type ParseOptions struct {
	// KeepExtraEquals splits each pair on the first "=" only, so "a=b=c"
	// yields a:"b=c". When false, text after a second "=" is dropped and
	// "a=b=c" yields a:"b".
	KeepExtraEquals bool
}

// Parse parses a flat "k=v&k2=v2" string into Params.
//
// A pair without "=" becomes a flag. Empty pairs are skipped, so "" and "&&"
// both yield empty Params. Later duplicates overwrite earlier values but keep
// the first key's position. Nothing is percent-decoded.
//
// Parse uses the default ParseOptions: a pair with more than one "=" keeps
// only the segment between the first and second "=".
func Parse(raw string) *Params {
	return ParseWith(raw, ParseOptions{})
}

// ParseWith is Parse with explicit options.
func ParseWith(raw string, opts ParseOptions) *Params {
	p := New()
	if raw == "" {
		return p
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			p.SetFlag(key)
			continue
		}
		if !opts.KeepExtraEquals {
			value, _, _ = strings.Cut(value, "=")
		}
		p.SetString(key, value)
	}
	return p
}
