package search

import "strings"

// Build serializes a hash-routed href: "#" + path, then "?k=v&..." when at
// least one non-null entry exists, then "#" + hash when hash is non-empty.
//
// Null entries are skipped entirely. Flags render as "k=true".
func Build(path string, params *Params, hash string) string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(path)

	n := 0
	params.Each(func(k string, v Value) {
		if v.IsNull() {
			return
		}
		if n == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v.String())
		n++
	})

	if hash != "" {
		b.WriteByte('#')
		b.WriteString(hash)
	}
	return b.String()
}

// Encode renders only the query part ("k=v&k2=v2") without the leading "?".
// Null entries are skipped, as in Build.
func Encode(params *Params) string {
	parts := make([]string, 0, params.Len())
	params.Each(func(k string, v Value) {
		if !v.IsNull() {
			parts = append(parts, k+"="+v.String())
		}
	})
	return strings.Join(parts, "&")
}
