// Package search models the query-string half of a location and the three
// pure operations the href directive is built from.
//
// A search is a set of key/value pairs where a value is one of:
//   - a string ("?tab=profile")
//   - a flag, for keys that appeared without "=" ("?debug")
//   - null, a tombstone meaning "drop this key from any URL built from here"
//
// # Operations
//
//	params := search.Parse("tab=profile&debug")
//	// {tab: "profile", debug: true}
//
//	base := search.FromMap(map[string]string{"page": "2"})
//	search.Merge(base, params)
//	// {page: "2", tab: "profile", debug: true}
//
//	search.Build("/list", base, "")
//	// "#/list?page=2&tab=profile&debug=true"
//
// No percent-decoding or encoding is performed in either direction. Values
// pass through exactly as they were written.
//
// # Ordering
//
// Params preserves insertion order. Setting a key that already exists keeps its
// original position, so a merge never reorders the base.
package search
