// Package location holds the current {path, search, hash} for a session and
// announces navigations.
//
// The href directive only ever reads from here. Writes come from whatever
// owns routing: a websocket session, a test, or the CLI.
package location

import (
	"strings"

	"github.com/vango-dev/qszone/pkg/search"
)

// Snapshot is a point-in-time view of a location.
type Snapshot struct {
	Path   string
	Search *search.Params
	Hash   string
}

// Clone returns a snapshot whose Search can be mutated without affecting s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Path: s.Path, Search: s.Search.Clone(), Hash: s.Hash}
}

// String renders the snapshot in hash-routed href form.
func (s Snapshot) String() string {
	return search.Build(s.Path, s.Search, s.Hash)
}

// ParseURL splits a location string into a Snapshot.
//
// Both plain ("/list?page=2#top") and hash-routed ("#/list?page=2#top") forms
// are accepted. The query is parsed with search.Parse, so nothing is decoded.
// An empty path becomes "/".
func ParseURL(raw string) Snapshot {
	raw = strings.TrimPrefix(raw, "#")

	var hash string
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw, hash = raw[:i], raw[i+1:]
	}

	path, query, _ := strings.Cut(raw, "?")
	if path == "" {
		path = "/"
	}
	return Snapshot{
		Path:   path,
		Search: search.Parse(query),
		Hash:   hash,
	}
}
