package search

// MergeFunc integrates incoming params into base, mutating base in place.
type MergeFunc func(base, incoming *Params)

// Merge is the default merge: every key in incoming overwrites base.
// Keys only present in base are left untouched, including tombstones.
func Merge(base, incoming *Params) {
	incoming.Each(func(k string, v Value) {
		base.Set(k, v)
	})
}

var _ MergeFunc = Merge
