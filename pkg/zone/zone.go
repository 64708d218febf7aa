// Package zone lets a region of the UI customize how a link's query-string
// fragment is merged into the current search.
//
// A Zone owns at most one Override. With no override the zone is
// pass-through and links fall back to search.Merge. An override runs its own
// pre-processing on the base and then hands off to the default merge it is
// given:
//
//	z := zone.New("filters")
//	z.SetOverride(zone.NullKeys([]string{"page"}))
//
//	base := search.Parse("page=2&sort=desc")
//	z.Merge(base, search.Parse("sort=asc"))
//	search.Build("/list", base, "") // "#/list?sort=asc"
//
// A Zone is owned by a single session and is not safe for concurrent use.
package zone

import (
	"github.com/vango-dev/qszone/pkg/reactive"
	"github.com/vango-dev/qszone/pkg/search"
)

// Override intercepts a merge. It may mutate base freely and is expected to
// finish by calling next(base, incoming).
type Override func(base, incoming *search.Params, next search.MergeFunc)

// Zone holds the override slot for one zone.
type Zone struct {
	name     string
	override Override

	// version increments on every slot write and is what OnChange observes.
	version *reactive.Signal[uint64]
}

// New creates a zone with no override installed.
func New(name string) *Zone {
	return &Zone{
		name:    name,
		version: reactive.NewSignal[uint64](0),
	}
}

// Name returns the zone name given to New.
func (z *Zone) Name() string {
	if z == nil {
		return ""
	}
	return z.name
}

// SetOverride installs o, replacing any previous override. A nil o clears
// the slot. Every call notifies OnChange subscribers. On a nil zone it does
// nothing.
func (z *Zone) SetOverride(o Override) {
	if z == nil {
		return
	}
	z.override = o
	z.version.Update(func(v uint64) uint64 { return v + 1 })
}

// ClearOverride returns the zone to pass-through.
func (z *Zone) ClearOverride() {
	z.SetOverride(nil)
}

// Override returns the installed override, or nil.
func (z *Zone) Override() Override {
	if z == nil {
		return nil
	}
	return z.override
}

// HasOverride reports whether an override is installed.
func (z *Zone) HasOverride() bool {
	return z.Override() != nil
}

// OnChange subscribes fn to override replacements.
func (z *Zone) OnChange(fn func()) (unsubscribe func()) {
	if z == nil || fn == nil {
		return func() {}
	}
	return z.version.Subscribe(func(uint64) { fn() })
}

// Merge integrates incoming into base using the zone's override when one is
// installed, and search.Merge otherwise. A nil zone is pass-through.
func (z *Zone) Merge(base, incoming *search.Params) {
	if o := z.Override(); o != nil {
		o(base, incoming, search.Merge)
		return
	}
	search.Merge(base, incoming)
}

// NullKeys returns an override that tombstones each key before delegating,
// so keys the incoming fragment does not supply drop out of the href.
// The key slice is copied.
func NullKeys(keys []string) Override {
	snapshot := append([]string(nil), keys...)
	return func(base, incoming *search.Params, next search.MergeFunc) {
		for _, k := range snapshot {
			base.SetNull(k)
		}
		next(base, incoming)
	}
}

// DefaultKeys returns an override that resets each key to value before
// delegating. Incoming values still win because next runs afterwards.
func DefaultKeys(value string, keys ...string) Override {
	snapshot := append([]string(nil), keys...)
	return func(base, incoming *search.Params, next search.MergeFunc) {
		for _, k := range snapshot {
			base.SetString(k, value)
		}
		next(base, incoming)
	}
}

// Chain composes overrides so each one's next is the following override and
// the last one's next is the default merge passed in.
func Chain(overrides ...Override) Override {
	var live []Override
	for _, o := range overrides {
		if o != nil {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(base, incoming *search.Params, next search.MergeFunc) {
		var step func(i int) search.MergeFunc
		step = func(i int) search.MergeFunc {
			if i == len(live) {
				return next
			}
			return func(b, in *search.Params) {
				live[i](b, in, step(i+1))
			}
		}
		step(0)(base, incoming)
	}
}
