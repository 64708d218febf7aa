package zone

import "github.com/vango-dev/qszone/pkg/reactive"

// WatchKeys installs a NullKeys override built from the current contents of
// keys, and rebuilds it whenever keys changes structurally. Each rebuild
// replaces the previous override outright.
//
// A nil keys signal installs nothing and leaves z pass-through.
func WatchKeys(z *Zone, keys *reactive.Signal[[]string]) (unsubscribe func()) {
	if z == nil || keys == nil {
		return func() {}
	}
	z.SetOverride(NullKeys(keys.Get()))
	return keys.Subscribe(func(k []string) {
		z.SetOverride(NullKeys(k))
	})
}
