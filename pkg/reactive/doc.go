// Package reactive provides the change-notification primitives used to drive
// href recomputation.
//
// A Signal holds a value and calls its subscribers synchronously whenever a
// write actually changes that value. Equality is structural for slices, maps
// and structs, so re-setting a key list with the same contents is silent:
//
//	keys := reactive.NewSignal([]string{"page"})
//	stop := keys.Subscribe(func(k []string) { fmt.Println("keys:", k) })
//	keys.Set([]string{"page"})         // no output
//	keys.Set([]string{"page", "sort"}) // keys: [page sort]
//	stop()
//
// A Scope collects unsubscribe functions so a directive can tear down all of
// its subscriptions with a single Dispose call.
package reactive
