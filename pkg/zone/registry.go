package zone

import (
	"sort"
	"sync"
)

// Definition describes a named zone in configuration form.
type Definition struct {
	Name string

	// NullKeys are tombstoned before every merge.
	NullKeys []string

	// DefaultKeys are reset to DefaultValue before every merge.
	DefaultKeys  []string
	DefaultValue string
}

// Override builds the override described by d. Defaulting runs before
// nulling, so a key listed in both ends up null. A definition with no keys
// yields nil (pass-through).
func (d Definition) Override() Override {
	var overrides []Override
	if len(d.DefaultKeys) > 0 {
		overrides = append(overrides, DefaultKeys(d.DefaultValue, d.DefaultKeys...))
	}
	if len(d.NullKeys) > 0 {
		overrides = append(overrides, NullKeys(d.NullKeys))
	}
	return Chain(overrides...)
}

// Registry holds named definitions shared across sessions. Zones themselves
// are per-session; Registry.New builds a fresh one each time.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry returns a registry seeded with defs. Later entries with the
// same name replace earlier ones.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		r.defs[d.Name] = d
	}
	return r
}

// Register adds or replaces a definition.
func (r *Registry) Register(d Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[d.Name] = d
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds a zone from the named definition. The zone has the
// definition's override installed, or none if the definition lists no keys.
func (r *Registry) New(name string) (*Zone, bool) {
	d, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	z := New(name)
	if o := d.Override(); o != nil {
		z.SetOverride(o)
	}
	return z, true
}
