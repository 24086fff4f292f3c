package domain

import "sort"

// TargetSet is the output of reconciliation: a mapping from normalized
// package name to the specifier that won for that name. It is consumed
// immediately by the lock engine or the install/sync driver and never
// persisted.
type TargetSet struct {
	specs map[string]Specifier
}

// NewTargetSet creates an empty target set.
func NewTargetSet() *TargetSet {
	return &TargetSet{specs: make(map[string]Specifier)}
}

// Add inserts a specifier, overwriting any prior entry for the same
// normalized name (last write wins).
func (t *TargetSet) Add(spec Specifier) {
	t.specs[spec.Key()] = spec
}

// Len returns the number of distinct packages in the set.
func (t *TargetSet) Len() int {
	return len(t.specs)
}

// Get returns the specifier for a normalized package name.
func (t *TargetSet) Get(name string) (Specifier, bool) {
	spec, ok := t.specs[NormalizeName(name)]
	return spec, ok
}

// Names returns the sorted normalized package names in the set.
func (t *TargetSet) Names() []string {
	names := make([]string, 0, len(t.specs))
	for name := range t.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the specifiers ordered by normalized name, for
// deterministic invocation of external tools.
func (t *TargetSet) Sorted() []Specifier {
	specs := make([]Specifier, 0, len(t.specs))
	for _, name := range t.Names() {
		specs = append(specs, t.specs[name])
	}
	return specs
}
