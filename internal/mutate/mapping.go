package mutate

import "sort"

// entry is one renamed identifier, remembered alongside the Kind it
// was generated for so a mapping can be replayed into a persistence
// layer or printed in a report.
type entry struct {
	newName string
	kind    Kind
}

// Mapping is a unique, monotonically-grown table from an original
// identifier to its replacement. It enforces, for the lifetime of a
// Mutator:
//
//   - Injectivity: no two originals share a new name.
//   - Disjointness: no new name equals any original name already
//     observed, preventing self-shadowing.
//   - Monotonicity: once inserted, an entry is never mutated or
//     removed.
//
// Mapping is not safe for concurrent mutation; a Mutator serializes
// all writes to it during CollectDefinitions.
type Mapping struct {
	byOriginal map[string]entry
	newNames   map[string]struct{}
	originals  map[string]struct{}
}

// NewMapping returns an empty Mapping ready for use.
func NewMapping() *Mapping {
	return &Mapping{
		byOriginal: make(map[string]entry),
		newNames:   make(map[string]struct{}),
		originals:  make(map[string]struct{}),
	}
}

// Lookup returns the new name mapped to original, if any.
func (m *Mapping) Lookup(original string) (string, bool) {
	e, ok := m.byOriginal[original]
	if !ok {
		return "", false
	}
	return e.newName, true
}

// Has reports whether original already has a mapped replacement.
func (m *Mapping) Has(original string) bool {
	_, ok := m.byOriginal[original]
	return ok
}

// observeOriginal records that original is a name present somewhere in
// the source, even before it is mapped, so that a later-generated name
// colliding with it can be rejected (the "disjoint" invariant).
func (m *Mapping) observeOriginal(original string) {
	m.originals[original] = struct{}{}
}

// collides reports whether candidate would violate injectivity or
// disjointness if inserted now.
func (m *Mapping) collides(candidate string) bool {
	if _, ok := m.newNames[candidate]; ok {
		return true
	}
	_, ok := m.originals[candidate]
	return ok
}

// insert records a new mapping entry. Callers must have already
// checked collides(newName) is false and Has(original) is false.
func (m *Mapping) insert(original, newName string, kind Kind) {
	m.byOriginal[original] = entry{newName: newName, kind: kind}
	m.newNames[newName] = struct{}{}
	m.originals[original] = struct{}{}
}

// Len returns the number of mapped entries.
func (m *Mapping) Len() int {
	return len(m.byOriginal)
}

// Entry is one (original, new, kind) triple of a Mapping, as returned
// by Entries sorted by original name for deterministic reporting.
type Entry struct {
	Original string
	New      string
	Kind     Kind
}

// Entries returns a deterministically ordered snapshot of the mapping.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, 0, len(m.byOriginal))
	for original, e := range m.byOriginal {
		out = append(out, Entry{Original: original, New: e.newName, Kind: e.kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Original < out[j].Original })
	return out
}

// definitions is the per-file output of Pass 1: the sets of identifiers
// eligible for renaming, as spec'd in the symbol collector, plus the
// defined-but-ineligible names (protected function names, dunders) seen
// along the way. The latter are never renaming candidates themselves,
// but a freshly generated name must still never collide with one of
// them — see Mapping.observeOriginal.
type definitions struct {
	classes   map[string]struct{}
	functions map[string]struct{}
	modules   map[string]struct{}
	observed  map[string]struct{}
}

func newDefinitions() *definitions {
	return &definitions{
		classes:   make(map[string]struct{}),
		functions: make(map[string]struct{}),
		modules:   make(map[string]struct{}),
		observed:  make(map[string]struct{}),
	}
}

// sortedKeys returns the keys of a string-set map in lexicographic
// order, so that mapping insertion order is a pure function of the
// inputs rather than tree-walk iteration order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
