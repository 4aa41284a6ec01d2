package mutate

import (
	"context"
	"fmt"
)

// Store persists mapping entries across Mutator lifetimes, keyed by
// the (seed, theme, original) triple that determines them
// deterministically. It supplements spec.md §9: rather than leaving
// "does collection state need to be rebuilt per run" implicit, a
// Mutator backed by a Store makes that decision observable — entries
// already persisted are reused instead of re-derived.
type Store interface {
	// Lookup returns a previously persisted entry for original, if any.
	Lookup(ctx context.Context, seed int64, theme Theme, original string) (newName string, kind Kind, ok bool, err error)
	// Save persists a newly generated entry.
	Save(ctx context.Context, seed int64, theme Theme, original, newName string, kind Kind) error
}

// MutatorOption configures a Mutator at construction time.
type MutatorOption func(*Mutator)

// WithStore backs the Mutator's mapping with a persistence layer so
// names survive across process invocations.
func WithStore(store Store) MutatorOption {
	return func(m *Mutator) {
		m.store = store
	}
}

// Mutator is the engine's single stateful value: a name generator, the
// running Mapping it feeds, and the configuration governing both
// collection and transformation. It performs no file I/O; the directory
// driver (internal/driver) performs I/O around it. A Store attached
// with WithStore is read and written during CollectDefinitions.
//
// A Mutator is not safe for concurrent CollectDefinitions/TransformCode
// calls on the same instance — both read and/or write the Mapping.
// Distinct Mutator instances are fully independent.
type Mutator struct {
	cfg       Config
	generator *nameGenerator
	mapping   *Mapping
	store     Store
}

// NewMutator constructs a Mutator from cfg, returning ConfigError-class
// failures (wrapped ErrInvalidTheme/ErrInvalidPrefix) if cfg is
// malformed.
func NewMutator(cfg Config, opts ...MutatorOption) (*Mutator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Mutator{
		cfg:       cfg,
		generator: newNameGenerator(cfg.Seed, cfg.Theme),
		mapping:   NewMapping(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Mapping returns the Mutator's current mapping snapshot. The returned
// value is shared, read-only state; callers must not mutate it.
func (m *Mutator) Mapping() *Mapping {
	return m.mapping
}

// CollectDefinitions runs Pass 1 over sourceText: it walks the parse
// tree to gather classes, functions, and internal-module imports
// eligible for renaming, then grows the Mapping for any name not
// already present: all classes first, then all functions, then all
// internal modules, each group in lexicographic order, so that
// insertion order is a pure function of the input rather than
// tree-walk iteration order. Names are not sorted across the three
// groups.
//
// Idempotent: calling CollectDefinitions twice with the same text never
// changes the Mapping (every name it would add is already present
// after the first call).
func (m *Mutator) CollectDefinitions(ctx context.Context, sourceText []byte, filePath string) error {
	defs, err := collectDefinitions(ctx, sourceText, filePath, m.cfg)
	if err != nil {
		return err
	}

	// Protected names (and other defined-but-ineligible identifiers)
	// are observed before any name is generated for this file, so a
	// freshly generated name can never collide with one of them — the
	// "disjoint" invariant covers more than just mapped originals.
	for _, name := range sortedKeys(defs.observed) {
		m.mapping.observeOriginal(name)
	}

	if err := m.resolveKind(ctx, defs.classes, KindClass); err != nil {
		return err
	}
	if err := m.resolveKind(ctx, defs.functions, KindFunction); err != nil {
		return err
	}
	if err := m.resolveKind(ctx, defs.modules, KindVariable); err != nil {
		return err
	}
	return nil
}

// resolveKind inserts sorted names from set into the mapping, consulting
// the backing Store (if any) before invoking the generator so a name
// chosen in a prior process lifetime is reused rather than redrawn.
func (m *Mutator) resolveKind(ctx context.Context, set map[string]struct{}, kind Kind) error {
	for _, name := range sortedKeys(set) {
		if m.mapping.Has(name) {
			continue
		}

		if m.store != nil {
			cached, cachedKind, ok, err := m.store.Lookup(ctx, m.cfg.Seed, m.cfg.Theme, name)
			if err != nil {
				return fmt.Errorf("mapping store lookup for %q: %w", name, err)
			}
			if ok {
				m.mapping.insert(name, cached, cachedKind)
				continue
			}
		}

		newName, err := m.generator.generate(name, kind)
		if err != nil {
			return err
		}
		// Re-check collision against everything observed so far
		// (other originals, other new names) before committing —
		// the generator only guards against names it has itself
		// returned, not against pre-existing source identifiers.
		for attempt := 0; m.mapping.collides(newName); attempt++ {
			if attempt >= maxGenerateAttempts {
				return fmt.Errorf("%w: could not find a non-colliding name for %q after %d attempts", ErrNameExhausted, name, maxGenerateAttempts)
			}
			newName, err = m.generator.generate(name, kind)
			if err != nil {
				return err
			}
		}
		m.mapping.insert(name, newName, kind)

		if m.store != nil {
			if err := m.store.Save(ctx, m.cfg.Seed, m.cfg.Theme, name, newName, kind); err != nil {
				return fmt.Errorf("mapping store save for %q: %w", name, err)
			}
		}
	}
	return nil
}

// TransformCode runs Pass 2 over sourceText: a pure function of the
// Mutator's current Mapping and the source, returning the rewritten
// text. Output parses under the same grammar as the input, and any
// whitespace, comment, or string literal not adjacent to a rewritten
// identifier is byte-identical to the input.
func (m *Mutator) TransformCode(ctx context.Context, sourceText []byte, filePath string) ([]byte, error) {
	return transformSource(ctx, sourceText, filePath, m.mapping, m.cfg)
}

// MutateSource is a convenience wrapper running CollectDefinitions then
// TransformCode in sequence against the same text.
func (m *Mutator) MutateSource(ctx context.Context, sourceText []byte, filePath string) ([]byte, error) {
	if err := m.CollectDefinitions(ctx, sourceText, filePath); err != nil {
		return nil, err
	}
	return m.TransformCode(ctx, sourceText, filePath)
}
