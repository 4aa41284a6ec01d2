// Package mutate implements the transformation engine: concrete syntax
// tree ingestion, two-pass symbol analysis, name generation, and the
// import-aware rewriting rules that decide whether an identifier
// occurrence is safe to rename.
//
// Design principles:
//   - No type inference, no cross-module name resolution beyond what
//     import statements textually declare.
//   - Concrete types throughout; no map[string]interface{}.
//   - A Mutator owns its Mapping exclusively for the lifetime of a
//     CollectDefinitions/TransformCode call; it performs no file I/O
//     (an attached Store is its only outside access).
package mutate

import (
	"fmt"
	"strings"
)

// Kind classifies a renameable identifier and drives the casing policy
// of the name generator. It carries no semantic authority beyond that.
type Kind int

const (
	// KindClass marks a top-level class definition.
	KindClass Kind = iota
	// KindFunction marks a top-level function or method definition.
	KindFunction
	// KindVariable marks an internal-module import binding.
	KindVariable
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Theme selects the vocabulary used to shape newly generated names.
type Theme string

const (
	// ThemeGibberish generates "c_"/"f_"-prefixed hex names.
	ThemeGibberish Theme = "gibberish"
	// ThemeFantasy generates names drawn from closed prefix/suffix/verb
	// vocabularies.
	ThemeFantasy Theme = "fantasy"
)

// Valid reports whether t is a recognized theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeGibberish, ThemeFantasy:
		return true
	default:
		return false
	}
}

// Config is a read-only record controlling a Mutator's behavior.
//
// All fields are meant to be set once at construction and never
// mutated afterward; Mutator never modifies them.
type Config struct {
	// Seed seeds the name generator's PRNG. Required for determinism.
	Seed int64

	// Theme selects the naming vocabulary.
	Theme Theme

	// InternalPrefixes declares dotted module-path prefixes that are
	// treated as internal (and therefore renameable) when they appear
	// as the target of an import statement. Order matters only in
	// that it is preserved for diagnostics; matching does not depend
	// on prefix order.
	InternalPrefixes []string
}

// Validate checks the configuration for well-formedness, returning
// ErrInvalidTheme or ErrInvalidPrefix (both are ConfigError-class
// failures per the engine's error taxonomy) on the first problem found.
func (c Config) Validate() error {
	if !c.Theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Theme)
	}
	for _, prefix := range c.InternalPrefixes {
		if prefix == "" || strings.HasPrefix(prefix, ".") || strings.HasSuffix(prefix, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
		}
	}
	return nil
}

// isInternalModule reports whether the dotted module path fullName
// matches one of the configured internal prefixes exactly, or has a
// prefix followed by a dot as its leading segment.
func (c Config) isInternalModule(fullName string) bool {
	for _, prefix := range c.InternalPrefixes {
		if fullName == prefix || strings.HasPrefix(fullName, prefix+".") {
			return true
		}
	}
	return false
}
