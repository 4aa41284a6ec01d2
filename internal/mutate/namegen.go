package mutate

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// maxGenerateAttempts bounds the retry loop in generate so a pathological
// seed/theme/vocabulary combination fails loudly instead of spinning
// forever.
const maxGenerateAttempts = 1024

// nameGenerator is a deterministic stream of fresh identifiers. It is a
// pure function of its internal PRNG state and the (original, kind)
// arguments passed to generate; given the same seed and the same
// ordered sequence of generate calls, it always returns the same
// sequence of names.
//
// The PRNG is math/rand/v2's PCG, a named counter-based generator,
// seeded once at construction from the configured int64 seed. Every
// draw made while generating a name (vocabulary index, hash salt)
// advances the PRNG, so reordering calls changes the output — callers
// that need cross-run determinism must also pin call order (the
// Mutator does this via per-kind sorted insertion, see mutator.go).
type nameGenerator struct {
	rng       *rand.Rand
	theme     Theme
	generated map[string]struct{}
}

// newNameGenerator constructs a nameGenerator seeded by seed.
func newNameGenerator(seed int64, theme Theme) *nameGenerator {
	source := rand.NewPCG(uint64(seed), uint64(seed))
	return &nameGenerator{
		rng:       rand.New(source),
		theme:     theme,
		generated: make(map[string]struct{}),
	}
}

// generate returns a name for original that has never before been
// returned by this generator and that differs from original itself.
// It fails with ErrNameExhausted if no such name is found within
// maxGenerateAttempts tries.
func (g *nameGenerator) generate(original string, kind Kind) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		var candidate string
		if g.theme == ThemeFantasy {
			candidate = g.generateFantasy(kind)
		} else {
			candidate = g.generateGibberish(original)
		}

		if candidate == original {
			continue
		}
		if _, taken := g.generated[candidate]; taken {
			continue
		}

		g.generated[candidate] = struct{}{}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: could not name %q after %d attempts", ErrNameExhausted, original, maxGenerateAttempts)
}

// generateGibberish produces "c_"/"f_" followed by the first six hex
// digits of an md5 digest of original concatenated with a PRNG-drawn
// salt. The casing prefix mirrors the first character of original so
// the output stays a cheap signal of the original's kind without
// needing to thread Kind through the gibberish path.
func (g *nameGenerator) generateGibberish(original string) string {
	salt := strconv.FormatUint(g.rng.Uint64(), 10)
	sum := md5.Sum([]byte(original + salt))
	hex6 := hex.EncodeToString(sum[:])[:6]

	prefix := "f_"
	if original != "" && isUpper(original[0]) {
		prefix = "c_"
	}
	return prefix + hex6
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// generateFantasy produces a name from the closed fantasy vocabularies,
// shaped according to kind:
//
//   - KindClass:    <Prefix><Suffix>, CamelCase.
//   - KindFunction: <verb>_<suffix-lower>.
//   - otherwise:    <prefix-lower>_<prefix-lower>.
func (g *nameGenerator) generateFantasy(kind Kind) string {
	switch kind {
	case KindClass:
		return g.choice(fantasyPrefixes) + g.choice(fantasySuffixes)
	case KindFunction:
		verb := g.choice(fantasyVerbs)
		noun := strings.ToLower(g.choice(fantasySuffixes))
		return verb + "_" + noun
	default:
		a := strings.ToLower(g.choice(fantasyPrefixes))
		b := strings.ToLower(g.choice(fantasyPrefixes))
		return a + "_" + b
	}
}

// choice draws a uniformly random element from words, advancing the
// PRNG by exactly one draw.
func (g *nameGenerator) choice(words []string) string {
	return words[g.rng.IntN(len(words))]
}
