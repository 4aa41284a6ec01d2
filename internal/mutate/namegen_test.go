package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameGenerator_GibberishDeterministic(t *testing.T) {
	g1 := newNameGenerator(42, ThemeGibberish)
	g2 := newNameGenerator(42, ThemeGibberish)

	n1, err := g1.generate("DataProcessor", KindClass)
	require.NoError(t, err)
	n2, err := g2.generate("DataProcessor", KindClass)
	require.NoError(t, err)

	assert.Equal(t, n1, n2, "same seed and call sequence must produce identical names")
}

func TestNameGenerator_GibberishCasingPrefix(t *testing.T) {
	g := newNameGenerator(1, ThemeGibberish)

	upper, err := g.generate("DataProcessor", KindClass)
	require.NoError(t, err)
	assert.Equal(t, "c_", upper[:2])

	lower, err := g.generate("process", KindFunction)
	require.NoError(t, err)
	assert.Equal(t, "f_", lower[:2])
}

func TestNameGenerator_NeverEqualsOriginal(t *testing.T) {
	g := newNameGenerator(7, ThemeGibberish)
	for i := 0; i < 50; i++ {
		name, err := g.generate("x", KindVariable)
		require.NoError(t, err)
		assert.NotEqual(t, "x", name)
	}
}

func TestNameGenerator_NeverRepeats(t *testing.T) {
	g := newNameGenerator(99, ThemeGibberish)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name, err := g.generate("thing", KindVariable)
		require.NoError(t, err)
		assert.False(t, seen[name], "name %q generated twice", name)
		seen[name] = true
	}
}

func TestNameGenerator_FantasyShapes(t *testing.T) {
	g := newNameGenerator(3, ThemeFantasy)

	class, err := g.generate("DataProcessor", KindClass)
	require.NoError(t, err)
	assert.NotContains(t, class, "_")

	fn, err := g.generate("process", KindFunction)
	require.NoError(t, err)
	assert.Contains(t, fn, "_")

	v, err := g.generate("counter", KindVariable)
	require.NoError(t, err)
	assert.Contains(t, v, "_")
}

func TestNameGenerator_DifferentSeedsDiverge(t *testing.T) {
	a := newNameGenerator(1, ThemeGibberish)
	b := newNameGenerator(2, ThemeGibberish)

	na, err := a.generate("DataProcessor", KindClass)
	require.NoError(t, err)
	nb, err := b.generate("DataProcessor", KindClass)
	require.NoError(t, err)

	assert.NotEqual(t, na, nb)
}
