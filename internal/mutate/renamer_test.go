package mutate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapping(t *testing.T, entries map[string]Kind) *Mapping {
	t.Helper()
	m := NewMapping()
	gen := newNameGenerator(1, ThemeGibberish)
	for name, kind := range entries {
		newName, err := gen.generate(name, kind)
		require.NoError(t, err)
		m.insert(name, newName, kind)
	}
	return m
}

func TestTransformSource_RenamesClassAndFunction(t *testing.T) {
	src := []byte(`
class DataProcessor:
    def process(self, value):
        return value
`)
	mapping := newMapping(t, map[string]Kind{"DataProcessor": KindClass, "process": KindFunction})

	out, err := transformSource(context.Background(), src, "mod.py", mapping, Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	classNew, _ := mapping.Lookup("DataProcessor")
	fnNew, _ := mapping.Lookup("process")
	assert.Contains(t, string(out), "class "+classNew+":")
	assert.Contains(t, string(out), "def "+fnNew+"(self, value):")
	assert.NotContains(t, string(out), "DataProcessor")
}

func TestTransformSource_ExternalAttributeVetoed(t *testing.T) {
	src := []byte(`
import os

def process():
    return os.path.join("a", "b")
`)
	mapping := newMapping(t, map[string]Kind{"process": KindFunction, "path": KindVariable, "join": KindVariable})

	out, err := transformSource(context.Background(), src, "mod.py", mapping, Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Contains(t, string(out), "os.path.join(")
}

func TestTransformSource_InternalModulePathRewritten(t *testing.T) {
	src := []byte(`
import myapp.utils

def run():
    return myapp.utils.helper()
`)
	cfg := Config{Theme: ThemeGibberish, InternalPrefixes: []string{"myapp"}}
	mapping := NewMapping()
	gen := newNameGenerator(5, ThemeGibberish)
	newMod, err := gen.generate("myapp.utils", KindVariable)
	require.NoError(t, err)
	mapping.insert("myapp.utils", newMod, KindVariable)

	out, err := transformSource(context.Background(), src, "mod.py", mapping, cfg)
	require.NoError(t, err)

	assert.Contains(t, string(out), "import "+newMod)
}

func TestTransformSource_FromImportExternalNamesLeftVerbatim(t *testing.T) {
	src := []byte(`from external_lib import helper_fn

def run():
    return helper_fn()
`)
	mapping := NewMapping()

	out, err := transformSource(context.Background(), src, "mod.py", mapping, Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Equal(t, string(src), string(out))
}

// TestTransformSource_FromImportExternalNameCollidingWithMappingLeftVerbatim
// covers the case the empty-mapping test above cannot exercise: a name
// imported from an external module that happens to collide with a
// mapping entry (because some other file in the package defines a
// top-level symbol of the same name) must still not be rewritten, nor
// must an `as`-alias on that import — M being external wins regardless
// of what is in the mapping.
func TestTransformSource_FromImportExternalNameCollidingWithMappingLeftVerbatim(t *testing.T) {
	src := []byte("from thirdpartylib import parse, fetch as get_data\n")
	mapping := newMapping(t, map[string]Kind{"parse": KindFunction, "fetch": KindFunction, "get_data": KindFunction})

	out, err := transformSource(context.Background(), src, "mod.py", mapping, Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Equal(t, string(src), string(out), "an externally-imported name/alias must stay verbatim even if it collides with an unrelated mapping entry")
}

func TestTransformSource_WhitespaceAndCommentsPreserved(t *testing.T) {
	src := []byte(`# a leading comment
class Thing:
    # inner comment
    def method(self):
        pass  # trailing
`)
	mapping := newMapping(t, map[string]Kind{"Thing": KindClass})

	out, err := transformSource(context.Background(), src, "mod.py", mapping, Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Contains(t, string(out), "# a leading comment")
	assert.Contains(t, string(out), "# inner comment")
	assert.Contains(t, string(out), "pass  # trailing")
}

func TestApplyEdits_OverlapDetected(t *testing.T) {
	content := []byte("abcdef")
	edits := []edit{
		{start: 0, end: 3, replacement: "xyz"},
		{start: 2, end: 5, replacement: "qqq"},
	}
	_, err := applyEdits(content, edits)
	assert.Error(t, err)
}

func TestApplyEdits_NoEditsReturnsCopy(t *testing.T) {
	content := []byte("unchanged")
	out, err := applyEdits(content, nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", string(out))
}
