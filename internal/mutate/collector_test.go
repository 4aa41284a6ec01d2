package mutate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDefinitions_ClassesAndFunctions(t *testing.T) {
	src := []byte(`
class DataProcessor:
    def process(self, value):
        return value

def top_level():
    pass
`)
	defs, err := collectDefinitions(context.Background(), src, "mod.py", Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Contains(t, defs.classes, "DataProcessor")
	assert.Contains(t, defs.functions, "process")
	assert.Contains(t, defs.functions, "top_level")
}

func TestCollectDefinitions_ProtectedNamesExcluded(t *testing.T) {
	src := []byte(`
class Thing:
    def __init__(self):
        pass
    def append(self, x):
        pass
    def custom_method(self):
        pass
`)
	defs, err := collectDefinitions(context.Background(), src, "mod.py", Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.NotContains(t, defs.functions, "__init__")
	assert.NotContains(t, defs.functions, "append")
	assert.Contains(t, defs.functions, "custom_method")
	assert.Contains(t, defs.observed, "__init__")
	assert.Contains(t, defs.observed, "append")
	assert.NotContains(t, defs.observed, "custom_method")
}

func TestCollectDefinitions_InternalImportRegistered(t *testing.T) {
	src := []byte(`
import myapp.utils
from myapp.models import User
import external_lib
`)
	cfg := Config{Theme: ThemeGibberish, InternalPrefixes: []string{"myapp"}}
	defs, err := collectDefinitions(context.Background(), src, "mod.py", cfg)
	require.NoError(t, err)

	assert.Contains(t, defs.modules, "myapp.utils")
	assert.Contains(t, defs.modules, "myapp.models")
	assert.NotContains(t, defs.modules, "external_lib")
}

func TestCollectDefinitions_AliasedImport(t *testing.T) {
	src := []byte(`import myapp.utils as u`)
	cfg := Config{Theme: ThemeGibberish, InternalPrefixes: []string{"myapp"}}
	defs, err := collectDefinitions(context.Background(), src, "mod.py", cfg)
	require.NoError(t, err)

	assert.Contains(t, defs.modules, "myapp.utils")
}

func TestCollectDefinitions_SyntaxErrorRejected(t *testing.T) {
	src := []byte(`def broken(:\n    pass`)
	_, err := collectDefinitions(context.Background(), src, "mod.py", Config{Theme: ThemeGibberish})
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestCollectDefinitions_NestedClassAndMethod(t *testing.T) {
	src := []byte(`
class Outer:
    class Inner:
        def helper(self):
            pass
`)
	defs, err := collectDefinitions(context.Background(), src, "mod.py", Config{Theme: ThemeGibberish})
	require.NoError(t, err)

	assert.Contains(t, defs.classes, "Outer")
	assert.Contains(t, defs.classes, "Inner")
	assert.Contains(t, defs.functions, "helper")
}
