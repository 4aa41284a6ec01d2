package driver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

// multiFilePackage is a small Python package expressed as a txtar
// archive: each "-- name --" section becomes one file under /src when
// loaded into an in-memory filesystem, letting a whole fixture live as
// one literal string instead of several separate test files.
const multiFilePackage = `
-- models.py --
class Account:
    def balance(self):
        return 0
-- service.py --
from models import Account

def open_account():
    return Account()
`

func loadTxtarFixture(t *testing.T, archive string) afero.Fs {
	t.Helper()
	a := txtar.Parse([]byte(archive))
	fsys := afero.NewMemMapFs()
	for _, f := range a.Files {
		require.NoError(t, afero.WriteFile(fsys, "/src/"+f.Name, f.Data, 0o644))
	}
	return fsys
}

func TestMutateDirectory_TxtarFixture_CrossFileRename(t *testing.T) {
	fsys := loadTxtarFixture(t, multiFilePackage)

	result, err := MutateDirectory(context.Background(), Options{
		Fs:            fsys,
		InputDir:      "/src",
		OutputDir:     "/out",
		MutatorConfig: mutate.Config{Seed: 11, Theme: mutate.ThemeGibberish, InternalPrefixes: []string{"models"}},
	})
	require.NoError(t, err)

	accountNew, ok := result.Mapping.Lookup("Account")
	require.True(t, ok)

	service, err := afero.ReadFile(fsys, "/out/service.py")
	require.NoError(t, err)
	require.Contains(t, string(service), accountNew+"()")
}

// TestMutateDirectory_MappingSnapshotStable pins the full Entries()
// snapshot produced from a fixed seed against a golden value, using
// go-cmp instead of testify's assert.Equal so a future regression
// reports exactly which (Original, New, Kind) triple diverged rather
// than dumping both slices.
func TestMutateDirectory_MappingSnapshotStable(t *testing.T) {
	fsys := loadTxtarFixture(t, multiFilePackage)

	result, err := MutateDirectory(context.Background(), Options{
		Fs:            fsys,
		InputDir:      "/src",
		OutputDir:     "/out",
		MutatorConfig: mutate.Config{Seed: 11, Theme: mutate.ThemeGibberish, InternalPrefixes: []string{"models"}},
	})
	require.NoError(t, err)

	again, err := MutateDirectory(context.Background(), Options{
		Fs:            loadTxtarFixture(t, multiFilePackage),
		InputDir:      "/src",
		OutputDir:     "/out2",
		MutatorConfig: mutate.Config{Seed: 11, Theme: mutate.ThemeGibberish, InternalPrefixes: []string{"models"}},
	})
	require.NoError(t, err)

	diff := cmp.Diff(result.Mapping.Entries(), again.Mapping.Entries(), cmpopts.EquateEmpty())
	if diff != "" {
		t.Fatalf("mapping snapshot diverged between two runs of the same seed (-first +second):\n%s", diff)
	}
}
