package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

func TestLoad_MissingFileReturnsBaseUnchanged(t *testing.T) {
	base := Defaults()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestLoad_EmptyPathReturnsBaseUnchanged(t *testing.T) {
	base := Defaults()
	cfg, err := Load("", base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestLoad_FileOverridesBaseFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "target: ./src\noutput: ./out\nseed: 7\ntheme: fantasy\ninternal_prefix:\n  - myapp\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, Defaults())
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Target)
	assert.Equal(t, "./out", cfg.Output)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "fantasy", cfg.Theme)
	assert.Equal(t, []string{"myapp"}, cfg.InternalPrefix)
}

func TestDefaults_MatchesDocumentedBaseline(t *testing.T) {
	d := Defaults()
	assert.Equal(t, int64(42), d.Seed)
	assert.Equal(t, string(mutate.ThemeGibberish), d.Theme)
}

func TestMutateConfig_RejectsInvalidTheme(t *testing.T) {
	cfg := Config{Seed: 1, Theme: "not-a-theme"}
	_, err := cfg.MutateConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, mutate.ErrInvalidTheme)
}

func TestMutateConfig_ProjectsFieldsThrough(t *testing.T) {
	cfg := Config{Seed: 9, Theme: "gibberish", InternalPrefix: []string{"app"}}
	mc, err := cfg.MutateConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(9), mc.Seed)
	assert.Equal(t, mutate.ThemeGibberish, mc.Theme)
	assert.Equal(t, []string{"app"}, mc.InternalPrefixes)
}
