package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["mutate"])
	assert.True(t, names["diff"])
	assert.True(t, names["report"])
}

func TestMutateCmd_EndToEndAgainstRealFilesystem(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "lib.py"),
		[]byte("class Greeter:\n    def say_hello(self):\n        return 'hi'\n"), 0o644))

	rootCmd.SetArgs([]string{
		"mutate",
		"--target", srcDir,
		"--output", outDir,
		"--seed", "3",
		"--theme", "gibberish",
	})
	require.NoError(t, rootCmd.Execute())

	out, err := os.ReadFile(filepath.Join(outDir, "lib.py"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Greeter")
	assert.NotContains(t, string(out), "say_hello")
}
