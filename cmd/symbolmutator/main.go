package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "symbolmutator",
	Short: "Deterministic, seed-driven Python symbol obfuscator",
	Long: `symbolmutator rewrites class, function, and internal-module names in a
Python codebase to seed-derived replacements, while leaving external
library usage, string literals, and whitespace untouched.

The same seed and theme always produce the same mapping, so an
obfuscated codebase can be regenerated identically, diffed against a
prior run, or extended incrementally as new files are added.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
