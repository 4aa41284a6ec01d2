package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/omarish/symbol-mutator/internal/diffutil"
	"github.com/omarish/symbol-mutator/internal/mutate"
)

var (
	diffTarget         string
	diffSeed           int64
	diffTheme          string
	diffInternalPrefix []string
)

// diffCmd previews what `mutate` would change, without writing any
// output files.
//
// Examples:
//
//	symbolmutator diff --target ./src
//	symbolmutator diff --target ./src --seed 7 --theme fantasy
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Preview symbol renames as a unified diff, without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		mutatorCfg := mutate.Config{
			Seed:             diffSeed,
			Theme:            mutate.Theme(diffTheme),
			InternalPrefixes: diffInternalPrefix,
		}
		m, err := mutate.NewMutator(mutatorCfg)
		if err != nil {
			return err
		}

		fsys := afero.NewOsFs()
		var paths []string
		err = afero.Walk(fsys, diffTarget, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(path) == ".py" {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return err
		}

		contents := make(map[string][]byte, len(paths))
		for _, path := range paths {
			content, err := afero.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			contents[path] = content
			if err := m.CollectDefinitions(ctx, content, path); err != nil {
				return err
			}
		}

		for _, path := range paths {
			out, err := m.TransformCode(ctx, contents[path], path)
			if err != nil {
				return err
			}
			rendered, err := diffutil.Render(path, contents[path], out)
			if err != nil {
				return err
			}
			if rendered != "" {
				fmt.Print(rendered)
			}
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffTarget, "target", "", "path to the source tree to preview (required)")
	diffCmd.Flags().Int64Var(&diffSeed, "seed", 42, "seed for deterministic name generation")
	diffCmd.Flags().StringVar(&diffTheme, "theme", "gibberish", "naming theme: gibberish or fantasy")
	diffCmd.Flags().StringArrayVar(&diffInternalPrefix, "internal-prefix", nil, "dotted module prefix treated as internal (repeatable)")

	rootCmd.AddCommand(diffCmd)
}
