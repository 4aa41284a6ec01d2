package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omarish/symbol-mutator/internal/mutate"
	"github.com/omarish/symbol-mutator/internal/store"
)

var (
	reportCacheDB string
	reportSeed    int64
	reportTheme   string
)

// reportCmd prints a previously persisted mapping as a table, reading
// from the sqlite cache a prior `mutate --cache-db` run wrote to.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a persisted symbol mapping as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportCacheDB == "" {
			return fmt.Errorf("--cache-db is required")
		}
		s, err := store.Open(reportCacheDB)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.Entries(cmd.Context(), reportSeed, mutate.Theme(reportTheme))
		if err != nil {
			return err
		}
		printMappingTable(entries)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportCacheDB, "cache-db", "", "sqlite file to read the mapping from (required)")
	reportCmd.Flags().Int64Var(&reportSeed, "seed", 42, "seed the mapping was generated with")
	reportCmd.Flags().StringVar(&reportTheme, "theme", "gibberish", "theme the mapping was generated with")

	rootCmd.AddCommand(reportCmd)
}
