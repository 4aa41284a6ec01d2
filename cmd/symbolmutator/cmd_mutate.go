package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omarish/symbol-mutator/internal/config"
	"github.com/omarish/symbol-mutator/internal/driver"
	"github.com/omarish/symbol-mutator/internal/logging"
	"github.com/omarish/symbol-mutator/internal/metrics"
	"github.com/omarish/symbol-mutator/internal/store"
)

var (
	mutateTarget         string
	mutateOutput         string
	mutateSeed           int64
	mutateTheme          string
	mutateInternalPrefix []string
	mutateConfigPath     string
	mutateCacheDB        string
	mutateWatch          bool
	mutateMetricsAddr    string
	mutateVerboseMetrics bool
	mutateSummaryTable   bool
)

// mutateCmd runs the two-pass obfuscation engine over a directory tree.
//
// Examples:
//
//	symbolmutator mutate --target ./src --output ./dist
//	symbolmutator mutate --target ./src --output ./dist --seed 7 --theme fantasy
//	symbolmutator mutate --target ./src --output ./dist --internal-prefix myapp --watch
var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Rename symbols across a Python source tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		base := config.Defaults()
		base.Target = mutateTarget
		base.Output = mutateOutput
		base.Seed = mutateSeed
		base.Theme = mutateTheme
		base.InternalPrefix = mutateInternalPrefix
		base.CacheDB = mutateCacheDB
		base.Watch = mutateWatch
		base.MetricsAddr = mutateMetricsAddr
		base.VerboseMetrics = mutateVerboseMetrics
		base.SummaryTable = mutateSummaryTable

		cfg, err := config.Load(mutateConfigPath, base)
		if err != nil {
			return err
		}
		mutatorCfg, err := cfg.MutateConfig()
		if err != nil {
			return err
		}

		if cfg.VerboseMetrics {
			provider, err := metrics.NewStdout(ctx)
			if err != nil {
				return err
			}
			defer provider.Shutdown(ctx)
		} else if cfg.MetricsAddr != "" {
			provider, err := metrics.NewPrometheus(cfg.MetricsAddr)
			if err != nil {
				return err
			}
			defer provider.Shutdown(ctx)
		}

		var mappingStore *store.SQLiteStore
		if cfg.CacheDB != "" {
			mappingStore, err = store.Open(cfg.CacheDB)
			if err != nil {
				return err
			}
			defer mappingStore.Close()
		}

		opts := driver.Options{
			InputDir:      cfg.Target,
			OutputDir:     cfg.Output,
			MutatorConfig: mutatorCfg,
			Logger:        logging.Default(),
		}
		if mappingStore != nil {
			opts.Store = mappingStore
		}

		if cfg.Watch {
			fmt.Fprintln(os.Stderr, styleMuted.Render("watching "+cfg.Target+" for changes, press Ctrl-C to stop"))
			return driver.Watch(ctx, opts)
		}

		result, err := driver.MutateDirectory(ctx, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
			return err
		}

		fmt.Println(styleSuccess.Render(fmt.Sprintf(
			"mutated %d files, %d symbols renamed (run %s)", result.FilesWalked, result.Mapping.Len(), result.RunID)))

		if cfg.SummaryTable {
			printMappingTable(result.Mapping.Entries())
		}
		return nil
	},
}

func init() {
	mutateCmd.Flags().StringVar(&mutateTarget, "target", "", "path to the source tree to mutate (required)")
	mutateCmd.Flags().StringVar(&mutateOutput, "output", "", "path to write the mutated tree to (required)")
	mutateCmd.Flags().Int64Var(&mutateSeed, "seed", 42, "seed for deterministic name generation")
	mutateCmd.Flags().StringVar(&mutateTheme, "theme", "gibberish", "naming theme: gibberish or fantasy")
	mutateCmd.Flags().StringArrayVar(&mutateInternalPrefix, "internal-prefix", nil, "dotted module prefix treated as internal (repeatable)")
	mutateCmd.Flags().StringVar(&mutateConfigPath, "config", "", "optional YAML config file")
	mutateCmd.Flags().StringVar(&mutateCacheDB, "cache-db", "", "optional sqlite file persisting the mapping across runs")
	mutateCmd.Flags().BoolVar(&mutateWatch, "watch", false, "re-run on every source change")
	mutateCmd.Flags().StringVar(&mutateMetricsAddr, "metrics-addr", "", "serve Prometheus metrics at this address")
	mutateCmd.Flags().BoolVar(&mutateVerboseMetrics, "verbose-metrics", false, "print metrics to stdout")
	mutateCmd.Flags().BoolVar(&mutateSummaryTable, "summary-table", false, "print the mapping as a table after mutating")

	rootCmd.AddCommand(mutateCmd)
}
