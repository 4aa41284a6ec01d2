// Package driver runs the two-pass mutation engine over a directory
// tree: a serialized collection pass followed by a bounded-concurrency
// transform pass, with locking, run correlation, and metrics wired
// around the pure internal/mutate engine.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/omarish/symbol-mutator/internal/logging"
	"github.com/omarish/symbol-mutator/internal/metrics"
	"github.com/omarish/symbol-mutator/internal/mutate"
)

const lockFileName = ".symbolmutator.lock"

// Options configures one MutateDirectory invocation.
type Options struct {
	// Fs is the filesystem both InputDir and OutputDir are resolved
	// against. Nil means afero.NewOsFs(); tests pass an in-memory
	// afero.MemMapFs.
	Fs afero.Fs

	InputDir  string
	OutputDir string

	MutatorConfig mutate.Config
	Store         mutate.Store

	// Concurrency bounds Pass 2's parallel file transforms. Zero means
	// runtime.GOMAXPROCS(0).
	Concurrency int

	Logger *logging.Logger
}

// Result summarizes one completed run.
type Result struct {
	RunID       string
	FilesWalked int
	Mapping     *mutate.Mapping
}

func isSourceFile(path string) bool {
	return strings.HasSuffix(path, ".py")
}

// MutateDirectory runs Pass 1 then Pass 2 over opts.InputDir, writing
// rewritten files to opts.OutputDir. It acquires an exclusive lock on
// opts.OutputDir for the duration of the run so two invocations never
// interleave writes to the same destination.
func MutateDirectory(ctx context.Context, opts Options) (*Result, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	runID := uuid.NewString()
	logger = logger.WithRunID(runID)

	if err := opts.Fs.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %q: %w", opts.OutputDir, err)
	}

	// flock acquires a real OS-level advisory lock, which only makes
	// sense against the real filesystem; an in-memory afero.Fs (used
	// by tests) has no OS-visible path to lock, so locking is skipped
	// there — cross-run exclusion is only a concern for the real CLI.
	if _, isOsFs := opts.Fs.(*afero.OsFs); isOsFs {
		lockPath := filepath.Join(opts.OutputDir, lockFileName)
		fileLock := flock.New(lockPath)
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquiring output lock %q: %w", lockPath, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", mutate.ErrOutputLocked, lockPath)
		}
		defer fileLock.Unlock()
	}

	logger.Info("mutate_directory started", "input", opts.InputDir, "output", opts.OutputDir)

	paths, err := discoverSourceFiles(opts.Fs, opts.InputDir)
	if err != nil {
		return nil, err
	}

	m, err := mutate.NewMutator(opts.MutatorConfig, storeOption(opts.Store)...)
	if err != nil {
		return nil, err
	}

	collectCtx, endSpan := metrics.StartSpan(ctx, "collect")
	for _, path := range paths {
		content, err := afero.ReadFile(opts.Fs, path)
		if err != nil {
			endSpan()
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		start := time.Now()
		err = m.CollectDefinitions(collectCtx, content, path)
		metrics.RecordParse(collectCtx, "collect", time.Since(start), m.Mapping().Len(), err == nil)
		if err != nil {
			endSpan()
			return nil, fmt.Errorf("collecting %q: %w", path, err)
		}
	}
	endSpan()
	metrics.RecordMappingSize(ctx, m.Mapping().Len())
	logger.Info("collection complete", "files", len(paths), "mapped_symbols", m.Mapping().Len())

	result := &Result{RunID: runID, FilesWalked: len(paths), Mapping: m.Mapping()}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for _, path := range paths {
		path := path
		group.Go(func() error {
			return transformOne(groupCtx, opts, m, path, logger)
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}

	logger.Info("mutate_directory finished", "files", len(paths))
	return result, nil
}

func transformOne(ctx context.Context, opts Options, m *mutate.Mutator, path string, logger *logging.Logger) error {
	content, err := afero.ReadFile(opts.Fs, path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	start := time.Now()
	out, err := m.TransformCode(ctx, content, path)
	metrics.RecordTransform(ctx, time.Since(start))
	if err != nil {
		logger.Error("transform failed", "file", path, "error", err)
		return fmt.Errorf("transforming %q: %w", path, err)
	}

	rel, err := filepath.Rel(opts.InputDir, path)
	if err != nil {
		return fmt.Errorf("computing relative path for %q: %w", path, err)
	}
	destPath := filepath.Join(opts.OutputDir, rel)

	if err := opts.Fs.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating output subdirectory for %q: %w", destPath, err)
	}
	if err := afero.WriteFile(opts.Fs, destPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", destPath, err)
	}
	return nil
}

// discoverSourceFiles walks root on fs, collecting every eligible
// source file path in sorted order so Pass 1's processing order is a
// pure function of the tree's contents, not directory-listing order.
func discoverSourceFiles(fsys afero.Fs, root string) ([]string, error) {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if isSourceFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func storeOption(store mutate.Store) []mutate.MutatorOption {
	if store == nil {
		return nil
	}
	return []mutate.MutatorOption{mutate.WithStore(store)}
}
