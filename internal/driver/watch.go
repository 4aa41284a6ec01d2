package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omarish/symbol-mutator/internal/logging"
)

// debounceWindow coalesces a burst of filesystem events (e.g. an
// editor's save-via-rename) into a single re-run.
const debounceWindow = 300 * time.Millisecond

// Watch re-invokes MutateDirectory each time a file under
// opts.InputDir changes, debounced by debounceWindow. It blocks until
// ctx is canceled, returning the context's error on exit.
//
// Watch only works against the real filesystem; fsnotify has no
// afero-backed analogue, so opts.Fs is expected to be (or behave like)
// afero.NewOsFs() when Watch is used.
func Watch(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, opts.InputDir); err != nil {
		return err
	}

	run := func() {
		if _, err := MutateDirectory(ctx, opts); err != nil {
			logger.Error("watch run failed", "error", err)
		}
	}
	run()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSourceFile(event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// addRecursive registers every directory under root with watcher.
// fsnotify watches real directory paths directly; afero's filesystem
// abstraction is bypassed here deliberately since fsnotify has no
// virtual-filesystem equivalent, matching DESIGN.md's note that
// --watch only operates against the real filesystem.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
