// Package bootstrap implements C7 (spec.md §4.7): the startup scan that
// populates every Kind Registry from the data directory before the
// Dispatcher is allowed to serve requests.
package bootstrap

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
)

// maxConcurrentOpens bounds how many data files are opened at once across
// all three kinds. Native-engine construction is the expensive step
// (parsing a file), so this is the one place bootstrap fans out.
const maxConcurrentOpens = 8

// Run lists dataRoot's three kind subdirectories one after another and
// installs every classifiable file into set, loading the files concurrently
// (at most maxConcurrentOpens at a time) through the same Load path the
// Watcher uses for hot reload. A per-file failure is logged and does not fail the
// scan; only a failure to read a kind's directory itself is fatal, per
// spec.md §6's "unreadable data root" exit condition.
func Run(dataRoot string, set *registries.Set, logger *zap.Logger) error {
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentOpens)

	for _, kind := range engine.AllKinds() {
		kind := kind
		dir := filepath.Join(dataRoot, kind.Dir())

		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			logger.Info("bootstrap: kind directory absent, skipping", zap.String("kind", string(kind)), zap.String("dir", dir))
			continue
		}
		if err != nil {
			return err
		}

		for _, entry := range entries {
			entry := entry
			g.Go(func() error {
				loadEntry(dir, entry, set, logger)
				return nil
			})
		}
	}

	return g.Wait()
}

func loadEntry(dir string, entry os.DirEntry, set *registries.Set, logger *zap.Logger) {
	path := filepath.Join(dir, entry.Name())

	df, ok := engine.Classify(path)
	if !ok {
		return
	}

	if err := set.Load(df); err != nil {
		logger.Warn("bootstrap: failed to load data file, skipping",
			zap.String("kind", string(df.Kind)),
			zap.String("language", df.Language),
			zap.String("path", df.Path),
			zap.Error(err),
		)
	}
}
