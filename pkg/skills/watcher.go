package skills

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/logger"
)

// Watcher invalidates catalog caches when files inside a skill bundle
// change on disk. Discovery is not re-run; the set of skills and their
// Level 1 metadata are fixed for the session, but edited instructions and
// resources are picked up on their next load.
type Watcher struct {
	catalog *Catalog
	fsw     *fsnotify.Watcher
	bundles []string
	done    chan struct{}
}

// WatchCatalog starts watching the bundle directories of every skill in the
// catalog. The watcher runs until ctx is cancelled or Close is called.
func WatchCatalog(ctx context.Context, catalog *Catalog) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		catalog: catalog,
		fsw:     fsw,
		bundles: catalog.Directories(),
		done:    make(chan struct{}),
	}

	for _, dir := range w.bundles {
		if err := w.addRecursive(ctx, dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.run(ctx)

	logger.G(ctx).WithField("bundles", len(w.bundles)).Debug("Skill watcher started")
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) addRecursive(ctx context.Context, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, "failed to watch skill bundle %s", root)
		}
		if info.IsDir() {
			logger.G(ctx).WithField("directory", path).Debug("Watching skill directory")
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	log := logger.G(ctx)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			bundle := w.bundleFor(event.Name)
			if bundle == "" {
				continue
			}

			log.WithFields(map[string]interface{}{
				"file":      event.Name,
				"operation": event.Op.String(),
			}).Debug("Skill bundle changed, invalidating caches")
			w.catalog.InvalidateDir(bundle)

			// New subdirectories need their own watch to see later edits.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						log.WithError(err).WithField("directory", event.Name).Warn("Failed to watch new skill directory")
					}
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("Skill watcher error")
		case <-ctx.Done():
			w.fsw.Close()
			return
		}
	}
}

// bundleFor maps an event path to the skill bundle directory containing it.
func (w *Watcher) bundleFor(path string) string {
	cleaned := filepath.Clean(path)
	for _, dir := range w.bundles {
		bundle := filepath.Clean(dir)
		if cleaned == bundle || strings.HasPrefix(cleaned, bundle+string(filepath.Separator)) {
			return bundle
		}
	}
	return ""
}
