package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

type implWatcher struct {
	rootDir  string
	ext      string
	onRemove EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start delivers removal events until ctx is done or Stop is called
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.rootDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handle(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		// Session directories are created lazily
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn(ctx, "Failed to watch %s: %v", event.Name, err)
			}
		}

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if !w.matches(event.Name) {
			w.logger.Debug(ctx, "Ignoring removal: %s", event.Name)
			return
		}
		w.logger.Info(ctx, "File removed externally: %s", event.Name)
		w.onRemove(ctx, event.Name)
	}
}

// Add watches one more directory
func (w *implWatcher) Add(dir string) error {
	return w.watcher.Add(dir)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// matches checks if the file has the watched extension
func (w *implWatcher) matches(path string) bool {
	return strings.EqualFold(filepath.Ext(path), w.ext)
}
