package watcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

// New creates a Watcher that reports files with the given extension leaving rootDir
// or any of its subdirectories. New subdirectories are picked up as they appear.
func New(rootDir, ext string, onRemove EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &implWatcher{
		rootDir:  rootDir,
		ext:      ext,
		onRemove: onRemove,
		logger:   log.With("watcher"),
		watcher:  watcher,
	}

	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return w, nil
}
