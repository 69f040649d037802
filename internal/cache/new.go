package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/watcher"
)

const (
	ModeKeyed  = "keyed"
	ModeLegacy = "legacy"

	legacyFile = "transcript.txt"
	fileExt    = ".txt"
)

// entry is an indexed transcript and the session that loaded it
type entry struct {
	session string
	text    string
}

type implCache struct {
	dir    string
	mode   string
	logger logger.Logger

	mu    sync.RWMutex
	index map[string]entry

	watcher watcher.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a file-backed Cache rooted at dir. Files removed from dir by other
// processes are evicted from the in-memory index as soon as the watcher sees them.
func New(dir, mode string, log logger.Logger) (Cache, error) {
	dir = filepath.Clean(dir)
	if mode == "" {
		mode = ModeKeyed
	}
	if mode != ModeKeyed && mode != ModeLegacy {
		return nil, fmt.Errorf("unsupported cache mode %q", mode)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	c := &implCache{
		dir:    dir,
		mode:   mode,
		logger: log.With("cache"),
		index:  make(map[string]entry),
		done:   make(chan struct{}),
	}

	w, err := watcher.New(dir, fileExt, c.evict, log)
	if err != nil {
		// Get re-checks the file on every hit, so the cache stays correct without it
		c.logger.Warn(context.Background(), "Cache watcher unavailable: %v", err)
		close(c.done)
		return c, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.watcher = w
	c.cancel = cancel
	go func() {
		defer close(c.done)
		_ = w.Start(ctx)
	}()

	return c, nil
}
