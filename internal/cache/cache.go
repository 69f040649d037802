package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

func (c *implCache) path(key Key) string {
	if c.mode == ModeLegacy {
		return filepath.Join(c.dir, legacyFile)
	}
	return filepath.Join(c.dir, key.Session, key.Digest+fileExt)
}

// Get returns the cached transcript for key, if present
func (c *implCache) Get(ctx context.Context, key Key) (string, bool, error) {
	p := c.path(key)

	c.mu.RLock()
	e, ok := c.index[p]
	c.mu.RUnlock()

	if ok {
		if _, err := os.Stat(p); err == nil {
			return e.text, true, nil
		}
		c.evict(ctx, p)
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("read transcript: %w", err))
	}

	text := string(data)
	c.mu.Lock()
	c.index[p] = entry{session: key.Session, text: text}
	c.mu.Unlock()

	c.logger.Debug(ctx, "Loaded transcript from %s", p)
	return text, true, nil
}

// Put persists transcript for key, replacing any previous entry
func (c *implCache) Put(ctx context.Context, key Key, transcript string) error {
	p := c.path(key)
	dir := filepath.Dir(p)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("create transcript dir: %w", err))
	}
	if c.watcher != nil {
		if err := c.watcher.Add(dir); err != nil {
			c.logger.Warn(ctx, "Failed to watch %s: %v", dir, err)
		}
	}

	// Write then rename so a reader never sees a partial transcript
	tmp, err := os.CreateTemp(dir, ".transcript-*.tmp")
	if err != nil {
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(transcript); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("write transcript: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("close transcript: %w", err))
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("move transcript: %w", err))
	}

	c.mu.Lock()
	c.index[p] = entry{session: key.Session, text: transcript}
	c.mu.Unlock()

	c.logger.Info(ctx, "Transcript cached: %s", p)
	return nil
}

// Delete removes the transcript for key; a missing entry is not an error
func (c *implCache) Delete(ctx context.Context, key Key) error {
	p := c.path(key)
	c.evict(ctx, p)

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return stage.Wrap(stage.Cache, stage.KindCache, fmt.Errorf("remove transcript: %w", err))
	}
	c.logger.Info(ctx, "Transcript removed: %s", p)
	return nil
}

// evict drops path from the index
func (c *implCache) evict(ctx context.Context, path string) {
	c.mu.Lock()
	_, ok := c.index[path]
	delete(c.index, path)
	c.mu.Unlock()

	if ok {
		c.logger.Debug(ctx, "Evicted %s", path)
	}
}

// Release drops the index entries loaded by session
func (c *implCache) Release(ctx context.Context, session string) {
	c.mu.Lock()
	n := 0
	for p, e := range c.index {
		if e.session == session {
			delete(c.index, p)
			n++
		}
	}
	c.mu.Unlock()

	if n > 0 {
		c.logger.Debug(ctx, "Released %d cached transcripts of session %s", n, session)
	}
}

func (c *implCache) cached(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[path]
	return ok
}

// Close stops the watcher
func (c *implCache) Close() error {
	if c.watcher == nil {
		return nil
	}
	c.cancel()
	err := c.watcher.Stop()
	<-c.done
	return err
}
