package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

func newTestCache(t *testing.T, mode string) (*implCache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := New(dir, mode, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c.(*implCache), dir
}

func TestNewKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, NewKey("s1", "https://youtu.be/a"), NewKey("s1", "https://youtu.be/a"))
	})

	t.Run("different sources differ", func(t *testing.T) {
		assert.NotEqual(t, NewKey("s1", "https://youtu.be/a").Digest, NewKey("s1", "https://youtu.be/b").Digest)
	})

	t.Run("string form", func(t *testing.T) {
		k := NewKey("s1", "x")
		assert.Equal(t, "s1/"+k.Digest, k.String())
		assert.Len(t, k.Digest, 16)
	})
}

func TestGetPut(t *testing.T) {
	c, dir := newTestCache(t, ModeKeyed)
	ctx := context.Background()
	key := NewKey("s1", "https://youtu.be/a")

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "expected miss on empty cache")

	require.NoError(t, c.Put(ctx, key, "hello world"))
	assert.FileExists(t, filepath.Join(dir, "s1", key.Digest+".txt"))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello world", got)
}

func TestDistinctSourcesDoNotCollide(t *testing.T) {
	c, _ := newTestCache(t, ModeKeyed)
	ctx := context.Background()

	a := NewKey("s1", "https://youtu.be/a")
	b := NewKey("s1", "https://youtu.be/b")
	other := NewKey("s2", "https://youtu.be/a")

	require.NoError(t, c.Put(ctx, a, "video a"))

	_, ok, err := c.Get(ctx, b)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLegacyModeSharesOneSlot(t *testing.T) {
	c, dir := newTestCache(t, ModeLegacy)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, NewKey("s1", "https://youtu.be/a"), "first video"))
	assert.FileExists(t, filepath.Join(dir, "transcript.txt"))

	got, ok, err := c.Get(ctx, NewKey("s2", "https://youtu.be/other"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first video", got)
}

func TestReadsExistingFile(t *testing.T) {
	c, dir := newTestCache(t, ModeLegacy)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transcript.txt"), []byte("from disk"), 0644))

	got, ok, err := c.Get(context.Background(), Key{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "from disk", got)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t, ModeKeyed)
	ctx := context.Background()
	key := NewKey("s1", "x")

	require.NoError(t, c.Delete(ctx, key), "deleting a missing entry is not an error")

	require.NoError(t, c.Put(ctx, key, "t"))
	require.NoError(t, c.Delete(ctx, key))

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReleaseKeepsFiles(t *testing.T) {
	c, dir := newTestCache(t, ModeKeyed)
	ctx := context.Background()
	mine := NewKey("s1", "https://youtu.be/a")
	other := NewKey("s2", "https://youtu.be/a")
	require.NoError(t, c.Put(ctx, mine, "mine"))
	require.NoError(t, c.Put(ctx, other, "other"))

	c.Release(ctx, "s1")

	assert.False(t, c.cached(filepath.Join(dir, "s1", mine.Digest+".txt")))
	assert.True(t, c.cached(filepath.Join(dir, "s2", other.Digest+".txt")))

	got, ok, err := c.Get(ctx, mine)
	require.NoError(t, err)
	require.True(t, ok, "released entry is reloaded from disk")
	assert.Equal(t, "mine", got)
}

func TestSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	key := NewKey("cli", "https://youtu.be/a")

	first, err := New(dir, ModeKeyed, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, key, "persisted"))
	require.NoError(t, first.Close())

	second, err := New(dir, ModeKeyed, logger.Nop())
	require.NoError(t, err)
	defer second.Close()

	got, ok, err := second.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestExternalRemovalEvicts(t *testing.T) {
	c, dir := newTestCache(t, ModeKeyed)
	ctx := context.Background()
	key := NewKey("s1", "https://youtu.be/a")
	require.NoError(t, c.Put(ctx, key, "cached"))

	p := filepath.Join(dir, "s1", key.Digest+".txt")
	require.True(t, c.cached(p))

	require.NoError(t, os.Remove(p))

	// Get must miss even before the watcher has caught up
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Eventually(t, func() bool { return !c.cached(p) }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherEvictsWithoutRead(t *testing.T) {
	c, dir := newTestCache(t, ModeKeyed)
	ctx := context.Background()
	key := NewKey("s1", "https://youtu.be/a")
	require.NoError(t, c.Put(ctx, key, "cached"))
	p := filepath.Join(dir, "s1", key.Digest+".txt")

	require.NoError(t, os.Remove(p))
	assert.Eventually(t, func() bool { return !c.cached(p) }, 3*time.Second, 20*time.Millisecond)
}

func TestNewUnsupportedMode(t *testing.T) {
	_, err := New(t.TempDir(), "redis", logger.Nop())
	assert.Error(t, err)
}
