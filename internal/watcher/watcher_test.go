package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

func TestWatcherReportsRemoval(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "session-1")
	require.NoError(t, os.MkdirAll(sub, 0755))
	target := filepath.Join(sub, "abc.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0644))
	other := filepath.Join(sub, "abc.tmp")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	removed := make(chan string, 4)
	w, err := New(root, ".txt", func(ctx context.Context, p string) {
		select {
		case removed <- p:
		default:
		}
	}, logger.Nop())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.Remove(other))
	require.NoError(t, os.Remove(target))

	select {
	case p := <-removed:
		require.Equal(t, target, p)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	removed := make(chan string, 1)
	w, err := New(root, ".txt", func(ctx context.Context, p string) {
		select {
		case removed <- p:
		default:
		}
	}, logger.Nop())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	sub := filepath.Join(root, "late")
	require.NoError(t, os.MkdirAll(sub, 0755))
	target := filepath.Join(sub, "x.txt")

	// Give the watcher time to register the new directory
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
		require.NoError(t, os.Remove(target))
		select {
		case p := <-removed:
			require.Equal(t, target, p)
			return
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for removal in new directory")
		}
	}
}

func TestNewMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), ".txt", func(context.Context, string) {}, logger.Nop())
	require.Error(t, err)
}
