package fetcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
	"github.com/nguyentantai21042004/tubeqa/pkg/executor"
)

type fakeExecutor struct {
	name string
	args []string
	err  error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return "", f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func newTestFetcher(exec executor.Executor) Fetcher {
	return New(config.DownloaderConfig{BinaryPath: "yt-dlp", AudioFormat: "mp3"}, exec, logger.Nop())
}

func TestFetch(t *testing.T) {
	exec := &fakeExecutor{}
	out := filepath.Join(t.TempDir(), "s1", "audio.mp3")

	path, err := newTestFetcher(exec).Fetch(context.Background(), "https://youtu.be/abc", out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	assert.Equal(t, "yt-dlp", exec.name)
	assert.Equal(t, []string{
		"-x",
		"--audio-format", "mp3",
		"--output", out,
		"--force-overwrites",
		"--no-playlist",
		"https://youtu.be/abc",
	}, exec.args)
	assert.DirExists(t, filepath.Dir(out))
}

func TestFetchToolFailure(t *testing.T) {
	exec := &fakeExecutor{err: &executor.CommandError{
		Name:     "yt-dlp",
		ExitCode: 1,
		Stderr:   "ERROR: Video unavailable",
		Err:      errors.New("exit status 1"),
	}}

	_, err := newTestFetcher(exec).Fetch(context.Background(), "https://youtu.be/gone", filepath.Join(t.TempDir(), "audio.mp3"))
	require.Error(t, err)

	var se *stage.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stage.Fetch, se.Stage)
	assert.Equal(t, stage.KindTool, se.Kind)
	assert.Contains(t, se.Message, "ERROR: Video unavailable")
}

func TestFetchTimeout(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("command 'yt-dlp' interrupted: %w", context.DeadlineExceeded)}

	_, err := newTestFetcher(exec).Fetch(context.Background(), "https://youtu.be/slow", filepath.Join(t.TempDir(), "audio.mp3"))
	assert.True(t, stage.IsKind(err, stage.KindTimeout))
}
