package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
	"github.com/nguyentantai21042004/tubeqa/pkg/executor"
)

// Fetch extracts a single audio stream with the download tool
func (f *implFetcher) Fetch(ctx context.Context, source, outputPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", stage.Wrap(stage.Fetch, stage.KindTool, fmt.Errorf("create audio dir: %w", err))
	}

	f.logger.Info(ctx, "Downloading audio: %s -> %s", source, outputPath)

	// -x: extract audio only
	// --audio-format: transcode to a fixed codec/container
	// --output: fixed file name, overwritten by the next download
	// --no-playlist: a playlist link must not fan out into many files
	args := []string{
		"-x",
		"--audio-format", f.audioFormat,
		"--output", outputPath,
		"--force-overwrites",
		"--no-playlist",
		source,
	}

	if _, err := f.executor.Execute(ctx, f.binary, args...); err != nil {
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) {
			f.logger.Error(ctx, "Download tool exited with %d: %s", cmdErr.ExitCode, cmdErr.Stderr)
		}
		return "", stage.Wrap(stage.Fetch, stage.KindTool, fmt.Errorf("download audio: %w", err))
	}

	f.logger.Info(ctx, "Audio downloaded successfully: %s", outputPath)
	return outputPath, nil
}
