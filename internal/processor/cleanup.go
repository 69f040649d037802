package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// dropAudio removes a transcribed audio file, and its session work dir once empty
func (p *implProcessor) dropAudio(ctx context.Context, audioPath string) {
	if err := os.Remove(audioPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.logger.Warn(ctx, "Failed to remove audio %s: %v", audioPath, err)
		return
	}
	p.logger.Debug(ctx, "Removed audio: %s", audioPath)

	// Fails harmlessly while the directory still has files
	_ = os.Remove(filepath.Dir(audioPath))
}
