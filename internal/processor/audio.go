package processor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// audioPath is fixed per session so the next download overwrites the last one
func (p *implProcessor) audioPath(sessionID string) string {
	return filepath.Join(p.workDir, sessionID, "audio."+p.audioFormat)
}

// fetchAudio downloads the audio track under the fetch timeout
func (p *implProcessor) fetchAudio(ctx context.Context, req Request) (path string, err error) {
	started := time.Now()
	defer func() { p.observe(stage.Fetch, started, err) }()

	ctx, cancel := stage.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	path, err = p.fetcher.Fetch(ctx, req.Source, p.audioPath(req.SessionID))
	if err != nil {
		return "", stage.Wrap(stage.Fetch, stage.KindTool, err)
	}
	return path, nil
}
