package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// transcribe runs the speech model under the transcribe timeout
func (p *implProcessor) transcribe(ctx context.Context, audioPath string) (text string, err error) {
	started := time.Now()
	defer func() { p.observe(stage.Transcribe, started, err) }()

	ctx, cancel := stage.WithTimeout(ctx, p.transcribeTimeout)
	defer cancel()

	text, err = p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, err)
	}
	return text, nil
}
