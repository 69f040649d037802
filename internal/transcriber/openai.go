package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// AudioClient is the part of *openai.Client used for transcription.
type AudioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

func (t *implOpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, fmt.Errorf("open audio: %w", err))
	}

	t.logger.Info(ctx, "Uploading audio for transcription (%s): %s", t.model, audioPath)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: t.lang,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, fmt.Errorf("openai transcribe: %w", err))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", stage.New(stage.Transcribe, stage.KindModel, "empty transcription result")
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}
