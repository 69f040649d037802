package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

const systemPrompt = `You summarize video transcripts. Reply with the summary only, as plain prose, ` +
	`in the language of the transcript. Do not add a title, preamble or commentary.`

const summaryPrompt = `Summarize the transcript below in %d to %d words.

Transcript:
---
%s
---`

// Summarize returns the single best summary of transcript
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", stage.New(stage.Summarize, stage.KindModel, "transcript is empty")
	}

	s.logger.Info(ctx, "Summarizing transcript (%d characters, window %d-%d)",
		len(transcript), s.minLength, s.maxLength)

	summary, err := s.generator.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    fmt.Sprintf(summaryPrompt, s.minLength, s.maxLength, transcript),
		MaxTokens: tokenBudget(s.maxLength),
	})
	if err != nil {
		return "", stage.Wrap(stage.Summarize, stage.KindModel, fmt.Errorf("summarize: %w", err))
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", stage.New(stage.Summarize, stage.KindModel, "model returned an empty summary")
	}

	s.logger.Info(ctx, "Summary completed: %d characters", len(summary))
	return summary, nil
}

// tokenBudget converts a word bound into an output token cap, about 4 tokens per 3 words
func tokenBudget(words int) int {
	return words*4/3 + 16
}
