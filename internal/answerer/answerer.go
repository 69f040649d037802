package answerer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

const systemPrompt = `You are an extractive question answering system. Answer with the shortest ` +
	`contiguous span copied verbatim from the context. Never paraphrase, never explain, ` +
	`never add punctuation that is not in the span.`

const questionPrompt = `Context:
---
%s
---

Question: %s
Answer span:`

const maxAnswerTokens = 64

// Answer extracts a span from transcript answering question.
// Every returned span is surfaced; there is no confidence threshold.
func (a *implAnswerer) Answer(ctx context.Context, transcript, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", stage.New(stage.Answer, stage.KindValidation, "question is empty")
	}
	if strings.TrimSpace(transcript) == "" {
		return "", stage.New(stage.Answer, stage.KindModel, "transcript is empty")
	}

	a.logger.Info(ctx, "Answering question: %q", question)

	raw, err := a.generator.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    fmt.Sprintf(questionPrompt, transcript, question),
		MaxTokens: maxAnswerTokens,
	})
	if err != nil {
		return "", stage.Wrap(stage.Answer, stage.KindModel, fmt.Errorf("answer question: %w", err))
	}

	span := cleanSpan(raw)
	if !strings.Contains(transcript, span) {
		a.logger.Debug(ctx, "Answer span not found verbatim in transcript: %q", span)
	}

	return Format(span), nil
}

// Format wraps an extracted span for display: leading space, trailing period.
func Format(span string) string {
	return " " + span + "."
}

// cleanSpan strips the label and quotes a chat model tends to add around a
// span. The span itself, trailing punctuation included, is kept as returned.
func cleanSpan(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Answer span:")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = s[1 : len(s)-1]
	}
	return s
}
