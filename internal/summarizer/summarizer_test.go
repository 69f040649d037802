package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

type fakeGenerator struct {
	reqs []llm.Request
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

func newTestSummarizer(gen llm.Generator) Summarizer {
	return New(gen, config.SummarizerConfig{MinLength: 30, MaxLength: 130}, logger.Nop())
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{text: " A short talk about greetings. "}

	summary, err := newTestSummarizer(gen).Summarize(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "A short talk about greetings.", summary)

	require.Len(t, gen.reqs, 1)
	assert.Contains(t, gen.reqs[0].Prompt, "30 to 130 words")
	assert.Contains(t, gen.reqs[0].Prompt, "hello world")
	assert.Equal(t, tokenBudget(130), gen.reqs[0].MaxTokens)
}

func TestSummarizeDeterministic(t *testing.T) {
	gen := &fakeGenerator{text: "same summary"}
	s := newTestSummarizer(gen)

	first, err := s.Summarize(context.Background(), "hello world")
	require.NoError(t, err)
	second, err := s.Summarize(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, gen.reqs, 2, "summaries are recomputed, not cached")
	assert.Equal(t, gen.reqs[0], gen.reqs[1])
}

func TestSummarizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		gen        *fakeGenerator
	}{
		{"empty transcript", "   ", &fakeGenerator{text: "x"}},
		{"backend failure", "hello", &fakeGenerator{err: errors.New("503 unavailable")}},
		{"empty summary", "hello", &fakeGenerator{text: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestSummarizer(tt.gen).Summarize(context.Background(), tt.transcript)
			var se *stage.Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, stage.Summarize, se.Stage)
			assert.Equal(t, stage.KindModel, se.Kind)
		})
	}
}
