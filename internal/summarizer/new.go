package summarizer

import (
	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

type implSummarizer struct {
	generator llm.Generator
	minLength int
	maxLength int
	logger    logger.Logger
}

// New creates a Summarizer with a fixed output window.
func New(gen llm.Generator, cfg config.SummarizerConfig, log logger.Logger) Summarizer {
	return &implSummarizer{
		generator: gen,
		minLength: cfg.MinLength,
		maxLength: cfg.MaxLength,
		logger:    log.With("summarizer"),
	}
}
