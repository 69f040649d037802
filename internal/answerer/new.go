package answerer

import (
	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

type implAnswerer struct {
	generator llm.Generator
	logger    logger.Logger
}

// New creates an extractive Answerer on top of a text model.
func New(gen llm.Generator, log logger.Logger) Answerer {
	return &implAnswerer{
		generator: gen,
		logger:    log.With("answerer"),
	}
}
