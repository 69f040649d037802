package llm

import (
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger
	call    geminiCall

	mu         sync.Mutex
	currentKey int
}

type implOpenAI struct {
	client ChatClient
	model  string
	logger logger.Logger
}

// New creates the Generator selected by cfg.LLM.Backend
func New(cfg *config.Config, log logger.Logger) (Generator, error) {
	log = log.With("llm")

	switch cfg.LLM.Backend {
	case "gemini":
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientConfig.BaseURL = cfg.OpenAI.BaseURL
		}
		return NewOpenAI(openai.NewClientWithConfig(clientConfig), cfg.OpenAI.Model, log), nil
	default:
		return nil, fmt.Errorf("unsupported llm backend %q", cfg.LLM.Backend)
	}
}

// NewGemini creates a Generator that rotates through the supplied Gemini API keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini: no api keys")
	}
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
		call:    newGeminiCall(),
	}, nil
}

// NewOpenAI creates a Generator backed by OpenAI chat completions.
func NewOpenAI(client ChatClient, model string, log logger.Logger) Generator {
	return &implOpenAI{
		client: client,
		model:  model,
		logger: log,
	}
}
