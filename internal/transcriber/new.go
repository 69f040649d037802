package transcriber

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/pkg/executor"
)

type implWhisperCPP struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger

	loadOnce sync.Once
	loadErr  error
}

type implOpenAI struct {
	client AudioClient
	model  string
	lang   string
	logger logger.Logger
}

// New creates the Transcriber selected by cfg.Transcriber.Backend
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	log = log.With("transcriber")

	switch cfg.Transcriber.Backend {
	case "whisper-cpp":
		return NewWhisperCPP(cfg.Whisper, exec, log), nil
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientConfig.BaseURL = cfg.OpenAI.BaseURL
		}
		return NewOpenAI(openai.NewClientWithConfig(clientConfig), cfg.Transcriber.Model, cfg.Whisper.Language, log), nil
	default:
		return nil, fmt.Errorf("unsupported transcriber backend %q", cfg.Transcriber.Backend)
	}
}

// NewWhisperCPP creates a Transcriber backed by a local whisper.cpp binary.
// Relative model and binary paths are resolved against the current directory,
// since whisper runs inside the audio's directory.
func NewWhisperCPP(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	cfg.ModelPath = absPath(cfg.ModelPath)
	if strings.ContainsRune(cfg.BinaryPath, filepath.Separator) {
		cfg.BinaryPath = absPath(cfg.BinaryPath)
	}
	return &implWhisperCPP{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// NewOpenAI creates a Transcriber backed by the OpenAI transcription API
func NewOpenAI(client AudioClient, model, language string, log logger.Logger) Transcriber {
	if language == "auto" {
		language = ""
	}
	return &implOpenAI{
		client: client,
		model:  model,
		lang:   language,
		logger: log,
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
