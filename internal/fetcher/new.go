package fetcher

import (
	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/pkg/executor"
)

type implFetcher struct {
	binary      string
	audioFormat string
	executor    executor.Executor
	logger      logger.Logger
}

// New creates a Fetcher that drives the configured download tool
func New(cfg config.DownloaderConfig, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		binary:      cfg.BinaryPath,
		audioFormat: cfg.AudioFormat,
		executor:    exec,
		logger:      log.With("fetcher"),
	}
}
