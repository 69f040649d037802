package processor

import (
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/cache"
	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/fetcher"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/metrics"
	"github.com/nguyentantai21042004/tubeqa/internal/transcriber"
)

type implProcessor struct {
	workDir     string
	audioFormat string
	keepAudio   bool

	fetchTimeout      time.Duration
	transcribeTimeout time.Duration

	fetcher     fetcher.Fetcher
	transcriber transcriber.Transcriber
	cache       cache.Cache
	metrics     *metrics.Metrics
	logger      logger.Logger
	sem         *semaphore
}

// Deps are the collaborators of a Processor
type Deps struct {
	Fetcher     fetcher.Fetcher
	Transcriber transcriber.Transcriber
	Cache       cache.Cache
	Metrics     *metrics.Metrics
	Logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps) Processor {
	return &implProcessor{
		workDir:           cfg.Paths.WorkDir,
		audioFormat:       cfg.Downloader.AudioFormat,
		keepAudio:         cfg.KeepAudio(),
		fetchTimeout:      cfg.Timeouts.Fetch,
		transcribeTimeout: cfg.Timeouts.Transcribe,
		fetcher:           deps.Fetcher,
		transcriber:       deps.Transcriber,
		cache:             deps.Cache,
		metrics:           deps.Metrics,
		logger:            deps.Logger.With("processor"),
		sem:               newSemaphore(cfg.Performance.MaxConcurrent, deps.Metrics.PipelinesBusy),
	}
}
