package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/answerer"
	"github.com/nguyentantai21042004/tubeqa/internal/cache"
	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/fetcher"
	"github.com/nguyentantai21042004/tubeqa/internal/httpapi"
	"github.com/nguyentantai21042004/tubeqa/internal/llm"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/metrics"
	"github.com/nguyentantai21042004/tubeqa/internal/processor"
	"github.com/nguyentantai21042004/tubeqa/internal/session"
	"github.com/nguyentantai21042004/tubeqa/internal/summarizer"
	"github.com/nguyentantai21042004/tubeqa/internal/transcriber"
	"github.com/nguyentantai21042004/tubeqa/pkg/executor"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	url := flag.String("url", "", "transcribe one video and exit instead of serving HTTP")
	summarize := flag.Bool("summarize", false, "with -url, print a summary of the transcript")
	question := flag.String("question", "", "with -url, answer this question against the transcript")
	sessionID := flag.String("session", "cli", "with -url, session id that scopes the transcript cache")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	log.Info(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Transcriber: %s, text model: %s, cache: %s", cfg.Transcriber.Backend, cfg.LLM.Backend, cfg.Cache.Mode)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	a, err := build(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}

	// Create context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *url != "" {
		code := runOnce(ctx, a.sessions, *sessionID, *url, *summarize, *question)
		a.close(log)
		os.Exit(code)
	}

	err = serve(ctx, cfg, a, log)
	a.close(log)
	if err != nil {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}
}

type app struct {
	sessions *session.Manager
	metrics  *metrics.Metrics
	cache    cache.Cache
}

// close stops every session, then the cache watcher
func (a *app) close(log logger.Logger) {
	a.sessions.Close()
	if err := a.cache.Close(); err != nil {
		log.Warn(context.Background(), "Failed to close cache: %v", err)
	}
}

// build wires every component
func build(cfg *config.Config, log logger.Logger) (*app, error) {
	exec := executor.New()
	m := metrics.New()

	tr, err := transcriber.New(cfg, exec, log)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	gen, err := llm.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create text model: %w", err)
	}

	c, err := cache.New(cfg.Paths.CacheDir, cfg.Cache.Mode, log)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	proc := processor.New(cfg, processor.Deps{
		Fetcher:     fetcher.New(cfg.Downloader, exec, log),
		Transcriber: tr,
		Cache:       c,
		Metrics:     m,
		Logger:      log,
	})

	sessions := session.NewManager(session.Deps{
		Processor:  proc,
		Summarizer: summarizer.New(gen, cfg.Summarizer, log),
		Answerer:   answerer.New(gen, log),
		Metrics:    m,
		Logger:     log,
		Timeouts:   cfg.Timeouts,
	})

	return &app{sessions: sessions, metrics: m, cache: c}, nil
}

func serve(ctx context.Context, cfg *config.Config, a *app, log logger.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(httpapi.Options{Sessions: a.sessions, Metrics: a.metrics, Logger: log}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.sessions.RunReaper(ctx, cfg.Session.IdleTTL)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return err
	}

	// Graceful shutdown
	log.Info(context.Background(), "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP shutdown: %v", err)
	}

	log.Info(context.Background(), "Stopped")
	return nil
}

// runOnce drives a single session from the command line
func runOnce(ctx context.Context, manager *session.Manager, id, url string, summarize bool, question string) int {
	s, _, err := manager.Open(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	snap := s.Submit(ctx, url)
	if snap.Error != nil {
		fmt.Fprintln(os.Stderr, snap.Error.Error())
		return 1
	}
	if !snap.Ready() {
		return 0
	}
	fmt.Println(snap.Transcript)

	if summarize {
		summary, err := s.Summarize(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("\nSummary:\n%s\n", summary)
	}

	if question != "" {
		answer, err := s.Ask(ctx, question)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("\nAnswer:%s\n", answer)
	}
	return 0
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.WorkDir,
		cfg.Paths.CacheDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
