package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/cache"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// Process returns the cached transcript for req, or fetches and transcribes it
func (p *implProcessor) Process(ctx context.Context, req Request, progress Progress) (Result, error) {
	if progress == nil {
		progress = func(context.Context, Step) {}
	}
	key := cache.NewKey(req.SessionID, req.Source)

	// Step 1: Reuse a cached transcript
	if text, ok := p.lookup(ctx, key); ok {
		progress(ctx, StepCacheHit)
		return Result{Transcript: text, Cached: true}, nil
	}

	if err := p.sem.acquire(ctx); err != nil {
		return Result{}, stage.Wrap(stage.Fetch, stage.KindCanceled, err)
	}
	defer p.sem.release()

	startTime := time.Now()
	p.logger.Info(ctx, "Starting pipeline: %s", req.Source)

	// Step 2: Download audio
	progress(ctx, StepFetching)
	audioPath, err := p.fetchAudio(ctx, req)
	if err != nil {
		return Result{}, err
	}
	progress(ctx, StepFetched)
	if !p.keepAudio {
		defer p.dropAudio(ctx, audioPath)
	}

	// Step 3: Transcribe
	progress(ctx, StepTranscribing)
	text, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return Result{}, err
	}

	// A canceled run must not persist: its session may already have forgotten the source
	if err := ctx.Err(); err != nil {
		return Result{}, stage.Wrap(stage.Transcribe, stage.KindCanceled, err)
	}

	// Step 4: Persist; a failed write costs a re-transcription later, nothing more
	if err := p.cache.Put(ctx, key, text); err != nil {
		p.logger.Warn(ctx, "Failed to cache transcript: %v", err)
	}
	progress(ctx, StepTranscribed)

	p.logger.Info(ctx, "Pipeline completed in %s", time.Since(startTime))
	return Result{Transcript: text, AudioPath: audioPath}, nil
}

// lookup treats an unreadable cache entry as a miss
func (p *implProcessor) lookup(ctx context.Context, key cache.Key) (string, bool) {
	text, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn(ctx, "Cache read failed, treating as miss: %v", err)
		ok = false
	}
	p.metrics.CacheHit(ok)
	return text, ok
}

// Forget drops the cached transcript for req
func (p *implProcessor) Forget(ctx context.Context, req Request) error {
	return p.cache.Delete(ctx, cache.NewKey(req.SessionID, req.Source))
}

// Release drops the session's transcripts from the in-memory index
func (p *implProcessor) Release(ctx context.Context, sessionID string) {
	p.cache.Release(ctx, sessionID)
}

func (p *implProcessor) observe(name stage.Name, started time.Time, err error) {
	kind := ""
	if err != nil {
		kind = string(stage.As(name, err).Kind)
	}
	p.metrics.ObserveStage(string(name), started, kind)
}
