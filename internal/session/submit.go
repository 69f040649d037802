package session

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubeqa/internal/processor"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
	"github.com/nguyentantai21042004/tubeqa/internal/validator"
)

// Submit evaluates url from Idle and runs the pipeline to completion
func (s *Session) Submit(ctx context.Context, url string) Snapshot {
	runCtx, cancel, gen, run := s.begin(ctx, url)
	if run {
		s.run(runCtx, cancel, gen, url)
	}
	return s.Snapshot()
}

// Start is Submit without waiting for the pipeline. The returned snapshot
// is already Busy when a pipeline was started.
func (s *Session) Start(ctx context.Context, url string) Snapshot {
	runCtx, cancel, gen, run := s.begin(context.WithoutCancel(ctx), url)
	if run {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(runCtx, cancel, gen, url)
		}()
	}
	return s.Snapshot()
}

// begin supersedes any earlier submission and applies the synchronous part
// of the state machine. It reports whether the pipeline must run.
func (s *Session) begin(ctx context.Context, url string) (context.Context, context.CancelFunc, uint64, bool) {
	runCtx, cancel := context.WithCancel(s.withSession(ctx))

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	s.update(gen, func(snap *Snapshot) {
		*snap = Snapshot{ID: s.id, Source: url}
		switch {
		case url == "":
			snap.State = StateIdle
			snap.Source = ""
		case !validator.IsValid(url):
			snap.State = StateInvalid
			snap.Error = stage.New(stage.Validate, stage.KindValidation, msgInvalidURL)
		default:
			snap.State = StateIdle
			snap.Busy = true
			snap.Status = msgChecking
		}
	})

	snap := s.Snapshot()
	if !snap.Busy {
		s.finish(gen, cancel)
		if snap.State == StateInvalid {
			s.log.Info(runCtx, "Rejected source: %q", url)
		}
		return runCtx, cancel, gen, false
	}
	return runCtx, cancel, gen, true
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, gen uint64, url string) {
	// One pipeline per session; the previous one is already canceled
	s.runMu.Lock()
	defer s.runMu.Unlock()
	defer s.finish(gen, cancel)

	if s.superseded(gen) {
		return
	}

	req := processor.Request{SessionID: s.id, Source: url}
	res, err := s.deps.Processor.Process(ctx, req, func(ctx context.Context, step processor.Step) {
		s.update(gen, func(snap *Snapshot) { applyStep(snap, step) })
	})

	if err != nil {
		se := stage.As(stage.Fetch, err)
		if errors.Is(err, context.Canceled) && s.superseded(gen) {
			return
		}
		s.log.Error(ctx, "Pipeline failed at %s: %s", se.Stage, se.Message)
		s.update(gen, func(snap *Snapshot) {
			snap.State = StateError
			snap.Busy = false
			snap.Error = se
			if se.Kind == stage.KindCanceled {
				snap.Status = msgCanceled
			}
		})
		return
	}

	s.update(gen, func(snap *Snapshot) {
		snap.State = StateReady
		snap.Busy = false
		snap.Transcript = res.Transcript
	})
	s.log.Info(ctx, "Transcript ready (cached=%v, %d characters)", res.Cached, len(res.Transcript))
}

func applyStep(snap *Snapshot, step processor.Step) {
	switch step {
	case processor.StepCacheHit:
		snap.State = StateCachedReady
		snap.Status = msgCached
	case processor.StepFetching:
		snap.State = StateFetching
		snap.Status = msgDownloading
	case processor.StepFetched:
		snap.Status = msgDownloaded
	case processor.StepTranscribing:
		snap.State = StateTranscribing
		snap.Status = msgTranscribing
	case processor.StepTranscribed:
		snap.Status = msgTranscribed
	}
}

func (s *Session) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

// finish releases the cancel func of gen once it is done
func (s *Session) finish(gen uint64, cancel context.CancelFunc) {
	s.mu.Lock()
	if gen == s.gen {
		s.cancel = nil
	}
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
