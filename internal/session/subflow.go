package session

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/processor"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// Summarize condenses the loaded transcript. The session state is unchanged
// whatever the outcome; only the summary fields are replaced.
func (s *Session) Summarize(ctx context.Context) (string, error) {
	ctx = s.withSession(ctx)
	transcript, gen, err := s.transcript(stage.Summarize)
	if err != nil {
		return "", err
	}

	s.update(gen, func(snap *Snapshot) {
		snap.Status = msgSummarizing
		snap.Summary = ""
		snap.SummaryError = nil
	})

	ctx, cancel := stage.WithTimeout(ctx, s.deps.Timeouts.Summarize)
	defer cancel()

	started := time.Now()
	summary, err := s.deps.Summarizer.Summarize(ctx, transcript)
	s.deps.Metrics.ObserveStage(string(stage.Summarize), started, kindOf(stage.Summarize, err))
	if err != nil {
		se := stage.As(stage.Summarize, err)
		s.log.Warn(ctx, "Summary failed: %s", se.Message)
		s.update(gen, func(snap *Snapshot) {
			snap.Status = ""
			snap.SummaryError = se
		})
		return "", se
	}

	s.update(gen, func(snap *Snapshot) {
		snap.Status = msgSummarized
		snap.Summary = summary
	})
	return summary, nil
}

// Ask answers question against the loaded transcript
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	ctx = s.withSession(ctx)
	transcript, gen, err := s.transcript(stage.Answer)
	if err != nil {
		return "", err
	}

	s.update(gen, func(snap *Snapshot) {
		snap.Status = msgAnswering
		snap.Question = question
		snap.Answer = ""
		snap.AnswerError = nil
	})

	ctx, cancel := stage.WithTimeout(ctx, s.deps.Timeouts.Answer)
	defer cancel()

	started := time.Now()
	answer, err := s.deps.Answerer.Answer(ctx, transcript, question)
	s.deps.Metrics.ObserveStage(string(stage.Answer), started, kindOf(stage.Answer, err))
	if err != nil {
		se := stage.As(stage.Answer, err)
		s.log.Warn(ctx, "Answer failed: %s", se.Message)
		s.update(gen, func(snap *Snapshot) {
			snap.Status = ""
			snap.AnswerError = se
		})
		return "", se
	}

	s.update(gen, func(snap *Snapshot) {
		snap.Status = msgAnswered
		snap.Answer = answer
	})
	return answer, nil
}

// Forget removes the cached transcript of the current source and returns to Idle
func (s *Session) Forget(ctx context.Context) error {
	ctx = s.withSession(ctx)
	snap := s.Snapshot()
	if snap.Source == "" {
		return nil
	}

	// Supersede anything in flight and wait for it to stop before touching the cache
	s.begin(ctx, "")
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if err := s.deps.Processor.Forget(ctx, processor.Request{SessionID: s.id, Source: snap.Source}); err != nil {
		return stage.Wrap(stage.Cache, stage.KindCache, err)
	}
	s.log.Info(ctx, "Cleared transcript for %s", snap.Source)
	return nil
}

// ErrNotReady is wrapped by the validation error of a subflow run outside Ready
var ErrNotReady = errors.New("no transcript loaded")

// transcript returns the loaded transcript or a validation error
func (s *Session) transcript(name stage.Name) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State != StateReady {
		return "", 0, &stage.Error{Stage: name, Kind: stage.KindValidation, Message: ErrNotReady.Error(), Err: ErrNotReady}
	}
	return s.snap.Transcript, s.gen, nil
}

func kindOf(name stage.Name, err error) string {
	if err == nil {
		return ""
	}
	return string(stage.As(name, err).Kind)
}
