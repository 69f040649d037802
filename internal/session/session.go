package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/answerer"
	"github.com/nguyentantai21042004/tubeqa/internal/config"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/metrics"
	"github.com/nguyentantai21042004/tubeqa/internal/processor"
	"github.com/nguyentantai21042004/tubeqa/internal/summarizer"
)

// Deps are the collaborators shared by all sessions
type Deps struct {
	Processor  processor.Processor
	Summarizer summarizer.Summarizer
	Answerer   answerer.Answerer
	Metrics    *metrics.Metrics
	Logger     logger.Logger
	Timeouts   config.TimeoutsConfig
}

// Session drives one user's pipeline. Submissions are serialized: a new one
// cancels the one in flight, and only the newest may change the state.
type Session struct {
	id   string
	deps Deps
	log  logger.Logger

	mu     sync.Mutex
	snap   Snapshot
	gen    uint64
	cancel context.CancelFunc

	runMu sync.Mutex
	wg    sync.WaitGroup

	// lastSeen is the unix nano time of the last client access
	lastSeen atomic.Int64
}

// New creates a Session in the Idle state
func New(id string, deps Deps) *Session {
	s := &Session{
		id:   id,
		deps: deps,
		log:  deps.Logger.With("session"),
		snap: Snapshot{ID: id, State: StateIdle, UpdatedAt: time.Now().UTC()},
	}
	s.touch()
	return s
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// idleSince reports whether the session has not been accessed since cutoff
// and has no pipeline running
func (s *Session) idleSince(cutoff time.Time) bool {
	if s.lastSeen.Load() >= cutoff.UnixNano() {
		return false
	}
	return !s.Snapshot().Busy
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Session) withSession(ctx context.Context) context.Context {
	return logger.WithSession(ctx, s.id)
}

// update applies fn when gen is still the newest submission
func (s *Session) update(gen uint64, fn func(*Snapshot)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	fn(&s.snap)
	s.snap.UpdatedAt = time.Now().UTC()
	return true
}

// Cancel stops the submission in flight, if any
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close cancels the submission in flight and waits for it to return
func (s *Session) Close() {
	s.Cancel()
	s.wg.Wait()
}
