package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/tubeqa/internal/logger"
)

// Session ids name cache and work directories, so they are kept path safe
var reValidID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ErrInvalidID is returned by Open for an id that cannot name a session
var ErrInvalidID = errors.New("invalid session id")

// Manager owns the live sessions of the process
type Manager struct {
	deps Deps
	log  logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// NewManager creates an empty Manager
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:     deps,
		log:      deps.Logger.With("manager"),
		sessions: make(map[string]*Session),
	}
}

// Open returns the live session id, or registers a new Idle one under id.
// A client that keeps its id across reloads and restarts finds its cached
// transcripts again. An empty id gets a random one. created reports whether
// the session is new.
func (m *Manager) Open(ctx context.Context, id string) (s *Session, created bool, err error) {
	if id == "" {
		id = uuid.NewString()
	}
	if !reValidID.MatchString(id) {
		return nil, false, ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, fmt.Errorf("session manager closed")
	}

	if s, ok := m.sessions[id]; ok {
		s.touch()
		return s, false, nil
	}

	s = New(id, m.deps)
	m.sessions[id] = s
	m.deps.Metrics.SessionsActive.Inc()
	m.log.Info(ctx, "Session opened: %s", id)
	return s, true, nil
}

// Get looks up a session by id and marks it as used
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if ok {
		s.touch()
	}
	return s, ok
}

// Delete closes and forgets a session. The cached transcript stays on disk.
func (m *Manager) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close()
	m.deps.Processor.Release(ctx, id)
	m.deps.Metrics.SessionsActive.Dec()
	m.log.Info(ctx, "Session deleted: %s", id)
	return true
}

// Start runs a submission for session id in the background
func (m *Manager) Start(ctx context.Context, id, url string) (Snapshot, bool) {
	s, ok := m.Get(id)
	if !ok {
		return Snapshot{}, false
	}
	return s.Start(ctx, url), true
}

// Cancel stops the pipeline of session id, if one is running
func (m *Manager) Cancel(id string) bool {
	s, ok := m.Get(id)
	if !ok {
		return false
	}
	s.Cancel()
	return true
}

// Reap deletes sessions not accessed since cutoff. Busy sessions are kept.
func (m *Manager) Reap(ctx context.Context, cutoff time.Time) int {
	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range idle {
		if m.Delete(ctx, id) {
			n++
		}
	}
	if n > 0 {
		m.log.Info(ctx, "Reaped %d idle sessions", n)
	}
	return n
}

// RunReaper deletes sessions idle for longer than ttl until ctx is done.
// A ttl of zero or less disables it.
func (m *Manager) RunReaper(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Reap(ctx, now.Add(-ttl))
		}
	}
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close cancels every running pipeline and waits for them to stop
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(s)
	}
	wg.Wait()
}
