package processor

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// semaphore bounds concurrent pipelines across sessions and reports how many
// slots are taken
type semaphore struct {
	slots chan struct{}
	busy  prometheus.Gauge
}

// newSemaphore allows at least one holder
func newSemaphore(capacity int, busy prometheus.Gauge) *semaphore {
	if capacity <= 0 {
		capacity = 1
	}
	return &semaphore{slots: make(chan struct{}, capacity), busy: busy}
}

// acquire blocks for a slot until ctx is done
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		if s.busy != nil {
			s.busy.Inc()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
	if s.busy != nil {
		s.busy.Dec()
	}
}
