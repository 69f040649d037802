package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStage(t *testing.T) {
	m := New()

	m.ObserveStage("fetch", time.Now(), "")
	m.ObserveStage("fetch", time.Now(), "tool")
	m.ObserveStage("fetch", time.Now(), "tool")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StageFailures.WithLabelValues("fetch", "tool")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))
}

func TestCacheHit(t *testing.T) {
	m := New()
	m.CacheHit(true)
	m.CacheHit(false)
	m.CacheHit(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SessionsActive.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tubeqa_sessions_active 3"))
}
