// Package httpapi exposes sessions over HTTP and serves the single page UI.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/metrics"
	"github.com/nguyentantai21042004/tubeqa/internal/session"
)

// Options configure the router
type Options struct {
	Sessions *session.Manager
	Metrics  *metrics.Metrics
	Logger   logger.Logger
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(opts Options) http.Handler {
	h := &handler{
		sessions: opts.Sessions,
		log:      opts.Logger.With("http"),
	}

	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	r.Get("/", h.page)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Post("/source", h.submitSource)
			r.Post("/cancel", h.cancel)
			r.Post("/summary", h.summarize)
			r.Post("/answer", h.answer)
			r.Delete("/transcript", h.forget)
			r.Get("/export.docx", h.export)
		})
	})

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug(r.Context(), "%s %s -> %d in %s (request %s)",
				r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}
