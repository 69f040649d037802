package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/tubeqa/internal/export"
	"github.com/nguyentantai21042004/tubeqa/internal/logger"
	"github.com/nguyentantai21042004/tubeqa/internal/session"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type handler struct {
	sessions *session.Manager
	log      logger.Logger
}

type sourceRequest struct {
	URL string `json:"url"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type createRequest struct {
	ID string `json:"id"`
}

// createSession opens a session. A client may send back an id it was given
// earlier to keep its cached transcripts across reloads and restarts.
func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, created, err := h.sessions.Open(r.Context(), req.ID)
	if errors.Is(err, session.ErrInvalidID) {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeMessage(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]string{"id": s.ID()})
}

// lookup resolves the {id} path parameter or writes 404
func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) submitSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decode(w, r, &req) {
		return
	}

	snap, ok := h.sessions.Start(r.Context(), chi.URLParam(r, "id"), req.URL)
	if !ok {
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	}

	switch {
	case snap.State == session.StateInvalid:
		writeJSON(w, http.StatusUnprocessableEntity, snap)
	case snap.Busy:
		writeJSON(w, http.StatusAccepted, snap)
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Cancel(chi.URLParam(r, "id")) {
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) summarize(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	summary, err := s.Summarize(r.Context())
	if err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *handler) answer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req questionRequest
	if !decode(w, r, &req) {
		return
	}
	answer, err := s.Ask(r.Context(), req.Question)
	if err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (h *handler) forget(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := s.Forget(r.Context()); err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	if !snap.Ready() {
		writeNotReady(w)
		return
	}

	path, cleanup, err := writeExport(snap)
	if err != nil {
		h.log.Error(logger.WithSession(r.Context(), s.ID()), "Export failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="transcript.docx"`)
	http.ServeContent(w, r, "transcript.docx", snap.UpdatedAt, f)
}

// writeExport renders snap into a temporary .docx
func writeExport(snap session.Snapshot) (string, func(), error) {
	dir, err := os.MkdirTemp("", "tubeqa-export-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, "transcript.docx")
	err = export.WriteDocx(export.Document{
		Title:      "Transcript",
		Source:     snap.Source,
		Transcript: snap.Transcript,
		Summary:    snap.Summary,
	}, path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
