package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/tubeqa/internal/session"
	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string     `json:"error"`
	Kind  stage.Kind `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStageError maps a stage failure onto an HTTP status
func writeStageError(w http.ResponseWriter, err error) {
	se := stage.As(stage.Validate, err)
	writeJSON(w, statusFor(err, se.Kind), errorResponse{Error: se.Error(), Kind: se.Kind})
}

func writeNotReady(w http.ResponseWriter) {
	writeJSON(w, http.StatusConflict, errorResponse{
		Error: "Error: " + session.ErrNotReady.Error(),
		Kind:  stage.KindValidation,
	})
}

func statusFor(err error, kind stage.Kind) int {
	if errors.Is(err, session.ErrNotReady) {
		return http.StatusConflict
	}
	switch kind {
	case stage.KindValidation:
		return http.StatusUnprocessableEntity
	case stage.KindTimeout:
		return http.StatusGatewayTimeout
	case stage.KindCanceled:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// decode reads a JSON body into v or writes 400
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
