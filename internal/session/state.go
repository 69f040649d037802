package session

import (
	"time"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// State of one interactive session
type State string

const (
	StateIdle         State = "idle"
	StateInvalid      State = "invalid"
	StateFetching     State = "fetching"
	StateTranscribing State = "transcribing"
	StateCachedReady  State = "cached_ready"
	StateReady        State = "ready"
	StateError        State = "error"
)

// User-facing progress messages
const (
	msgInvalidURL   = "Invalid YouTube URL. Please try again."
	msgChecking     = "Checking for a saved transcript..."
	msgDownloading  = "Downloading audio..."
	msgDownloaded   = "Audio downloaded successfully!"
	msgTranscribing = "Transcribing audio..."
	msgTranscribed  = "Transcription completed!"
	msgCached       = "Loaded saved transcript."
	msgSummarizing  = "Generating summary..."
	msgSummarized   = "Summary completed!"
	msgAnswering    = "Fetching answer..."
	msgAnswered     = "Answer fetched!"
	msgCanceled     = "Canceled."
)

// Snapshot is a copy of everything the page renders
type Snapshot struct {
	ID         string       `json:"id"`
	State      State        `json:"state"`
	Busy       bool         `json:"busy"`
	Status     string       `json:"status,omitempty"`
	Source     string       `json:"source,omitempty"`
	Transcript string       `json:"transcript,omitempty"`
	Error      *stage.Error `json:"error,omitempty"`

	Summary      string       `json:"summary,omitempty"`
	SummaryError *stage.Error `json:"summaryError,omitempty"`

	Question    string       `json:"question,omitempty"`
	Answer      string       `json:"answer,omitempty"`
	AnswerError *stage.Error `json:"answerError,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Ready reports whether a transcript is loaded
func (s Snapshot) Ready() bool {
	return s.State == StateReady
}
