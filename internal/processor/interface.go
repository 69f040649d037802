package processor

import "context"

// Step marks progress through the transcript pipeline
type Step string

const (
	StepCacheHit     Step = "cache_hit"
	StepFetching     Step = "fetching"
	StepFetched      Step = "fetched"
	StepTranscribing Step = "transcribing"
	StepTranscribed  Step = "transcribed"
)

// Progress is called synchronously as each step starts or ends
type Progress func(ctx context.Context, step Step)

// Request identifies one source within a session
type Request struct {
	SessionID string
	Source    string
}

// Result is a transcript and where it came from
type Result struct {
	Transcript string
	Cached     bool
	AudioPath  string
}

// Processor produces the transcript for a validated source reference
type Processor interface {
	Process(ctx context.Context, req Request, progress Progress) (Result, error)
	// Forget drops the cached transcript for req
	Forget(ctx context.Context, req Request) error
	// Release frees in-memory state of a closed session; persisted transcripts stay
	Release(ctx context.Context, sessionID string)
}
