package answerer

import "context"

// Answerer extracts the span of a transcript that answers a question.
type Answerer interface {
	// Answer returns the span formatted for display (see Format).
	Answer(ctx context.Context, transcript, question string) (string, error)
}
