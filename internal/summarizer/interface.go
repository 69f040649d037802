package summarizer

import "context"

// Summarizer condenses a full transcript into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
