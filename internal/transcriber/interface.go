package transcriber

import "context"

// Transcriber converts a local audio file into plain text.
// It returns only once the whole file has been processed.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
