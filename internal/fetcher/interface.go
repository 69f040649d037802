package fetcher

import "context"

// Fetcher downloads the audio track of a source reference to a local file.
type Fetcher interface {
	// Fetch writes the audio of source to outputPath, overwriting it, and returns the path.
	Fetch(ctx context.Context, source, outputPath string) (string, error)
}
