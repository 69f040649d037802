package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
	// Add starts watching dir; watching an already watched dir is a no-op.
	Add(dir string) error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string)
