package cache

import "context"

// Cache stores one transcript per key. Entries never expire; they disappear when
// deleted or when the backing file is removed from storage.
type Cache interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Put(ctx context.Context, key Key, transcript string) error
	Delete(ctx context.Context, key Key) error
	// Release drops in-memory entries of a session; files stay on disk
	Release(ctx context.Context, session string)
	Close() error
}
