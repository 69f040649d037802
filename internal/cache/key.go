package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
)

// Key addresses a transcript: the owning session plus a digest of the source reference.
type Key struct {
	Session string
	Digest  string
}

// NewKey derives the cache key for source within a session.
func NewKey(sessionID, source string) Key {
	sum := sha256.Sum256([]byte(source))
	return Key{
		Session: sessionID,
		Digest:  hex.EncodeToString(sum[:])[:16],
	}
}

func (k Key) String() string {
	return path.Join(k.Session, k.Digest)
}
