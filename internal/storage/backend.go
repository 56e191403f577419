package storage

import (
	"context"
	"errors"
	"io"
	"strconv"
)

// ErrNotFound is returned by Open when no object exists for the key.
var ErrNotFound = errors.New("object not found")

// Object is an open stored blob. Callers must close Body.
type Object struct {
	Body io.ReadCloser
	Size int64
}

// Backend is a key/value blob store with full-replace writes.
type Backend interface {
	// Open returns the object stored under key, or ErrNotFound.
	Open(ctx context.Context, key string) (*Object, error)
	// Put stores data under key, replacing any previous object atomically.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Name identifies the backend in logs and health output.
	Name() string
}

// Pinger is implemented by backends that can report their availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ObjectKey returns the key under which a character's asset of the given
// kind is stored.
func ObjectKey(characterID int64, kind string) string {
	return "characters/" + strconv.FormatInt(characterID, 10) + "/" + kind
}
