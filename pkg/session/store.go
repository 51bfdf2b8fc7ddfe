package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the session id is unknown.
	ErrNotFound = errors.New("session: not found")

	// ErrImmutable is returned when a mutation targets a completed,
	// abandoned or expired session.
	ErrImmutable = errors.New("session: immutable status")

	// ErrInvalidConfiguration is returned when Complete is called on a
	// configuration that fails validation.
	ErrInvalidConfiguration = errors.New("session: configuration is not valid")
)

// Store persists sessions. Implementations must be safe for concurrent use
// and must return copies the caller may mutate freely.
type Store interface {
	// Put inserts or replaces the session.
	Put(ctx context.Context, s *Session) error

	// Get returns the session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session by id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ExpireBefore marks every active or saved session whose deadline
	// passed as expired and returns how many it touched.
	ExpireBefore(ctx context.Context, deadline time.Time) (int64, error)

	// Close releases the store's resources.
	Close() error
}
