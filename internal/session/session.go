// Package session keeps per-browser state in a cache store, keyed by an id
// carried in a signed cookie.
package session

import (
	"context"
	"errors"
	"time"
)

const userIDKey = "userId"

// ErrSessionNotFound is returned by a Store when no record exists for an id.
var ErrSessionNotFound = errors.New("session not found")

// Session is the state attached to one browser.
type Session struct {
	ID     string
	Values map[string]string
	isNew  bool
}

func (s *Session) UserID() string {
	return s.Values[userIDKey]
}

func (s *Session) SetUserID(id string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[userIDKey] = id
}

// IsNew reports whether the session was minted during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Store persists session values with a time-to-live.
type Store interface {
	Load(ctx context.Context, id string) (map[string]string, error)
	Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type contextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session placed by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
