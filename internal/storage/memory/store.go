// Package memory is an in-process store used for local development and tests.
// It satisfies the same repository contracts as the Postgres backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/types/share"
	"fitChallengeAPI/internal/types/user"
)

type Store struct {
	mu         sync.RWMutex
	users      map[string]user.User
	challenges map[string]challenge.Challenge
	order      []string
	shares     map[string]share.Share
}

func New() *Store {
	return &Store{
		users:      make(map[string]user.User),
		challenges: make(map[string]challenge.Challenge),
		shares:     make(map[string]share.Share),
	}
}

func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

// UserCount is used by tests to observe lazy user creation.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// InsertChallenge stores c. The author must already exist.
func (s *Store) InsertChallenge(ctx context.Context, c challenge.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.Author]; !ok {
		return fmt.Errorf("author %s: %w", c.Author, apperror.ErrUserNotFound)
	}
	if _, exists := s.challenges[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.challenges[c.ID] = c.Clone()
	return nil
}

func (s *Store) GetChallenge(ctx context.Context, id string) (*challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[id]
	if !ok {
		return nil, nil
	}
	out := c.Clone()
	return &out, nil
}

func (s *Store) ListChallengesByAuthor(ctx context.Context, authorID string) ([]challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]challenge.Challenge, 0)
	for _, id := range s.order {
		c, ok := s.challenges[id]
		if ok && c.Author == authorID {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (s *Store) DeleteChallenge(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return false, nil
	}
	delete(s.challenges, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Store) SetShare(ctx context.Context, id, shareID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok {
		return false, nil
	}
	c.ShareID = shareID
	s.challenges[id] = c
	return true, nil
}

func (s *Store) InsertShare(ctx context.Context, sh share.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shares[sh.ID] = sh
	return nil
}

func (s *Store) GetShare(ctx context.Context, id string) (*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shares[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}
