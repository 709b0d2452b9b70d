package services

import (
	"context"

	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/types/share"
	"fitChallengeAPI/internal/types/user"
)

// Repositories return (nil, nil) for a lookup that finds nothing; any error
// means the store itself failed and wraps apperror.ErrStoreUnavailable.

type UserRepository interface {
	CreateUser(ctx context.Context, u user.User) error
}

type ChallengeRepository interface {
	InsertChallenge(ctx context.Context, c challenge.Challenge) error
	GetChallenge(ctx context.Context, id string) (*challenge.Challenge, error)
	ListChallengesByAuthor(ctx context.Context, authorID string) ([]challenge.Challenge, error)
	DeleteChallenge(ctx context.Context, id string) (bool, error)
	// SetShare records shareID on the challenge and reports whether the
	// challenge existed.
	SetShare(ctx context.Context, id, shareID string) (bool, error)
}

type ShareRepository interface {
	InsertShare(ctx context.Context, s share.Share) error
	GetShare(ctx context.Context, id string) (*share.Share, error)
}
