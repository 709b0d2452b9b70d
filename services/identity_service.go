package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/observability"
	"fitChallengeAPI/internal/session"
	"fitChallengeAPI/internal/types/user"
)

type IdentityService struct {
	users  UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewIdentityService(users UserRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureUser returns the user id carried by the session, creating a user
// and recording it on the session when there is none. An existing id is
// trusted without checking that the user still exists. The caller is
// responsible for persisting the session.
func (s *IdentityService) EnsureUser(ctx context.Context, sess *session.Session) (string, error) {
	if id := sess.UserID(); id != "" {
		return id, nil
	}

	u := user.User{
		ID:      uuid.NewString(),
		Created: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	sess.SetUserID(u.ID)
	observability.RecordUserCreated()
	s.logger.Debug("created implicit user", zap.String("user_id", u.ID))
	return u.ID, nil
}
