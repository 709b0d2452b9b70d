package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/events"
	"fitChallengeAPI/internal/observability"
	"fitChallengeAPI/internal/types/challenge"
)

type ChallengeService struct {
	repo      ChallengeRepository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewChallengeService(repo ChallengeRepository, publisher events.Publisher, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateChallenge validates def and stores it as a new challenge owned by
// authorID. Nothing is stored when validation fails.
func (s *ChallengeService) CreateChallenge(ctx context.Context, authorID string, def challenge.Definition) (*challenge.Challenge, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	c := challenge.Challenge{
		ID:            uuid.NewString(),
		SchemaVersion: challenge.SchemaVersion,
		Author:        authorID,
		Name:          def.Name,
		Summary:       def.Summary,
		Segments:      def.Segments,
		CreatedAt:     s.now().UTC().Truncate(time.Microsecond),
	}
	c = c.Clone()

	if err := s.repo.InsertChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("insert challenge: %w", err)
	}

	observability.RecordChallengeCreated()
	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:        events.TypeChallengeCreated,
		ChallengeID: c.ID,
		AuthorID:    c.Author,
		OccurredAt:  c.CreatedAt,
	})
	return &c, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, id string) (*challenge.Challenge, error) {
	c, err := s.repo.GetChallenge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get challenge %s: %w", id, err)
	}
	if c == nil {
		return nil, fmt.Errorf("challenge %s: %w", id, apperror.ErrNotFound)
	}
	return c, nil
}

// GetChallengeForAuthor is GetChallenge restricted to the challenge's author.
func (s *ChallengeService) GetChallengeForAuthor(ctx context.Context, requesterID, id string) (*challenge.Challenge, error) {
	c, err := s.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Author != requesterID {
		return nil, fmt.Errorf("challenge %s: %w", id, apperror.ErrForbidden)
	}
	return c, nil
}

// ListChallengesByAuthor returns the author's challenges in creation order.
func (s *ChallengeService) ListChallengesByAuthor(ctx context.Context, authorID string) ([]challenge.Challenge, error) {
	list, err := s.repo.ListChallengesByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	if list == nil {
		list = []challenge.Challenge{}
	}
	return list, nil
}

// DeleteChallenge removes the challenge if present. Deleting a missing
// challenge succeeds without publishing an event. Shares pointing at it are
// left in place.
func (s *ChallengeService) DeleteChallenge(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteChallenge(ctx, id)
	if err != nil {
		return fmt.Errorf("delete challenge %s: %w", id, err)
	}
	if !removed {
		return nil
	}
	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:        events.TypeChallengeDeleted,
		ChallengeID: id,
		OccurredAt:  s.now().UTC(),
	})
	return nil
}

// AttachShare records shareID on an existing challenge.
func (s *ChallengeService) AttachShare(ctx context.Context, challengeID, shareID string) error {
	found, err := s.repo.SetShare(ctx, challengeID, shareID)
	if err != nil {
		return fmt.Errorf("attach share to %s: %w", challengeID, err)
	}
	if !found {
		return fmt.Errorf("challenge %s: %w", challengeID, apperror.ErrNotFound)
	}
	return nil
}
