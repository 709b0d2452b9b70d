package services

import (
	"context"

	"go.uber.org/zap"

	"fitChallengeAPI/internal/types/challenge"
)

// CreationWorkflow turns a submitted create form into a stored, shared
// challenge.
type CreationWorkflow struct {
	challenges *ChallengeService
	shares     *ShareService
	logger     *zap.Logger
}

func NewCreationWorkflow(challenges *ChallengeService, shares *ShareService, logger *zap.Logger) *CreationWorkflow {
	return &CreationWorkflow{
		challenges: challenges,
		shares:     shares,
		logger:     logger,
	}
}

// Create parses form, stores the challenge for authorID and attaches a new
// share. A share failure is returned as apperror.ErrShareCreationFailed and
// the stored challenge is kept without a share.
func (w *CreationWorkflow) Create(ctx context.Context, authorID string, form challenge.CreateChallengeForm) (*challenge.Challenge, error) {
	def, err := form.Definition()
	if err != nil {
		return nil, err
	}

	c, err := w.challenges.CreateChallenge(ctx, authorID, def)
	if err != nil {
		return nil, err
	}

	shareID, err := w.shares.CreateShare(ctx, c.ID)
	if err != nil {
		w.logger.Error("challenge stored without share",
			zap.String("challenge_id", c.ID),
			zap.Error(err))
		return nil, err
	}

	c.ShareID = shareID
	return c, nil
}
