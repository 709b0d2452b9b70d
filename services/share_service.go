package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/events"
	"fitChallengeAPI/internal/observability"
	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/types/share"
)

const (
	shareIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	shareIDLength   = 10
	DefaultQRSize   = 256
)

type ShareService struct {
	shares     ShareRepository
	challenges *ChallengeService
	publisher  events.Publisher
	logger     *zap.Logger
	baseURL    string
	newID      func() (string, error)
	now        func() time.Time
}

func NewShareService(shares ShareRepository, challenges *ChallengeService, publisher events.Publisher, baseURL string, logger *zap.Logger) *ShareService {
	return &ShareService{
		shares:     shares,
		challenges: challenges,
		publisher:  publisher,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		newID: func() (string, error) {
			return gonanoid.Generate(shareIDAlphabet, shareIDLength)
		},
		now: time.Now,
	}
}

// CreateShare mints a public token for challengeID, stores the share and
// records it on the challenge. The two writes are not atomic: when the second
// fails the share row remains and the challenge stays unshared.
func (s *ShareService) CreateShare(ctx context.Context, challengeID string) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("%w: generate id: %w", apperror.ErrShareCreationFailed, err)
	}

	sh := share.Share{
		ID:          id,
		ChallengeID: challengeID,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.shares.InsertShare(ctx, sh); err != nil {
		return "", fmt.Errorf("%w: insert share: %w", apperror.ErrShareCreationFailed, err)
	}
	if err := s.challenges.AttachShare(ctx, challengeID, id); err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrShareCreationFailed, err)
	}

	observability.RecordShareCreated()
	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:        events.TypeChallengeShared,
		ChallengeID: challengeID,
		ShareID:     id,
		OccurredAt:  sh.CreatedAt,
	})
	return id, nil
}

// ResolveShare returns the challenge behind a share token. An unknown token
// and a share whose challenge was deleted both yield apperror.ErrNotFound.
func (s *ShareService) ResolveShare(ctx context.Context, shareID string) (*challenge.Challenge, error) {
	sh, err := s.shares.GetShare(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("get share %s: %w", shareID, err)
	}
	if sh == nil {
		return nil, fmt.Errorf("share %s: %w", shareID, apperror.ErrNotFound)
	}
	return s.challenges.GetChallenge(ctx, sh.ChallengeID)
}

func (s *ShareService) ShareURL(shareID string) string {
	return s.baseURL + "/s/" + shareID
}

// QRCode renders a PNG QR code pointing at the public share URL. The share
// must resolve.
func (s *ShareService) QRCode(ctx context.Context, shareID string, size int) ([]byte, error) {
	if _, err := s.ResolveShare(ctx, shareID); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(s.ShareURL(shareID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}
	return png, nil
}
