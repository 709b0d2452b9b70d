package share

import "time"

// Share maps a short public token to a challenge. Shares are never updated or
// deleted, so a share may outlive the challenge it points at.
type Share struct {
	ID          string    `json:"id" db:"id"`
	ChallengeID string    `json:"challenge" db:"challenge_id"`
	CreatedAt   time.Time `json:"created" db:"created_at"`
}
