package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/types/share"
	"fitChallengeAPI/internal/types/user"
)

func withUsers(t *testing.T, ids ...string) *Store {
	t.Helper()
	s := New()
	for _, id := range ids {
		require.NoError(t, s.CreateUser(context.Background(), user.User{ID: id}))
	}
	return s
}

func sample(id, author string) challenge.Challenge {
	minutes := 10
	return challenge.Challenge{
		ID:            id,
		SchemaVersion: challenge.SchemaVersion,
		Author:        author,
		Name:          "Test",
		Segments: []challenge.Segment{{
			Kind:  challenge.KindSessions,
			Count: 3,
			Days:  7,
			Filter: challenge.Filter{
				ActivityTypes: []challenge.ActivityType{challenge.ActivityRun},
				MinMinutes:    &minutes,
			},
		}},
	}
}

func TestChallengeLifecycle(t *testing.T) {
	ctx := context.Background()
	s := withUsers(t, "u1", "u2")

	require.NoError(t, s.InsertChallenge(ctx, sample("c1", "u1")))
	require.NoError(t, s.InsertChallenge(ctx, sample("c2", "u2")))
	require.NoError(t, s.InsertChallenge(ctx, sample("c3", "u1")))

	list, err := s.ListChallengesByAuthor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "c3", list[1].ID)

	ok, err := s.SetShare(ctx, "c1", "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetChallenge(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.ShareID)

	removed, err := s.DeleteChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.DeleteChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, removed)

	got, err = s.GetChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = s.SetShare(ctx, "c1", "def")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err = s.ListChallengesByAuthor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c3", list[0].ID)
}

func TestReturnedChallengesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := withUsers(t, "u1")
	require.NoError(t, s.InsertChallenge(ctx, sample("c1", "u1")))

	got, err := s.GetChallenge(ctx, "c1")
	require.NoError(t, err)
	*got.Segments[0].Filter.MinMinutes = 99
	got.Segments[0].Filter.ActivityTypes[0] = challenge.ActivityCycle

	again, err := s.GetChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 10, *again.Segments[0].Filter.MinMinutes)
	assert.Equal(t, challenge.ActivityRun, again.Segments[0].Filter.ActivityTypes[0])
}

func TestShares(t *testing.T) {
	ctx := context.Background()
	s := New()

	missing, err := s.GetShare(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.InsertShare(ctx, share.Share{ID: "abc", ChallengeID: "c1"}))
	got, err := s.GetShare(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ChallengeID)
}

func TestListForUnknownAuthorIsEmpty(t *testing.T) {
	list, err := New().ListChallengesByAuthor(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInsertChallengeForUnknownAuthor(t *testing.T) {
	ctx := context.Background()
	s := withUsers(t, "u1")

	err := s.InsertChallenge(ctx, sample("c1", "ghost"))
	require.ErrorIs(t, err, apperror.ErrUserNotFound)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := s.GetChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
