package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/types/challenge"
)

func TestGet5Walks(t *testing.T) {
	entry, err := Get(Key5Walks)
	require.NoError(t, err)

	assert.Equal(t, challenge.SchemaVersion, entry.SchemaVersion)
	assert.Empty(t, entry.ID)
	assert.Empty(t, entry.Author)
	require.Len(t, entry.Segments, 1)

	seg := entry.Segments[0]
	assert.Equal(t, challenge.KindSessions, seg.Kind)
	assert.Equal(t, 5, seg.Count)
	assert.Equal(t, 7, seg.Days)
	assert.Equal(t, []challenge.ActivityType{challenge.ActivityWalk}, seg.Filter.ActivityTypes)
	require.NotNil(t, seg.Filter.MinMinutes)
	assert.Equal(t, 1, *seg.Filter.MinMinutes)
}

func TestGet1Run(t *testing.T) {
	entry, err := Get(Key1Run)
	require.NoError(t, err)
	require.Len(t, entry.Segments, 1)
	assert.Equal(t, 1, entry.Segments[0].Count)
	assert.Equal(t, []challenge.ActivityType{
		challenge.ActivityRun, challenge.ActivityWalk, challenge.ActivityCycle,
	}, entry.Segments[0].Filter.ActivityTypes)
}

func TestGetC25K(t *testing.T) {
	entry, err := Get(KeyC25K)
	require.NoError(t, err)
	require.Len(t, entry.Segments, 9)
	for _, seg := range entry.Segments {
		assert.Equal(t, challenge.KindSessions, seg.Kind)
		assert.Equal(t, 3, seg.Count)
		assert.Equal(t, 7, seg.Days)
		assert.Equal(t, 25, *seg.Filter.MinMinutes)
		assert.Equal(t, []challenge.ActivityType{challenge.ActivityRun, challenge.ActivityWalk}, seg.Filter.ActivityTypes)
	}
}

func TestGet365In365HasNoMinimumDuration(t *testing.T) {
	entry, err := Get(Key365In365)
	require.NoError(t, err)
	require.Len(t, entry.Segments, 1)
	seg := entry.Segments[0]
	assert.Equal(t, challenge.KindMiles, seg.Kind)
	assert.Equal(t, 365, seg.Count)
	assert.Equal(t, 365, seg.Days)
	assert.Nil(t, seg.Filter.MinMinutes)
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Get("10k")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.False(t, Has("10k"))
}

func TestGetReturnsIndependentCopies(t *testing.T) {
	first, err := Get(Key5Walks)
	require.NoError(t, err)
	first.Segments[0].Count = 99
	*first.Segments[0].Filter.MinMinutes = 42
	first.Segments[0].Filter.ActivityTypes[0] = challenge.ActivityCycle

	second, err := Get(Key5Walks)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Segments[0].Count)
	assert.Equal(t, 1, *second.Segments[0].Filter.MinMinutes)
	assert.Equal(t, challenge.ActivityWalk, second.Segments[0].Filter.ActivityTypes[0])
}

func TestEntriesPassCreationValidation(t *testing.T) {
	for _, key := range Keys() {
		entry, err := Get(key)
		require.NoError(t, err)
		def := challenge.Definition{Name: entry.Name, Summary: entry.Summary, Segments: entry.Segments}
		assert.NoError(t, def.Validate(), key)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"1run", "365in365", "5walks", "c25k"}, Keys())
}
