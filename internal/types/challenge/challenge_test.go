package challenge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitChallengeAPI/internal/apperror"
)

func TestFormDefinition(t *testing.T) {
	form := CreateChallengeForm{
		Name:        "Test",
		NumSessions: "3",
		NumDays:     "7",
		MinMinutes:  "10",
		Run:         "true",
		Walk:        "false",
		Cycle:       "",
	}

	def, err := form.Definition()
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	require.Len(t, def.Segments, 1)
	seg := def.Segments[0]
	assert.Equal(t, "Test", def.Name)
	assert.Equal(t, KindSessions, seg.Kind)
	assert.Equal(t, 3, seg.Count)
	assert.Equal(t, 7, seg.Days)
	assert.Equal(t, []ActivityType{ActivityRun}, seg.Filter.ActivityTypes)
	require.NotNil(t, seg.Filter.MinMinutes)
	assert.Equal(t, 10, *seg.Filter.MinMinutes)
}

func TestFormDefinitionEmptyMinutesIsAbsent(t *testing.T) {
	def, err := CreateChallengeForm{Name: "x", NumSessions: "1", NumDays: "1", Walk: "true", Cycle: "true"}.Definition()
	require.NoError(t, err)
	assert.Nil(t, def.Segments[0].Filter.MinMinutes)
	assert.Equal(t, []ActivityType{ActivityWalk, ActivityCycle}, def.Segments[0].Filter.ActivityTypes)
}

func TestFormDefinitionRejectsNonNumbers(t *testing.T) {
	cases := map[string]CreateChallengeForm{
		"num_sessions": {Name: "x", NumSessions: "three", NumDays: "7"},
		"num_days":     {Name: "x", NumSessions: "3", NumDays: ""},
		"min_minutes":  {Name: "x", NumSessions: "3", NumDays: "7", MinMinutes: "1.5"},
	}
	for field, form := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := form.Definition()
			ve, ok := apperror.IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestValidateRejectsMoreSessionsThanDays(t *testing.T) {
	def := Definition{
		Name: "too much",
		Segments: []Segment{
			{Kind: KindSessions, Count: 2, Days: 2, Filter: Filter{ActivityTypes: []ActivityType{ActivityRun}}},
			{Kind: KindSessions, Count: 8, Days: 7, Filter: Filter{ActivityTypes: []ActivityType{ActivityRun}}},
		},
	}

	err := def.Validate()
	ve, ok := apperror.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Segment)
	assert.Equal(t, "count", ve.Field)
}

func TestValidateSegmentConstraints(t *testing.T) {
	run := []ActivityType{ActivityRun}
	cases := []struct {
		name  string
		seg   Segment
		field string
	}{
		{"unknown kind", Segment{Kind: "laps", Count: 1, Days: 1, Filter: Filter{ActivityTypes: run}}, "type"},
		{"negative count", Segment{Kind: KindSessions, Count: -1, Days: 1, Filter: Filter{ActivityTypes: run}}, "count"},
		{"zero days", Segment{Kind: KindSessions, Count: 0, Days: 0, Filter: Filter{ActivityTypes: run}}, "days"},
		{"no types", Segment{Kind: KindSessions, Count: 1, Days: 1}, "types"},
		{"unknown type", Segment{Kind: KindSessions, Count: 1, Days: 1, Filter: Filter{ActivityTypes: []ActivityType{"swim"}}}, "types"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Definition{Name: "x", Segments: []Segment{tc.seg}}.Validate()
			ve, ok := apperror.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, 0, ve.Segment)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestValidateRequiresSegments(t *testing.T) {
	ve, ok := apperror.IsValidation(Definition{Name: "x"}.Validate())
	require.True(t, ok)
	assert.Equal(t, "segments", ve.Field)
	assert.Equal(t, -1, ve.Segment)
}

func TestValidateAllowsBlankName(t *testing.T) {
	seg := Segment{Kind: KindSessions, Count: 1, Days: 1, Filter: Filter{ActivityTypes: []ActivityType{ActivityWalk}}}
	assert.NoError(t, Definition{Segments: []Segment{seg}}.Validate())
	assert.NoError(t, Definition{Name: "  ", Segments: []Segment{seg}}.Validate())
}

func TestChallengeJSONUsesClientKeys(t *testing.T) {
	minutes := 10
	c := Challenge{
		ID:            "c1",
		SchemaVersion: SchemaVersion,
		Author:        "u1",
		Name:          "Test",
		Segments: []Segment{
			{Kind: KindSessions, Count: 3, Days: 7, Filter: Filter{ActivityTypes: []ActivityType{ActivityRun}, MinMinutes: &minutes}},
		},
		ShareID: "abc",
	}

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "c1",
		"sessions": "0.1.0",
		"author": "u1",
		"name": "Test",
		"summary": "",
		"segments": [{"type": "sessions", "count": 3, "days": 7, "filter": {"types": ["run"], "minutes": 10}}],
		"share": "abc"
	}`, string(raw))
}

func TestPluralMinutes(t *testing.T) {
	one, many := 1, 25
	assert.False(t, Challenge{}.PluralMinutes())
	assert.False(t, Challenge{Segments: []Segment{{Filter: Filter{MinMinutes: &one}}}}.PluralMinutes())
	assert.True(t, Challenge{Segments: []Segment{{Filter: Filter{MinMinutes: &many}}}}.PluralMinutes())
}
