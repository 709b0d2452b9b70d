// Package catalog holds the built-in challenges served under /s/{key}.
// The table is built once at package initialisation and never written
// afterwards, so lookups need no locking.
package catalog

import (
	"fmt"
	"sort"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/types/challenge"
)

const (
	Key5Walks   = "5walks"
	Key1Run     = "1run"
	KeyC25K     = "c25k"
	Key365In365 = "365in365"
)

var entries = map[string]challenge.Challenge{
	Key5Walks: {
		SchemaVersion: challenge.SchemaVersion,
		Name:          "5 walks this week",
		Summary:       "Perform 5 walks for at least 1 minute each in the next 7 days",
		Segments: []challenge.Segment{
			sessions(5, 7, 1, challenge.ActivityWalk),
		},
	},
	Key1Run: {
		SchemaVersion: challenge.SchemaVersion,
		Name:          "A single workout this week",
		Summary:       "Perform a single workout of any kind for at least 1 minute in the next 7 days",
		Segments: []challenge.Segment{
			sessions(1, 7, 1, challenge.ActivityRun, challenge.ActivityWalk, challenge.ActivityCycle),
		},
	},
	KeyC25K: {
		SchemaVersion: challenge.SchemaVersion,
		Name:          "The couch to 5k running plan",
		Summary: "Start your 5k training with just a few minutes each week. Each session should take about 20 or 30 minutes, " +
			"three times a week. That just happens to be the same amount of moderate exercise recommended by numerous studies " +
			"for optimum fitness. This program will get you fit.",
		Segments: repeat(9, func() challenge.Segment {
			return sessions(3, 7, 25, challenge.ActivityRun, challenge.ActivityWalk)
		}),
	},
	Key365In365: {
		SchemaVersion: challenge.SchemaVersion,
		Name:          "Zuckerberg's 365 in 365",
		Summary: "This challenge was first proposed by Mark Zuckerberg to his Facebook followers. " +
			"Run for 365 miles in 365 days. Simple right?",
		Segments: []challenge.Segment{
			{
				Kind:  challenge.KindMiles,
				Count: 365,
				Days:  365,
				Filter: challenge.Filter{
					ActivityTypes: []challenge.ActivityType{challenge.ActivityRun},
				},
			},
		},
	},
}

// Get returns a copy of the catalog entry stored under key.
func Get(key string) (challenge.Challenge, error) {
	entry, ok := entries[key]
	if !ok {
		return challenge.Challenge{}, fmt.Errorf("catalog entry %q: %w", key, apperror.ErrNotFound)
	}
	return entry.Clone(), nil
}

// Has reports whether key names a catalog entry.
func Has(key string) bool {
	_, ok := entries[key]
	return ok
}

// Keys lists the catalog keys in lexical order.
func Keys() []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sessions(count, days, minutes int, types ...challenge.ActivityType) challenge.Segment {
	m := minutes
	return challenge.Segment{
		Kind:  challenge.KindSessions,
		Count: count,
		Days:  days,
		Filter: challenge.Filter{
			ActivityTypes: types,
			MinMinutes:    &m,
		},
	}
}

func repeat(n int, build func() challenge.Segment) []challenge.Segment {
	out := make([]challenge.Segment, n)
	for i := range out {
		out[i] = build()
	}
	return out
}
