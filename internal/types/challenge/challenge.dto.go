package challenge

import (
	"strconv"
	"strings"

	"fitChallengeAPI/internal/apperror"
)

// CreateChallengeForm carries the raw fields posted by the create page.
// Activity flags arrive as the string "true" when checked.
type CreateChallengeForm struct {
	Name        string `schema:"name"`
	Description string `schema:"description"`
	NumSessions string `schema:"num_sessions"`
	NumDays     string `schema:"num_days"`
	MinMinutes  string `schema:"min_minutes"`
	Run         string `schema:"run"`
	Walk        string `schema:"walk"`
	Cycle       string `schema:"cycle"`
}

// Definition converts the form into a single-segment sessions challenge.
// Only parsing problems are reported here; constraint checks live in
// Definition.Validate.
func (f CreateChallengeForm) Definition() (Definition, error) {
	count, err := parseWholeNumber("num_sessions", f.NumSessions)
	if err != nil {
		return Definition{}, err
	}
	days, err := parseWholeNumber("num_days", f.NumDays)
	if err != nil {
		return Definition{}, err
	}

	var minMinutes *int
	if strings.TrimSpace(f.MinMinutes) != "" {
		m, err := parseWholeNumber("min_minutes", f.MinMinutes)
		if err != nil {
			return Definition{}, err
		}
		minMinutes = &m
	}

	types := make([]ActivityType, 0, 3)
	if f.Run == "true" {
		types = append(types, ActivityRun)
	}
	if f.Walk == "true" {
		types = append(types, ActivityWalk)
	}
	if f.Cycle == "true" {
		types = append(types, ActivityCycle)
	}

	return Definition{
		Name:    strings.TrimSpace(f.Name),
		Summary: strings.TrimSpace(f.Description),
		Segments: []Segment{
			{
				Kind:  KindSessions,
				Count: count,
				Days:  days,
				Filter: Filter{
					ActivityTypes: types,
					MinMinutes:    minMinutes,
				},
			},
		},
	}, nil
}

func parseWholeNumber(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.Invalid(field, field+" must be a whole number")
	}
	return n, nil
}
