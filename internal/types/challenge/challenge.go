package challenge

import (
	"time"

	"fitChallengeAPI/internal/apperror"
)

// SchemaVersion is the version of the challenge definition schema understood
// by the mobile clients.
const SchemaVersion = "0.1.0"

type Kind string

const (
	KindSessions Kind = "sessions"
	KindMiles    Kind = "miles"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSessions, KindMiles:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityRun   ActivityType = "run"
	ActivityWalk  ActivityType = "walk"
	ActivityCycle ActivityType = "cycle"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityRun, ActivityWalk, ActivityCycle:
		return true
	}
	return false
}

// Filter restricts which activity records count toward a segment.
type Filter struct {
	ActivityTypes []ActivityType `json:"types"`
	MinMinutes    *int           `json:"minutes,omitempty"`
}

type Segment struct {
	Kind   Kind   `json:"type"`
	Count  int    `json:"count"`
	Days   int    `json:"days"`
	Filter Filter `json:"filter"`
}

// Challenge is a user-authored (or catalog) fitness goal. The JSON keys match
// what the mobile clients already parse, including "sessions" for the schema
// version and "share" for the public share token.
type Challenge struct {
	ID            string    `json:"id,omitempty" db:"id"`
	SchemaVersion string    `json:"sessions" db:"schema_version"`
	Author        string    `json:"author,omitempty" db:"author"`
	Name          string    `json:"name" db:"name"`
	Summary       string    `json:"summary" db:"summary"`
	Segments      []Segment `json:"segments" db:"segments"`
	ShareID       string    `json:"share,omitempty" db:"share_id"`
	CreatedAt     time.Time `json:"created,omitzero" db:"created_at"`
}

// Definition is the author-supplied part of a challenge.
type Definition struct {
	Name     string
	Summary  string
	Segments []Segment
}

// Clone returns a deep copy so that callers can't alias slices or pointers
// held by a store or the catalog.
func (c Challenge) Clone() Challenge {
	out := c
	out.Segments = cloneSegments(c.Segments)
	return out
}

func cloneSegments(in []Segment) []Segment {
	if in == nil {
		return nil
	}
	out := make([]Segment, len(in))
	for i, seg := range in {
		out[i] = seg
		out[i].Filter.ActivityTypes = append([]ActivityType(nil), seg.Filter.ActivityTypes...)
		if seg.Filter.MinMinutes != nil {
			m := *seg.Filter.MinMinutes
			out[i].Filter.MinMinutes = &m
		}
	}
	return out
}

// Validate checks the definition against the creation rules. The first
// violation is returned as an *apperror.ValidationError.
func (d Definition) Validate() error {
	if len(d.Segments) == 0 {
		return apperror.Invalid("segments", "challenge must have at least one segment")
	}
	for i, seg := range d.Segments {
		if err := seg.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (s Segment) validate(i int) error {
	if !s.Kind.Valid() {
		return apperror.InvalidSegment(i, "type", "unknown segment type "+string(s.Kind))
	}
	if s.Count < 0 {
		return apperror.InvalidSegment(i, "count", "count must not be negative")
	}
	if s.Days < 1 {
		return apperror.InvalidSegment(i, "days", "number of days must be at least 1")
	}
	if s.Count > s.Days {
		return apperror.InvalidSegment(i, "count", "number of sessions must be less than number of days")
	}
	if len(s.Filter.ActivityTypes) == 0 {
		return apperror.InvalidSegment(i, "types", "select at least one activity type")
	}
	for _, t := range s.Filter.ActivityTypes {
		if !t.Valid() {
			return apperror.InvalidSegment(i, "types", "unknown activity type "+string(t))
		}
	}
	if s.Filter.MinMinutes != nil && *s.Filter.MinMinutes < 0 {
		return apperror.InvalidSegment(i, "minutes", "minimum minutes must not be negative")
	}
	return nil
}

// PluralMinutes reports whether the first segment's minimum duration reads
// as plural on the challenge page.
func (c Challenge) PluralMinutes() bool {
	if len(c.Segments) == 0 || c.Segments[0].Filter.MinMinutes == nil {
		return false
	}
	return *c.Segments[0].Filter.MinMinutes > 1
}
