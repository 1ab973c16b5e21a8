// Package overlap derives comparable time intervals from an event's
// date and time strings and answers conflict queries against them.
package overlap

import (
	"time"

	"github.com/minjaecode/haruplan/internal/models"
)

// TimeRange is the [start, end) span an event occupies. Either boundary
// may be the invalid sentinel (the zero time) when its source string
// did not parse; invalid boundaries never overlap anything.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM time into a
// single local instant. Parsing is strict: missing zero padding, wrong
// separators, non-numeric components, empty strings and out-of-range
// values all yield the zero time, which callers must treat as invalid.
func ParseDateTime(date, clock string) time.Time {
	// The time package accepts unpadded components, so pin the widths
	// before parsing.
	if len(date) != len("2006-01-02") || len(clock) != len("15:04") {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EventToRange computes the event's time range. The start and end
// boundaries are parsed independently, so a malformed start time still
// leaves a usable end boundary and vice versa.
func EventToRange(event models.Event) TimeRange {
	return TimeRange{
		Start: ParseDateTime(event.Date, event.StartTime),
		End:   ParseDateTime(event.Date, event.EndTime),
	}
}

// IsOverlapping reports whether the two events occupy intersecting
// spans. Sharing only a boundary instant does not count, and an event
// with any invalid boundary overlaps nothing, itself included.
func IsOverlapping(a, b models.Event) bool {
	ra, rb := EventToRange(a), EventToRange(b)
	if ra.Start.IsZero() || ra.End.IsZero() || rb.Start.IsZero() || rb.End.IsZero() {
		return false
	}
	return ra.Start.Before(rb.End) && rb.Start.Before(ra.End)
}

// FindOverlappingEvents returns every event in existing that conflicts
// with the candidate, preserving the input order. An event carrying the
// candidate's own id is skipped so an edit can be re-saved against
// itself. The result is a pure query; callers gate persistence on user
// confirmation when it is non-empty.
func FindOverlappingEvents(candidate models.Event, existing []models.Event) []models.Event {
	conflicts := []models.Event{}
	for _, event := range existing {
		if event.ID != "" && event.ID == candidate.ID {
			continue
		}
		if IsOverlapping(candidate, event) {
			conflicts = append(conflicts, event)
		}
	}
	return conflicts
}
