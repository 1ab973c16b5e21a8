// Package search produces the visible event subset for the active view:
// the period filter for the current week or month combined with a
// case-insensitive text search.
package search

import (
	"strings"
	"time"

	"github.com/minjaecode/haruplan/internal/models"
	"github.com/minjaecode/haruplan/pkg/dateutil"
)

// FilteredEvents narrows events to those whose date falls in the active
// period around referenceDate, then to those matching the search term in
// title, description or location. An empty term passes everything
// through; input order is preserved.
func FilteredEvents(events []models.Event, term string, referenceDate time.Time, view models.ViewMode) []models.Event {
	periodEvents := filterByPeriod(events, referenceDate, view)
	if term == "" {
		return periodEvents
	}

	needle := strings.ToLower(term)
	matched := []models.Event{}
	for _, event := range periodEvents {
		if containsTerm(event, needle) {
			matched = append(matched, event)
		}
	}
	return matched
}

func filterByPeriod(events []models.Event, referenceDate time.Time, view models.ViewMode) []models.Event {
	year, month := referenceDate.Year(), referenceDate.Month()
	day := time.Date(year, month, referenceDate.Day(), 0, 0, 0, 0, time.Local)

	var start, end time.Time
	switch view {
	case models.ViewWeek:
		week := dateutil.WeekDates(day)
		start, end = week[0], week[6]
	case models.ViewMonth:
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(year, month, dateutil.DaysInMonth(year, int(month)), 0, 0, 0, 0, time.Local)
	default:
		return []models.Event{}
	}

	matched := []models.Event{}
	for _, event := range events {
		d, err := dateutil.ParseDate(event.Date)
		if err != nil {
			continue
		}
		if dateutil.IsDateInRange(d, start, end) {
			matched = append(matched, event)
		}
	}
	return matched
}

func containsTerm(event models.Event, needle string) bool {
	return strings.Contains(strings.ToLower(event.Title), needle) ||
		strings.Contains(strings.ToLower(event.Description), needle) ||
		strings.Contains(strings.ToLower(event.Location), needle)
}
