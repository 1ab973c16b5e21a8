// Package view holds the calendar's navigation state: the active view
// mode, the reference date, and the holiday set derived for the
// reference date's month.
package view

import (
	"sync"
	"time"

	"github.com/minjaecode/haruplan/internal/models"
	"github.com/minjaecode/haruplan/pkg/dateutil"
)

// Direction is a navigation step relative to the current view.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// HolidayLookup resolves the holidays of a date's month as a map from
// YYYY-MM-DD strings to holiday names. Months without holidays yield an
// empty map.
type HolidayLookup interface {
	HolidaysForMonth(date time.Time) map[string]string
}

// State is the calendar view state. The view defaults to month and the
// reference date to the instant the state was created; the holiday set
// is replaced wholesale whenever the reference month changes.
type State struct {
	mu          sync.Mutex
	view        models.ViewMode
	currentDate time.Time
	holidays    map[string]string
	lookup      HolidayLookup
}

// New creates view state anchored at now.
func New(now time.Time, lookup HolidayLookup) *State {
	s := &State{
		view:        models.ViewMonth,
		currentDate: now,
		lookup:      lookup,
	}
	s.holidays = s.fetchHolidays(now)
	return s
}

// View returns the active view mode.
func (s *State) View() models.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView switches between the week and month views.
func (s *State) SetView(view models.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// CurrentDate returns the reference date.
func (s *State) CurrentDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDate
}

// SetCurrentDate moves the reference date directly, re-deriving the
// holiday set if the month changed.
func (s *State) SetCurrentDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(date)
}

// Holidays returns the holiday set of the reference date's month.
func (s *State) Holidays() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.holidays))
	for k, v := range s.holidays {
		out[k] = v
	}
	return out
}

// Navigate shifts the reference date by one unit of the active view:
// seven days in the week view, one calendar month in the month view.
// A month step keeps the day of month when the target month has it and
// lands on day 1 otherwise.
func (s *State) Navigate(direction Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := 1
	if direction == Prev {
		step = -1
	}

	switch s.view {
	case models.ViewWeek:
		s.moveTo(s.currentDate.AddDate(0, 0, 7*step))
	case models.ViewMonth:
		s.moveTo(shiftMonth(s.currentDate, step))
	}
}

// moveTo requires s.mu to be held.
func (s *State) moveTo(date time.Time) {
	monthChanged := date.Year() != s.currentDate.Year() || date.Month() != s.currentDate.Month()
	s.currentDate = date
	if monthChanged {
		s.holidays = s.fetchHolidays(date)
	}
}

func (s *State) fetchHolidays(date time.Time) map[string]string {
	if s.lookup == nil {
		return map[string]string{}
	}
	holidays := s.lookup.HolidaysForMonth(date)
	if holidays == nil {
		holidays = map[string]string{}
	}
	return holidays
}

func shiftMonth(date time.Time, step int) time.Time {
	year, month := date.Year(), int(date.Month())+step
	day := date.Day()
	if day > dateutil.DaysInMonth(year, month) {
		day = 1
	}
	first := time.Date(year, time.Month(month), 1,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	return time.Date(first.Year(), first.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}
