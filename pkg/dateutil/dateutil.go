// Package dateutil provides the pure calendar arithmetic behind the
// week and month views: grid layout, week boundaries, day counts and
// the label/date formatting conventions shared across the application.
package dateutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/minjaecode/haruplan/internal/models"
)

const dateLayout = "2006-01-02"

// DaysInMonth returns the number of days in the given month. Out-of-range
// month numbers carry into the year the way date overflow does: month 13
// is January of the next year, month 0 is December of the previous one.
func DaysInMonth(year, month int) int {
	// Day zero of the following month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// WeekDates returns the seven dates of the week containing date,
// Sunday first. Month and year boundaries are crossed as needed.
func WeekDates(date time.Time) []time.Time {
	sunday := date.AddDate(0, 0, -int(date.Weekday()))
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// WeeksAtMonth lays out the month containing date as week rows of seven
// cells. A cell holds the day of month, or 0 for the leading and trailing
// slots that belong to adjacent months.
func WeeksAtMonth(date time.Time) [][]int {
	year, month := date.Year(), int(date.Month())
	days := DaysInMonth(year, month)
	firstWeekday := int(time.Date(year, date.Month(), 1, 0, 0, 0, 0, time.Local).Weekday())

	rows := (firstWeekday + days + 6) / 7
	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, 7)
	}
	for day := 1; day <= days; day++ {
		cell := firstWeekday + day - 1
		grid[cell/7][cell%7] = day
	}
	return grid
}

// EventsForDay filters events whose date falls on the given day of month.
// Day numbers outside 1..31 return nothing; the caller supplies the month
// context, this is only a structural guard.
func EventsForDay(events []models.Event, day int) []models.Event {
	if day <= 0 || day > 31 {
		return []models.Event{}
	}
	matched := []models.Event{}
	for _, event := range events {
		d, err := ParseDate(event.Date)
		if err != nil {
			continue
		}
		if d.Day() == day {
			matched = append(matched, event)
		}
	}
	return matched
}

// FormatWeek renders the "<year>년 <month>월 <n>주" label for the week
// containing date. The week is anchored on its Thursday, so a row whose
// majority falls into the next month is labelled as week 1 of that month.
func FormatWeek(date time.Time) string {
	thursday := date.AddDate(0, 0, 4-int(date.Weekday()))

	firstOfMonth := time.Date(thursday.Year(), thursday.Month(), 1, 0, 0, 0, 0, time.Local)
	offset := (4 - int(firstOfMonth.Weekday()) + 7) % 7
	firstThursday := firstOfMonth.AddDate(0, 0, offset)

	week := (thursday.Day()-firstThursday.Day())/7 + 1
	return fmt.Sprintf("%d년 %d월 %d주", thursday.Year(), int(thursday.Month()), week)
}

// FormatMonth renders the "<year>년 <month>월" label for date's month.
func FormatMonth(date time.Time) string {
	return fmt.Sprintf("%d년 %d월", date.Year(), int(date.Month()))
}

// IsDateInRange reports whether date lies within [start, end], inclusive
// on both ends. An inverted range matches nothing.
func IsDateInRange(date, start, end time.Time) bool {
	if start.After(end) {
		return false
	}
	return !date.Before(start) && !date.After(end)
}

// FillZero pads the decimal representation of a non-negative value with
// leading zeros to at least size characters (default 2). Values already
// wide enough come back unchanged; a fractional suffix is preserved.
func FillZero(value float64, size ...int) string {
	width := 2
	if len(size) > 0 {
		width = size[0]
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// FormatDate renders date as YYYY-MM-DD, optionally substituting the
// day of month.
func FormatDate(date time.Time, day ...int) string {
	d := date.Day()
	if len(day) > 0 {
		d = day[0]
	}
	return fmt.Sprintf("%d-%s-%s",
		date.Year(),
		FillZero(float64(int(date.Month()))),
		FillZero(float64(d)))
}

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.Local)
}
