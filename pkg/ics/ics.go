// Package ics converts between stored events and the iCalendar format
// for export and import.
package ics

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/minjaecode/haruplan/internal/models"
	"github.com/minjaecode/haruplan/pkg/dateutil"
	"github.com/minjaecode/haruplan/pkg/overlap"
)

// Export serializes events into an iCalendar document. Events whose
// date or times do not parse are skipped; the repeat descriptor is not
// expanded into RRULEs.
func Export(events []models.Event, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//haruplan//calendar//KO")

	for _, event := range events {
		r := overlap.EventToRange(event)
		if r.Start.IsZero() || r.End.IsZero() {
			logger.Warn("Skipping event with unparsable times on export",
				"event_id", event.ID,
				"date", event.Date)
			continue
		}

		ve := cal.AddEvent(event.ID)
		ve.SetDtStampTime(time.Now())
		ve.SetStartAt(r.Start)
		ve.SetEndAt(r.End)
		ve.SetSummary(event.Title)
		if event.Description != "" {
			ve.SetDescription(event.Description)
		}
		if event.Location != "" {
			ve.SetLocation(event.Location)
		}
		if event.Category != "" {
			ve.SetProperty(ics.ComponentPropertyCategories, event.Category)
		}
	}

	return cal.Serialize()
}

// Import parses an iCalendar document into event records. Unparsable
// and multi-day VEVENTs are logged and skipped. Imported events keep
// their UID as id;
// the lead time defaults to zero since VALARM triggers are not carried
// over.
func Import(data string, logger *slog.Logger) ([]models.Event, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse iCal data: %w", err)
	}

	var events []models.Event
	for _, ve := range cal.Events() {
		event, err := convertVEvent(ve)
		if err != nil {
			logger.Warn("Skipping iCal event", "error", err, "uid", ve.Id())
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func convertVEvent(ve *ics.VEvent) (models.Event, error) {
	var event models.Event

	if ve.Id() == "" {
		return event, fmt.Errorf("event missing UID")
	}
	event.ID = ve.Id()

	if summary := ve.GetProperty(ics.ComponentPropertySummary); summary != nil {
		event.Title = summary.Value
	}
	if description := ve.GetProperty(ics.ComponentPropertyDescription); description != nil {
		event.Description = description.Value
	}
	if location := ve.GetProperty(ics.ComponentPropertyLocation); location != nil {
		event.Location = location.Value
	}
	if category := ve.GetProperty(ics.ComponentPropertyCategories); category != nil {
		event.Category = category.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return event, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(time.Hour)
	}

	start, end = start.In(time.Local), end.In(time.Local)
	event.Date = dateutil.FormatDate(start)
	// An event record holds a single date with two clock values, so a
	// span crossing midnight cannot be represented without inverting it.
	if dateutil.FormatDate(end) != event.Date {
		return event, fmt.Errorf("event spans multiple days (%s to %s)",
			event.Date, dateutil.FormatDate(end))
	}
	event.StartTime = formatClock(start)
	event.EndTime = formatClock(end)
	event.Repeat = models.Repeat{Type: models.RepeatNone, Interval: 1}

	return event, nil
}

func formatClock(t time.Time) string {
	return fmt.Sprintf("%s:%s",
		dateutil.FillZero(float64(t.Hour())),
		dateutil.FillZero(float64(t.Minute())))
}
