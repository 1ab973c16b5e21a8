package models

// RepeatType identifies how an event recurs.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat describes the recurrence of an event. It is stored and carried
// along with the event but occurrences are never expanded.
type Repeat struct {
	Type     RepeatType `json:"type"`
	Interval int        `json:"interval"`
	EndDate  string     `json:"endDate,omitempty"`
}

// Event represents a scheduled calendar event. Dates and times are kept
// as the zero-padded strings the user entered ("2006-01-02", "15:04");
// parsing into instants happens on demand in the overlap package.
type Event struct {
	ID               string `json:"id,omitempty"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Description      string `json:"description,omitempty"`
	Location         string `json:"location,omitempty"`
	Category         string `json:"category,omitempty"`
	Repeat           Repeat `json:"repeat"`
	NotificationTime int    `json:"notificationTime"` // minutes of lead time before start
}

// Categories is the closed label set offered by the event form.
var Categories = []string{"업무", "개인", "가족", "기타"}

// ViewMode selects the period the calendar renders and filters by.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// Notification is an in-app reminder emitted by the notify session.
// It lives only in memory and is dismissed by list position.
type Notification struct {
	EventID string `json:"id"`
	Message string `json:"message"`
}

// IsDraft returns true if the event has not been persisted yet.
func (e *Event) IsDraft() bool {
	return e.ID == ""
}

// IsRepeating returns true if the event carries a recurrence other than none.
func (e *Event) IsRepeating() bool {
	return e.Repeat.Type != "" && e.Repeat.Type != RepeatNone
}
