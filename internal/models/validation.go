package models

import "time"

const (
	startBeforeEndMessage = "시작 시간은 종료 시간보다 빨라야 합니다."
	endAfterStartMessage  = "종료 시간은 시작 시간보다 늦어야 합니다."
)

// TimeErrors carries per-field messages for the start/end time pair.
// Empty fields mean the corresponding input is acceptable.
type TimeErrors struct {
	StartTimeError string
	EndTimeError   string
}

// HasError returns true if either field carries a message.
func (t TimeErrors) HasError() bool {
	return t.StartTimeError != "" || t.EndTimeError != ""
}

// ValidateEventTimes checks that the start time falls strictly before the
// end time. Equal or inverted times produce messages on both fields; an
// empty or unparsable input on either side yields no error, since the form
// validates completeness separately.
func ValidateEventTimes(startTime, endTime string) TimeErrors {
	if startTime == "" || endTime == "" {
		return TimeErrors{}
	}

	start, err := parseClock(startTime)
	if err != nil {
		return TimeErrors{}
	}
	end, err := parseClock(endTime)
	if err != nil {
		return TimeErrors{}
	}

	if !start.Before(end) {
		return TimeErrors{
			StartTimeError: startBeforeEndMessage,
			EndTimeError:   endAfterStartMessage,
		}
	}
	return TimeErrors{}
}

// parseClock accepts the form's "HH:MM" values and the "HH:MM:SS"
// variant produced by some time pickers.
func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", value)
}

// Validate reports missing required fields as a field-to-message map.
// An empty map means the event is complete enough to save.
func (e *Event) Validate() map[string]string {
	errs := make(map[string]string)
	if e.Title == "" {
		errs["title"] = "제목을 입력해주세요."
	}
	if e.Date == "" {
		errs["date"] = "날짜를 입력해주세요."
	}
	if e.StartTime == "" {
		errs["startTime"] = "시작 시간을 입력해주세요."
	}
	if e.EndTime == "" {
		errs["endTime"] = "종료 시간을 입력해주세요."
	}
	return errs
}
