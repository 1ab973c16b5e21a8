package models

import (
	"encoding/json"
	"testing"
)

func TestEventIsDraft(t *testing.T) {
	draft := Event{Title: "새 일정"}
	if !draft.IsDraft() {
		t.Error("Expected event without id to be a draft")
	}

	stored := Event{ID: "2b7545a6-ebee-426c-b906-2329bc8d62bd"}
	if stored.IsDraft() {
		t.Error("Expected event with id not to be a draft")
	}
}

func TestEventIsRepeating(t *testing.T) {
	tests := []struct {
		name   string
		repeat Repeat
		want   bool
	}{
		{"no repeat type", Repeat{}, false},
		{"explicit none", Repeat{Type: RepeatNone, Interval: 1}, false},
		{"daily", Repeat{Type: RepeatDaily, Interval: 1}, true},
		{"weekly", Repeat{Type: RepeatWeekly, Interval: 2}, true},
		{"monthly with end date", Repeat{Type: RepeatMonthly, Interval: 1, EndDate: "2025-12-31"}, true},
		{"yearly", Repeat{Type: RepeatYearly, Interval: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := Event{Repeat: tt.repeat}
			if got := event.IsRepeating(); got != tt.want {
				t.Errorf("IsRepeating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventJSONFieldNames(t *testing.T) {
	event := Event{
		ID:               "1",
		Title:            "회의",
		Date:             "2025-07-01",
		StartTime:        "10:00",
		EndTime:          "11:00",
		Category:         "업무",
		Repeat:           Repeat{Type: RepeatWeekly, Interval: 1, EndDate: "2025-12-31"},
		NotificationTime: 10,
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to marshal event: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}

	for _, key := range []string{"id", "title", "date", "startTime", "endTime", "category", "repeat", "notificationTime"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected field %q in JSON output", key)
		}
	}

	repeat, ok := fields["repeat"].(map[string]any)
	if !ok {
		t.Fatalf("Expected repeat to be an object, got %T", fields["repeat"])
	}
	if repeat["type"] != "weekly" || repeat["endDate"] != "2025-12-31" {
		t.Errorf("Unexpected repeat encoding %v", repeat)
	}
}

func TestNotificationJSONFieldNames(t *testing.T) {
	n := Notification{EventID: "1", Message: "5분 후 회의 일정이 시작됩니다."}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Failed to marshal notification: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal notification: %v", err)
	}
	if fields["id"] != "1" {
		t.Errorf("Expected event id under %q, got %v", "id", fields)
	}
	if fields["message"] != n.Message {
		t.Errorf("Unexpected message %v", fields["message"])
	}
}

func TestCategories(t *testing.T) {
	want := []string{"업무", "개인", "가족", "기타"}
	if len(Categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(Categories))
	}
	for i, c := range want {
		if Categories[i] != c {
			t.Errorf("Expected category %d to be %q, got %q", i, c, Categories[i])
		}
	}
}
