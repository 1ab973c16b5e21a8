package notify

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/minjaecode/haruplan/internal/models"
)

// MockEventSource is a mock event source for testing.
type MockEventSource struct {
	events []models.Event
	err    error
}

func (m *MockEventSource) FetchAll(ctx context.Context) ([]models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

// MockPublisher records published reminders.
type MockPublisher struct {
	published []*models.Notification
	err       error
}

func (m *MockPublisher) PublishReminder(ctx context.Context, notification *models.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, notification)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

var sessionEvents = []models.Event{
	{
		ID:               "1",
		Title:            "이벤트 1",
		Date:             "2024-07-01",
		StartTime:        "14:30",
		EndTime:          "15:30",
		NotificationTime: 5,
	},
	{
		ID:               "2",
		Title:            "이벤트 2",
		Date:             "2024-07-02",
		StartTime:        "15:30",
		EndTime:          "16:30",
		NotificationTime: 0,
	},
}

func at(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestUpcomingEvents(t *testing.T) {
	notified := map[string]struct{}{}

	t.Run("event inside its due window is returned", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:29:00"), notified)
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("Expected event 1, got %v", got)
		}
	})

	t.Run("window opens exactly at start minus lead", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:25:00"), notified)
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("Expected event 1 at window boundary, got %v", got)
		}
	})

	t.Run("event before its window is not returned", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:20:00"), notified)
		if len(got) != 0 {
			t.Errorf("Expected nothing, got %v", got)
		}
	})

	t.Run("event at its start instant is not returned", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:30:00"), notified)
		if len(got) != 0 {
			t.Errorf("Expected nothing, got %v", got)
		}
	})

	t.Run("event past its start is not returned", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:31:00"), notified)
		if len(got) != 0 {
			t.Errorf("Expected nothing, got %v", got)
		}
	})

	t.Run("already notified events are excluded", func(t *testing.T) {
		seen := map[string]struct{}{"1": {}}
		got := UpcomingEvents(sessionEvents, at("2024-07-01T14:29:00"), seen)
		if len(got) != 0 {
			t.Errorf("Expected nothing, got %v", got)
		}
	})

	t.Run("zero lead time never fires", func(t *testing.T) {
		got := UpcomingEvents(sessionEvents, at("2024-07-02T15:30:00"), notified)
		if len(got) != 0 {
			t.Errorf("Expected nothing for zero lead time, got %v", got)
		}
	})

	t.Run("unparsable events are skipped", func(t *testing.T) {
		broken := []models.Event{{ID: "x", Date: "nope", StartTime: "14:30", NotificationTime: 60}}
		got := UpcomingEvents(broken, at("2024-07-01T14:00:00"), notified)
		if len(got) != 0 {
			t.Errorf("Expected nothing, got %v", got)
		}
	})
}

func TestUpcomingEventsIsIdempotent(t *testing.T) {
	now := at("2024-07-01T14:29:00")
	notified := map[string]struct{}{}

	first := UpcomingEvents(sessionEvents, now, notified)
	for _, e := range first {
		notified[e.ID] = struct{}{}
	}

	second := UpcomingEvents(sessionEvents, now, notified)
	if len(second) != 0 {
		t.Errorf("Expected second call to return nothing, got %v", second)
	}
}

func TestCreateMessage(t *testing.T) {
	got := CreateMessage(sessionEvents[0])
	want := "5분 후 이벤트 1 일정이 시작됩니다."
	if got != want {
		t.Errorf("CreateMessage = %q, want %q", got, want)
	}
}

func TestSessionTick(t *testing.T) {
	source := &MockEventSource{events: sessionEvents}
	publisher := &MockPublisher{}
	session := NewSession(nil, source, publisher, slog.Default())

	session.Tick(at("2024-07-01T14:29:00"))

	notifications := session.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].EventID != "1" {
		t.Errorf("Expected notification for event 1, got %q", notifications[0].EventID)
	}
	if notifications[0].Message != "5분 후 이벤트 1 일정이 시작됩니다." {
		t.Errorf("Unexpected message %q", notifications[0].Message)
	}

	if len(publisher.published) != 1 {
		t.Errorf("Expected 1 published reminder, got %d", len(publisher.published))
	}
}

func TestSessionTickDoesNotDuplicate(t *testing.T) {
	source := &MockEventSource{events: sessionEvents}
	session := NewSession(nil, source, nil, slog.Default())

	session.Tick(at("2024-07-01T14:29:00"))
	session.Tick(at("2024-07-01T14:29:01"))

	if got := session.Notifications(); len(got) != 1 {
		t.Errorf("Expected 1 notification after two ticks, got %d", len(got))
	}
}

func TestSessionRemove(t *testing.T) {
	source := &MockEventSource{events: sessionEvents}
	session := NewSession(nil, source, nil, slog.Default())

	session.Tick(at("2024-07-01T14:29:00"))
	if got := session.Notifications(); len(got) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(got))
	}

	session.Remove(0)
	if got := session.Notifications(); len(got) != 0 {
		t.Errorf("Expected empty list after removal, got %v", got)
	}

	// A dismissed reminder must not reappear on the next tick.
	session.Tick(at("2024-07-01T14:29:30"))
	if got := session.Notifications(); len(got) != 0 {
		t.Errorf("Expected dismissed reminder to stay gone, got %v", got)
	}

	// Out-of-range indexes are ignored.
	session.Remove(5)
	session.Remove(-1)
}

func TestSessionRemoveKeepsOrder(t *testing.T) {
	events := []models.Event{
		{ID: "a", Title: "A", Date: "2024-07-01", StartTime: "14:30", NotificationTime: 10},
		{ID: "b", Title: "B", Date: "2024-07-01", StartTime: "14:35", NotificationTime: 10},
		{ID: "c", Title: "C", Date: "2024-07-01", StartTime: "14:40", NotificationTime: 20},
	}
	source := &MockEventSource{events: events}
	session := NewSession(nil, source, nil, slog.Default())

	session.Tick(at("2024-07-01T14:29:00"))
	if got := session.Notifications(); len(got) != 3 {
		t.Fatalf("Expected 3 notifications, got %d", len(got))
	}

	session.Remove(1)
	got := session.Notifications()
	if len(got) != 2 || got[0].EventID != "a" || got[1].EventID != "c" {
		t.Errorf("Expected [a c] after removing index 1, got %v", got)
	}
}

func TestSessionSourceError(t *testing.T) {
	source := &MockEventSource{err: context.DeadlineExceeded}
	session := NewSession(nil, source, nil, slog.Default())

	session.Tick(at("2024-07-01T14:29:00"))
	if got := session.Notifications(); len(got) != 0 {
		t.Errorf("Expected no notifications on fetch error, got %v", got)
	}
}

func TestSessionStartStop(t *testing.T) {
	source := &MockEventSource{events: []models.Event{}}
	session := NewSession(&Config{TickInterval: 10 * time.Millisecond}, source, nil, slog.Default())

	if err := session.Start(); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if err := session.Start(); err == nil {
		t.Error("Expected second start to fail")
	}

	time.Sleep(30 * time.Millisecond)

	session.Stop()
	// Stopping twice is a no-op.
	session.Stop()
}
