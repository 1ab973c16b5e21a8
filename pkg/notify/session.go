// Package notify runs the reminder session: a fixed-interval tick that
// checks which events have entered their lead-time window, emits one
// in-app notification per event per session, and optionally fans the
// reminder out to a publisher.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/minjaecode/haruplan/internal/models"
	"github.com/minjaecode/haruplan/pkg/overlap"
)

// EventSource supplies the events to check on each tick.
type EventSource interface {
	FetchAll(ctx context.Context) ([]models.Event, error)
}

// Publisher receives every emitted reminder, e.g. for delivery over a
// message bus. A nil publisher disables fan-out.
type Publisher interface {
	PublishReminder(ctx context.Context, notification *models.Notification) error
	Close() error
}

// Config holds the session configuration.
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() *Config {
	return &Config{TickInterval: time.Second}
}

// Session owns the live notification list and the set of event ids that
// have already been announced. Both are mutated only through the
// session's own operations and are torn down with it.
type Session struct {
	config    *Config
	source    EventSource
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu            sync.Mutex
	notifications []models.Notification
	notified      map[string]struct{}
	running       bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a reminder session. The publisher may be nil.
func NewSession(config *Config, source EventSource, publisher Publisher, logger *slog.Logger) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		config:    config,
		source:    source,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		notified:  make(map[string]struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the periodic due-window check.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("notify session is already running")
	}
	s.running = true

	s.logger.Info("Starting notify session", "tick_interval", s.config.TickInterval)

	s.wg.Add(1)
	go s.run()
	return nil
}

// Stop cancels the periodic check and waits for the tick goroutine to
// finish. The notification list and notified set are discarded with the
// session; Stop is the session's teardown.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.logger.Info("Notify session stopped")
}

func (s *Session) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}

// Tick performs a single due-window check at the given instant: every
// event inside its window whose id has not been announced yet gets a
// notification appended and its id recorded. Missed ticks need no
// catch-up; an event still inside its window fires on the next tick.
func (s *Session) Tick(now time.Time) {
	events, err := s.source.FetchAll(s.ctx)
	if err != nil {
		s.logger.Error("Failed to fetch events", "error", err)
		return
	}

	s.mu.Lock()
	due := UpcomingEvents(events, now, s.notified)
	emitted := make([]models.Notification, 0, len(due))
	for _, event := range due {
		notification := models.Notification{
			EventID: event.ID,
			Message: CreateMessage(event),
		}
		s.notifications = append(s.notifications, notification)
		s.notified[event.ID] = struct{}{}
		emitted = append(emitted, notification)
	}
	s.mu.Unlock()

	for _, notification := range emitted {
		s.logger.Info("Reminder emitted",
			"event_id", notification.EventID,
			"message", notification.Message)

		if s.publisher == nil {
			continue
		}
		if err := s.publisher.PublishReminder(s.ctx, &notification); err != nil {
			s.logger.Error("Failed to publish reminder",
				"error", err,
				"event_id", notification.EventID)
		}
	}
}

// Notifications returns a copy of the live notification list, oldest
// first.
func (s *Session) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Remove dismisses the notification at the given list position. The
// event id stays in the notified set, so a dismissed reminder does not
// reappear. Out-of-range indexes are ignored.
func (s *Session) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.notifications) {
		return
	}
	s.notifications = append(s.notifications[:index], s.notifications[index+1:]...)
}

// NotifiedIDs returns the ids announced so far in this session.
func (s *Session) NotifiedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.notified))
	for id := range s.notified {
		ids = append(ids, id)
	}
	return ids
}

// UpcomingEvents returns, in input order, every event whose start lies
// ahead of now by no more than its lead time and whose id is not in
// notified. Events at or past their start instant are excluded, as are
// events with unparsable date or start time.
func UpcomingEvents(events []models.Event, now time.Time, notified map[string]struct{}) []models.Event {
	due := []models.Event{}
	for _, event := range events {
		start := overlap.ParseDateTime(event.Date, event.StartTime)
		if start.IsZero() {
			continue
		}
		if _, seen := notified[event.ID]; seen {
			continue
		}
		untilStart := start.Sub(now)
		if untilStart > 0 && untilStart <= time.Duration(event.NotificationTime)*time.Minute {
			due = append(due, event)
		}
	}
	return due
}

// CreateMessage renders the reminder text for an event.
func CreateMessage(event models.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", event.NotificationTime, event.Title)
}
