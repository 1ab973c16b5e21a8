package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/minjaecode/haruplan/internal/models"
)

const (
	createEventsTableSQL = `
  CREATE TABLE IF NOT EXISTS events (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  date TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  repeat_type TEXT NOT NULL DEFAULT 'none',
  repeat_interval INTEGER NOT NULL DEFAULT 1,
  repeat_end_date TEXT NOT NULL DEFAULT '',
  notification_time INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	fetchAllEventsSQL = `SELECT id, title, date, start_time, end_time, description, location,
  category, repeat_type, repeat_interval, repeat_end_date, notification_time
  FROM events ORDER BY rowid`

	createEventSQL = `INSERT INTO events (id, title, date, start_time, end_time, description,
  location, category, repeat_type, repeat_interval, repeat_end_date, notification_time)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateEventSQL = `UPDATE events SET title = ?, date = ?, start_time = ?, end_time = ?,
  description = ?, location = ?, category = ?, repeat_type = ?, repeat_interval = ?,
  repeat_end_date = ?, notification_time = ? WHERE id = ?`

	deleteEventSQL = `DELETE FROM events WHERE id = ?`
)

// SQLiteStore persists events in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(createEventsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// FetchAll returns all stored events in insertion order.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, fetchAllEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime,
			&e.Description, &e.Location, &e.Category,
			&e.Repeat.Type, &e.Repeat.Interval, &e.Repeat.EndDate, &e.NotificationTime)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Create persists a draft event. A missing id is assigned here; this is
// the only place ids are minted.
func (s *SQLiteStore) Create(ctx context.Context, event models.Event) (models.Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Repeat.Type == "" {
		event.Repeat.Type = models.RepeatNone
	}

	_, err := s.db.ExecContext(ctx, createEventSQL,
		event.ID, event.Title, event.Date, event.StartTime, event.EndTime,
		event.Description, event.Location, event.Category,
		event.Repeat.Type, event.Repeat.Interval, event.Repeat.EndDate, event.NotificationTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// Update replaces the stored record carrying the event's id.
func (s *SQLiteStore) Update(ctx context.Context, event models.Event) error {
	result, err := s.db.ExecContext(ctx, updateEventSQL,
		event.Title, event.Date, event.StartTime, event.EndTime,
		event.Description, event.Location, event.Category,
		event.Repeat.Type, event.Repeat.Interval, event.Repeat.EndDate, event.NotificationTime,
		event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}
	return nil
}

// Delete removes the event with the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, deleteEventSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
