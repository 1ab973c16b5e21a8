// Package planner coordinates event persistence: validation, the
// overlap confirmation gate and the create-or-update decision sit here,
// between the form and the store.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minjaecode/haruplan/internal/models"
	"github.com/minjaecode/haruplan/pkg/overlap"
	"github.com/minjaecode/haruplan/pkg/retry"
	"github.com/minjaecode/haruplan/pkg/store"
)

// SaveResult reports how a save attempt ended. Exactly one of the
// outcomes applies: field errors, a pending overlap confirmation, or a
// persisted event.
type SaveResult struct {
	// FieldErrors maps field names to messages when validation failed.
	FieldErrors map[string]string

	// Overlapping holds the conflicting events when the save needs
	// user confirmation. The event was not persisted.
	Overlapping []models.Event

	// Saved is the persisted record (with id) on success.
	Saved *models.Event
}

// Planner gates writes to the event store.
type Planner struct {
	store   store.Store
	retryer *retry.Retryer
	logger  *slog.Logger
}

// New creates a planner around the given store.
func New(s store.Store, retryer *retry.Retryer, logger *slog.Logger) *Planner {
	if retryer == nil {
		retryer = retry.NewRetryer(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{store: s, retryer: retryer, logger: logger}
}

// Events returns all stored events.
func (p *Planner) Events(ctx context.Context) ([]models.Event, error) {
	return p.store.FetchAll(ctx)
}

// Save validates the event and persists it unless it conflicts with an
// existing one. On conflict the result carries the overlapping events
// and nothing is written; the caller presents them and calls SaveForce
// once the user confirms.
func (p *Planner) Save(ctx context.Context, event models.Event) (SaveResult, error) {
	if errs := event.Validate(); len(errs) > 0 {
		return SaveResult{FieldErrors: errs}, nil
	}
	if timeErrs := models.ValidateEventTimes(event.StartTime, event.EndTime); timeErrs.HasError() {
		return SaveResult{FieldErrors: map[string]string{
			"startTime": timeErrs.StartTimeError,
			"endTime":   timeErrs.EndTimeError,
		}}, nil
	}

	existing, err := p.store.FetchAll(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	if conflicts := overlap.FindOverlappingEvents(event, existing); len(conflicts) > 0 {
		p.logger.Info("Save blocked by overlapping events",
			"title", event.Title,
			"conflicts", len(conflicts))
		return SaveResult{Overlapping: conflicts}, nil
	}

	return p.SaveForce(ctx, event)
}

// SaveForce persists the event without the overlap gate, creating a
// draft or replacing the record with its id.
func (p *Planner) SaveForce(ctx context.Context, event models.Event) (SaveResult, error) {
	saved := event
	err := p.retryer.Do(ctx, func() error {
		if event.IsDraft() {
			created, err := p.store.Create(ctx, event)
			if err != nil {
				return err
			}
			saved = created
			return nil
		}
		return p.store.Update(ctx, event)
	})
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to save event: %w", err)
	}

	p.logger.Info("Event saved", "event_id", saved.ID, "title", saved.Title)
	return SaveResult{Saved: &saved}, nil
}

// Delete removes the event with the given id.
func (p *Planner) Delete(ctx context.Context, id string) error {
	err := p.retryer.Do(ctx, func() error {
		return p.store.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	p.logger.Info("Event deleted", "event_id", id)
	return nil
}
