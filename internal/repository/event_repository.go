package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academic-planner-api/internal/models"
)

const eventColumns = `id, title, description, start_date, end_date, location, type, term_id, user_id, created_at, updated_at`

// EventRepository persists planner events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns the owner's events, earliest start first.
func (r *EventRepository) List(ctx context.Context, userID string) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1 ORDER BY start_date ASC, created_at ASC, id ASC`
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListByTermIDs loads the events of the given terms.
func (r *EventRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Event, error) {
	events := []models.Event{}
	if len(termIDs) == 0 {
		return events, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE term_id = ANY($1) ORDER BY start_date ASC, created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &events, query, pq.Array(termIDs)); err != nil {
		return nil, fmt.Errorf("list events by term: %w", err)
	}
	return events, nil
}

// FindByID fetches an event.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO events (id, title, description, start_date, end_date, location, type, term_id, user_id, created_at, updated_at)
VALUES (:id, :title, :description, :start_date, :end_date, :location, :type, :term_id, :user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, description = :description, start_date = :start_date, end_date = :end_date,
location = :location, type = :type, term_id = :term_id, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(res)
}
