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

const termColumns = `id, name, start_date, end_date, user_id, created_at, updated_at`

// TermRepository handles persistence for academic terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns the owner's terms, latest start first.
func (r *TermRepository) List(ctx context.Context, userID string) ([]models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE user_id = $1 ORDER BY start_date DESC, created_at DESC, id ASC`
	terms := []models.Term{}
	if err := r.db.SelectContext(ctx, &terms, query, userID); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// ListByIDs loads the referenced terms in one round trip.
func (r *TermRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Term, error) {
	terms := []models.Term{}
	if len(ids) == 0 {
		return terms, nil
	}
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &terms, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list terms by id: %w", err)
	}
	return terms, nil
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = $1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// Create inserts a new term record.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	if term.ID == "" {
		term.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if term.CreatedAt.IsZero() {
		term.CreatedAt = now
	}
	term.UpdatedAt = now

	const query = `INSERT INTO terms (id, name, start_date, end_date, user_id, created_at, updated_at) VALUES (:id, :name, :start_date, :end_date, :user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("create term: %w", err)
	}
	return nil
}

// Update modifies an existing term. sql.ErrNoRows is returned when the id is unknown.
func (r *TermRepository) Update(ctx context.Context, term *models.Term) error {
	term.UpdatedAt = time.Now().UTC()
	const query = `UPDATE terms SET name = :name, start_date = :start_date, end_date = :end_date, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, term)
	if err != nil {
		return fmt.Errorf("update term: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the term together with its assignments, events and courses atomically.
func (r *TermRepository) Delete(ctx context.Context, id string) error {
	return deleteCascade(ctx, r.db, id,
		cascadeStep{label: "delete term assignments", query: `DELETE FROM assignments WHERE term_id = $1`},
		cascadeStep{label: "delete term events", query: `DELETE FROM events WHERE term_id = $1`},
		cascadeStep{label: "delete term courses", query: `DELETE FROM courses WHERE term_id = $1`},
		cascadeStep{label: "delete term", query: `DELETE FROM terms WHERE id = $1`},
	)
}
