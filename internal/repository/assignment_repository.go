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

const assignmentColumns = `id, title, description, due_date, priority, status, course_id, term_id, user_id, created_at, updated_at`

// AssignmentRepository persists assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns the owner's assignments, earliest due first.
func (r *AssignmentRepository) List(ctx context.Context, userID string) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE user_id = $1 ORDER BY due_date ASC, created_at ASC, id ASC`
	assignments := []models.Assignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, userID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByTermIDs loads the assignments of the given terms.
func (r *AssignmentRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Assignment, error) {
	return r.selectAny(ctx, "term_id", termIDs)
}

// ListByCourseIDs loads the assignments of the given courses.
func (r *AssignmentRepository) ListByCourseIDs(ctx context.Context, courseIDs []string) ([]models.Assignment, error) {
	return r.selectAny(ctx, "course_id", courseIDs)
}

func (r *AssignmentRepository) selectAny(ctx context.Context, column string, ids []string) ([]models.Assignment, error) {
	assignments := []models.Assignment{}
	if len(ids) == 0 {
		return assignments, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE %s = ANY($1) ORDER BY due_date ASC, created_at ASC, id ASC`, assignmentColumns, column)
	if err := r.db.SelectContext(ctx, &assignments, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list assignments by %s: %w", column, err)
	}
	return assignments, nil
}

// FindByID fetches an assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts an assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	const query = `INSERT INTO assignments (id, title, description, due_date, priority, status, course_id, term_id, user_id, created_at, updated_at)
VALUES (:id, :title, :description, :due_date, :priority, :status, :course_id, :term_id, :user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an assignment. Concurrent updates are last-write-wins.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET title = :title, description = :description, due_date = :due_date, priority = :priority,
status = :status, course_id = :course_id, term_id = :term_id, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, assignment)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return requireAffected(res)
}
