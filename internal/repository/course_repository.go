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

const courseColumns = `id, name, code, instructor, description, credits, term_id, user_id, created_at, updated_at`

// CourseRepository persists courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns the owner's courses ordered by name.
func (r *CourseRepository) List(ctx context.Context, userID string) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE user_id = $1 ORDER BY name ASC, created_at ASC, id ASC`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByIDs loads the referenced courses.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	return r.selectAny(ctx, "id", ids)
}

// ListByTermIDs loads every course of the given terms ordered by name.
func (r *CourseRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Course, error) {
	return r.selectAny(ctx, "term_id", termIDs)
}

func (r *CourseRepository) selectAny(ctx context.Context, column string, ids []string) ([]models.Course, error) {
	courses := []models.Course{}
	if len(ids) == 0 {
		return courses, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE %s = ANY($1) ORDER BY name ASC, created_at ASC, id ASC`, courseColumns, column)
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list courses by %s: %w", column, err)
	}
	return courses, nil
}

// FindByID fetches a course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, name, code, instructor, description, credits, term_id, user_id, created_at, updated_at)
VALUES (:id, :name, :code, :instructor, :description, :credits, :term_id, :user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies a course. sql.ErrNoRows is returned when the id is unknown.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, code = :code, instructor = :instructor, description = :description,
credits = :credits, term_id = :term_id, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the course and the assignments that reference it atomically.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return deleteCascade(ctx, r.db, id,
		cascadeStep{label: "delete course assignments", query: `DELETE FROM assignments WHERE course_id = $1`},
		cascadeStep{label: "delete course", query: `DELETE FROM courses WHERE id = $1`},
	)
}
