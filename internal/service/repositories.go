package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type termRepository interface {
	List(ctx context.Context, userID string) ([]models.Term, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Term, error)
	FindByID(ctx context.Context, id string) (*models.Term, error)
	Create(ctx context.Context, term *models.Term) error
	Update(ctx context.Context, term *models.Term) error
	Delete(ctx context.Context, id string) error
}

type courseRepository interface {
	List(ctx context.Context, userID string) ([]models.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Course, error)
	ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepository interface {
	List(ctx context.Context, userID string) ([]models.Assignment, error)
	ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Assignment, error)
	ListByCourseIDs(ctx context.Context, courseIDs []string) ([]models.Assignment, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

type eventRepository interface {
	List(ctx context.Context, userID string) ([]models.Event, error)
	ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// Repositories bundles the planner tables for service construction.
type Repositories struct {
	Users       userRepository
	Terms       termRepository
	Courses     courseRepository
	Assignments assignmentRepository
	Events      eventRepository
}

func notFound(entity string) error {
	return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
}

// loadOwned fetches a record and hides records owned by someone else behind NotFound.
func loadOwned[T any](ctx context.Context, user models.UserContext, entity, failure string, find func(context.Context, string) (*T, error), owner func(*T) string, id string) (*T, error) {
	record, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(entity)
		}
		return nil, appErrors.Internal(err, failure)
	}
	if !user.Owns(owner(record)) {
		return nil, notFound(entity)
	}
	return record, nil
}

func mapWriteError(err error, entity, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity)
	}
	return appErrors.Internal(err, failure)
}

func termOwner(t *models.Term) string             { return t.UserID }
func courseOwner(c *models.Course) string         { return c.UserID }
func assignmentOwner(a *models.Assignment) string { return a.UserID }
func eventOwner(e *models.Event) string           { return e.UserID }

func indexTerms(terms []models.Term) map[string]*models.Term {
	index := make(map[string]*models.Term, len(terms))
	for i := range terms {
		index[terms[i].ID] = &terms[i]
	}
	return index
}

func indexCourses(courses []models.Course) map[string]*models.Course {
	index := make(map[string]*models.Course, len(courses))
	for i := range courses {
		index[courses[i].ID] = &courses[i]
	}
	return index
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
