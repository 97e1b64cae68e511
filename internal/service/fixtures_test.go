package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/repository/memory"
)

var demoUser = models.UserContext{UserID: "default-user-id", Email: "demo@example.com", Name: "Demo User"}

var otherUser = models.UserContext{UserID: "someone-else", Email: "other@example.com", Name: "Other"}

var errStoreDown = errors.New("connection refused")

func newRepos() (Repositories, *memory.Store) {
	store := memory.NewStore()
	return Repositories{
		Users:       store.Users(),
		Terms:       store.Terms(),
		Courses:     store.Courses(),
		Assignments: store.Assignments(),
		Events:      store.Events(),
	}, store
}

type services struct {
	store       *memory.Store
	repos       Repositories
	terms       *TermService
	courses     *CourseService
	assignments *AssignmentService
	events      *EventService
}

func newServices() *services {
	repos, store := newRepos()
	return &services{
		store:       store,
		repos:       repos,
		terms:       NewTermService(repos, nil, nil, nil),
		courses:     NewCourseService(repos, nil, nil),
		assignments: NewAssignmentService(repos, nil, nil),
		events:      NewEventService(repos, nil, nil),
	}
}

func (s *services) createTerm(t *testing.T, user models.UserContext, name, start, end string) *models.TermDetail {
	t.Helper()
	term, err := s.terms.Create(context.Background(), user, TermRequest{Name: name, StartDate: start, EndDate: end})
	require.NoError(t, err)
	return term
}

func (s *services) createCourse(t *testing.T, name, termID string) *models.CourseDetail {
	t.Helper()
	course, err := s.courses.Create(context.Background(), demoUser, CourseRequest{Name: name, TermID: termID})
	require.NoError(t, err)
	return course
}

func (s *services) createAssignment(t *testing.T, req AssignmentRequest) *models.AssignmentDetail {
	t.Helper()
	assignment, err := s.assignments.Create(context.Background(), demoUser, req)
	require.NoError(t, err)
	return assignment
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func strPtr(s string) *string { return &s }

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// failingTerms breaks every read so StoreError mapping can be observed.
type failingTerms struct {
	termRepository
}

func (failingTerms) List(context.Context, string) ([]models.Term, error) {
	return nil, errStoreDown
}

func (failingTerms) FindByID(context.Context, string) (*models.Term, error) {
	return nil, errStoreDown
}

func (failingTerms) Delete(context.Context, string) error {
	return errStoreDown
}
