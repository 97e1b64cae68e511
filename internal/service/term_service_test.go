package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/timeline"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

func TestTermCreateRequiresName(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.terms.Create(ctx, demoUser, TermRequest{Name: "  ", StartDate: "2024-09-01", EndDate: "2024-12-15"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "Missing required fields: name", appErrors.FromError(err).Message)

	terms, err := s.terms.List(ctx, demoUser)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestTermCreateEnsuresUser(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall 2024", "2024-09-01", "2024-12-15")

	assert.NotEmpty(t, term.ID)
	assert.Equal(t, demoUser.UserID, term.UserID)
	assert.Empty(t, term.Courses)

	user, err := s.store.Users().FindByID(context.Background(), demoUser.UserID)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", user.Email)
}

func TestTermDates(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.terms.Create(ctx, demoUser, TermRequest{Name: "Bad", StartDate: "2024-12-15", EndDate: "2024-09-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = s.terms.Create(ctx, demoUser, TermRequest{Name: "Bad", StartDate: "soon", EndDate: "2024-09-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "startDate must be an ISO-8601 date", appErrors.FromError(err).Message)

	term, err := s.terms.Create(ctx, demoUser, TermRequest{Name: "Single day", StartDate: "2024-09-01", EndDate: "2024-09-01"})
	require.NoError(t, err)
	assert.True(t, term.StartDate.Equal(term.EndDate))
}

func TestTermListNestsChildrenLatestFirst(t *testing.T) {
	s := newServices()
	fall := s.createTerm(t, demoUser, "Fall 2024", "2024-09-01", "2024-12-15")
	spring := s.createTerm(t, demoUser, "Spring 2025", "2025-01-15", "2025-05-01")
	s.createTerm(t, otherUser, "Not mine", "2025-09-01", "2025-12-15")
	course := s.createCourse(t, "CS101", fall.ID)
	s.createAssignment(t, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10T23:59:00Z", TermID: fall.ID, CourseID: strPtr(course.ID)})
	_, err := s.events.Create(context.Background(), demoUser, EventRequest{Title: "Midterm", StartDate: "2024-10-15T09:00:00Z", EndDate: "2024-10-15T11:00:00Z", TermID: fall.ID})
	require.NoError(t, err)

	terms, err := s.terms.List(context.Background(), demoUser)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, spring.ID, terms[0].ID)
	assert.Empty(t, terms[0].Courses)
	assert.Equal(t, fall.ID, terms[1].ID)
	assert.Len(t, terms[1].Courses, 1)
	assert.Len(t, terms[1].Assignments, 1)
	assert.Len(t, terms[1].Events, 1)
}

func TestTermOwnershipHidesForeignRecords(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	term := s.createTerm(t, otherUser, "Theirs", "2024-09-01", "2024-12-15")

	_, err := s.terms.Get(ctx, demoUser, term.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = s.terms.Update(ctx, demoUser, term.ID, TermRequest{Name: "Mine now", StartDate: "2024-09-01", EndDate: "2024-12-15"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, s.terms.Delete(ctx, demoUser, term.ID), appErrors.ErrNotFound)
}

func TestTermUpdateAndDelete(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	course := s.createCourse(t, "CS101", term.ID)
	s.createAssignment(t, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", TermID: term.ID, CourseID: strPtr(course.ID)})

	updated, err := s.terms.Update(ctx, demoUser, term.ID, TermRequest{Name: "Fall 2024", StartDate: "2024-09-02", EndDate: "2024-12-20"})
	require.NoError(t, err)
	assert.Equal(t, "Fall 2024", updated.Name)
	assert.Len(t, updated.Courses, 1)

	require.NoError(t, s.terms.Delete(ctx, demoUser, term.ID))
	_, err = s.courses.Get(ctx, demoUser, course.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Course not found", appErrors.FromError(err).Message)

	assert.ErrorIs(t, s.terms.Delete(ctx, demoUser, term.ID), appErrors.ErrNotFound)
	_, err = s.terms.Update(ctx, demoUser, "missing", TermRequest{Name: "x", StartDate: "2024-09-01", EndDate: "2024-09-02"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTermStoreFailuresAreInternal(t *testing.T) {
	repos, _ := newRepos()
	repos.Terms = failingTerms{termRepository: repos.Terms}
	svc := NewTermService(repos, nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.List(ctx, demoUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, "Failed to fetch terms", appErrors.FromError(err).Message)

	err = svc.Delete(ctx, demoUser, "t1")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestTermPhaseFromService(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	assert.Equal(t, timeline.PhaseCurrent, term.Phase(term.StartDate))
	assert.Equal(t, timeline.PhaseCurrent, term.Phase(term.EndDate))
	assert.Equal(t, timeline.PhasePast, term.Phase(term.EndDate.AddDate(0, 0, 1)))
}
