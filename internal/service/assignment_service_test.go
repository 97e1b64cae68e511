package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

func TestAssignmentCreateDefaults(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")

	req := decode[AssignmentRequest](t, `{"title":"HW1","dueDate":"2024-09-10T23:59:00Z","priority":"urgent","termId":"`+term.ID+`"}`)
	a, err := s.assignments.Create(context.Background(), demoUser, req)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, a.Priority)
	assert.Equal(t, models.AssignmentStatusPending, a.Status)
	assert.Nil(t, a.CourseID)
	assert.Nil(t, a.Course)
	require.NotNil(t, a.Term)
	assert.Equal(t, term.ID, a.Term.ID)
	assert.True(t, time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC).Equal(a.DueDate))
}

func TestAssignmentCreateWithCourseAndPriority(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	course := s.createCourse(t, "CS101", term.ID)

	req := decode[AssignmentRequest](t, `{"title":"HW1","dueDate":"2024-09-10","priority":3,"status":"IN_PROGRESS","courseId":"`+course.ID+`","termId":"`+term.ID+`"}`)
	a, err := s.assignments.Create(context.Background(), demoUser, req)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, a.Priority)
	assert.Equal(t, models.AssignmentStatusInProgress, a.Status)
	require.NotNil(t, a.Course)
	assert.Equal(t, "CS101", a.Course.Name)
}

func TestAssignmentRejectsUnknownStatusAndReferences(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	ctx := context.Background()

	_, err := s.assignments.Create(ctx, demoUser, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", Status: "DONE", TermID: term.ID})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = s.assignments.Create(ctx, demoUser, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", TermID: term.ID, CourseID: strPtr("ghost")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Course not found", appErrors.FromError(err).Message)

	_, err = s.assignments.Create(ctx, demoUser, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", TermID: "ghost"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	all, err := s.assignments.List(ctx, demoUser)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAssignmentUpdateClearsCourseAndKeepsStatus(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	course := s.createCourse(t, "CS101", term.ID)
	a := s.createAssignment(t, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", Status: "IN_PROGRESS", TermID: term.ID, CourseID: strPtr(course.ID)})

	req := decode[AssignmentRequest](t, `{"title":"HW1 v2","dueDate":"2024-09-12","courseId":null,"termId":"`+term.ID+`"}`)
	updated, err := s.assignments.Update(ctx, demoUser, a.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "HW1 v2", updated.Title)
	assert.Nil(t, updated.CourseID)
	assert.Nil(t, updated.Course)
	assert.Equal(t, models.AssignmentStatusInProgress, updated.Status)

	_, err = s.assignments.Update(ctx, demoUser, "missing", req)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAssignmentOverdueFollowsStatusUpdates(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	now := time.Now().UTC()
	term := s.createTerm(t, demoUser, "Now", now.AddDate(0, -1, 0).Format(time.RFC3339), now.AddDate(0, 1, 0).Format(time.RFC3339))
	due := now.Add(-24 * time.Hour).Format(time.RFC3339)

	a := s.createAssignment(t, AssignmentRequest{Title: "Late", DueDate: due, Status: "PENDING", TermID: term.ID})
	assert.True(t, a.IsOverdue(now))

	updated, err := s.assignments.Update(ctx, demoUser, a.ID, AssignmentRequest{Title: "Late", DueDate: due, Status: "COMPLETED", TermID: term.ID})
	require.NoError(t, err)
	assert.False(t, updated.IsOverdue(now))
}

func TestAssignmentListOrderedByDueDate(t *testing.T) {
	s := newServices()
	term := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	s.createAssignment(t, AssignmentRequest{Title: "Later", DueDate: "2024-10-01", TermID: term.ID})
	s.createAssignment(t, AssignmentRequest{Title: "Sooner", DueDate: "2024-09-05", TermID: term.ID})

	all, err := s.assignments.List(context.Background(), demoUser)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Sooner", all[0].Title)
	assert.Equal(t, "Fall", all[0].Term.Name)

	require.NoError(t, s.assignments.Delete(context.Background(), demoUser, all[0].ID))
	assert.ErrorIs(t, s.assignments.Delete(context.Background(), demoUser, all[0].ID), appErrors.ErrNotFound)
}

func TestAssignmentCourseMustShareTerm(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	fall := s.createTerm(t, demoUser, "Fall", "2024-09-01", "2024-12-15")
	spring := s.createTerm(t, demoUser, "Spring", "2025-01-15", "2025-05-01")
	course := s.createCourse(t, "CS101", fall.ID)

	_, err := s.assignments.Create(ctx, demoUser, AssignmentRequest{Title: "HW1", DueDate: "2025-02-01", TermID: spring.ID, CourseID: strPtr(course.ID)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "courseId must belong to termId", appErrors.FromError(err).Message)

	a := s.createAssignment(t, AssignmentRequest{Title: "HW1", DueDate: "2024-09-10", TermID: fall.ID, CourseID: strPtr(course.ID)})
	_, err = s.assignments.Update(ctx, demoUser, a.ID, AssignmentRequest{Title: "HW1", DueDate: "2025-02-01", TermID: spring.ID, CourseID: strPtr(course.ID)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	stored, err := s.assignments.Get(ctx, demoUser, a.ID)
	require.NoError(t, err)
	assert.Equal(t, fall.ID, stored.TermID)
}
