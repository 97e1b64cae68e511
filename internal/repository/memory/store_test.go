package memory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-planner-api/internal/models"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	store                        *Store
	term, otherTerm              models.Term
	course, otherCourse          models.Course
	inCourse, termWide, elsewhere models.Assignment
	event                        models.Event
}

func seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{store: NewStore()}
	now := time.Now().UTC()

	f.term = models.Term{Name: "Fall", StartDate: now, EndDate: now.AddDate(0, 3, 0), UserID: "u1"}
	f.otherTerm = models.Term{Name: "Spring", StartDate: now.AddDate(0, 4, 0), EndDate: now.AddDate(0, 7, 0), UserID: "u1"}
	require.NoError(t, f.store.Terms().Create(ctx, &f.term))
	require.NoError(t, f.store.Terms().Create(ctx, &f.otherTerm))

	f.course = models.Course{Name: "CS101", TermID: f.term.ID, UserID: "u1"}
	f.otherCourse = models.Course{Name: "BIO110", TermID: f.term.ID, UserID: "u1"}
	require.NoError(t, f.store.Courses().Create(ctx, &f.course))
	require.NoError(t, f.store.Courses().Create(ctx, &f.otherCourse))

	f.inCourse = models.Assignment{Title: "HW1", DueDate: now, CourseID: strPtr(f.course.ID), TermID: f.term.ID, UserID: "u1"}
	f.termWide = models.Assignment{Title: "Reading", DueDate: now.Add(time.Hour), TermID: f.term.ID, UserID: "u1"}
	f.elsewhere = models.Assignment{Title: "Lab", DueDate: now.Add(2 * time.Hour), CourseID: strPtr(f.otherCourse.ID), TermID: f.term.ID, UserID: "u1"}
	for _, a := range []*models.Assignment{&f.inCourse, &f.termWide, &f.elsewhere} {
		require.NoError(t, f.store.Assignments().Create(ctx, a))
	}

	f.event = models.Event{Title: "Midterm", StartDate: now, EndDate: now, Type: models.EventTypeExam, TermID: f.term.ID, UserID: "u1"}
	require.NoError(t, f.store.Events().Create(ctx, &f.event))
	return f
}

func TestTermListOrdersByStartDesc(t *testing.T) {
	f := seed(t)
	terms, err := f.store.Terms().List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "Spring", terms[0].Name)

	none, err := f.store.Terms().List(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCourseListOrdersByName(t *testing.T) {
	f := seed(t)
	courses, err := f.store.Courses().List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "BIO110", courses[0].Name)
}

func TestDeleteTermCascadesCompletely(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	require.NoError(t, f.store.Terms().Delete(ctx, f.term.ID))

	courses, _ := f.store.Courses().ListByTermIDs(ctx, []string{f.term.ID})
	assignments, _ := f.store.Assignments().ListByTermIDs(ctx, []string{f.term.ID})
	events, _ := f.store.Events().ListByTermIDs(ctx, []string{f.term.ID})
	assert.Empty(t, courses)
	assert.Empty(t, assignments)
	assert.Empty(t, events)

	_, err := f.store.Terms().FindByID(ctx, f.otherTerm.ID)
	assert.NoError(t, err)
}

func TestDeleteCourseOnlyRemovesItsAssignments(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	require.NoError(t, f.store.Courses().Delete(ctx, f.course.ID))

	_, err := f.store.Assignments().FindByID(ctx, f.inCourse.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = f.store.Assignments().FindByID(ctx, f.termWide.ID)
	assert.NoError(t, err)
	_, err = f.store.Assignments().FindByID(ctx, f.elsewhere.ID)
	assert.NoError(t, err)
}

func TestMissingIDsReturnNoRows(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.ErrorIs(t, s.Terms().Delete(ctx, "nope"), sql.ErrNoRows)
	assert.ErrorIs(t, s.Courses().Update(ctx, &models.Course{ID: "nope"}), sql.ErrNoRows)
	assert.ErrorIs(t, s.Events().Delete(ctx, "nope"), sql.ErrNoRows)
	_, err := s.Users().FindByID(ctx, "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserCreateIsIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u1", Email: "a@example.com", Name: "A"}))
	require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u1", Email: "b@example.com", Name: "B"}))

	user, err := s.Users().FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestListsBreakTiesDeterministically(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	due := time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC)
	created := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

	early := models.Assignment{ID: "zz-first", Title: "Created earlier", DueDate: due, TermID: "t1", UserID: "u1", CreatedAt: created.Add(-time.Hour)}
	require.NoError(t, store.Assignments().Create(ctx, &early))
	for _, id := range []string{"h", "c", "f", "a", "g", "b", "e", "d"} {
		a := models.Assignment{ID: id, Title: "HW " + id, DueDate: due, TermID: "t1", UserID: "u1", CreatedAt: created}
		require.NoError(t, store.Assignments().Create(ctx, &a))

		e := models.Event{ID: id, Title: "Event " + id, StartDate: due, EndDate: due, TermID: "t1", UserID: "u1", CreatedAt: created}
		require.NoError(t, store.Events().Create(ctx, &e))
	}

	ids := func(list []models.Assignment) []string {
		out := make([]string, len(list))
		for i, a := range list {
			out[i] = a.ID
		}
		return out
	}
	want := []string{"zz-first", "a", "b", "c", "d", "e", "f", "g", "h"}
	for i := 0; i < 20; i++ {
		assignments, err := store.Assignments().List(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, want, ids(assignments))

		events, err := store.Events().ListByTermIDs(ctx, []string{"t1"})
		require.NoError(t, err)
		require.Len(t, events, 8)
		assert.Equal(t, "a", events[0].ID)
		assert.Equal(t, "h", events[7].ID)
	}
}
