package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-planner-api/internal/models"
)

func TestAssignmentList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	due := time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "description", "due_date", "priority", "status", "course_id", "term_id", "user_id", "created_at", "updated_at"}).
		AddRow("a1", "HW1", nil, due, 2, "IN_PROGRESS", "c1", "t1", "u1", due, due).
		AddRow("a2", "Reading", "ch. 1-3", due.Add(time.Hour), 1, "PENDING", nil, "t1", "u1", due, due)
	mock.ExpectQuery(regexp.QuoteMeta("FROM assignments WHERE user_id = $1 ORDER BY due_date ASC, created_at ASC, id ASC")).
		WithArgs("u1").
		WillReturnRows(rows)

	assignments, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, models.AssignmentStatusInProgress, assignments[0].Status)
	require.NotNil(t, assignments[0].CourseID)
	assert.Equal(t, "c1", *assignments[0].CourseID)
	assert.Nil(t, assignments[1].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentUpdateUnknownID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("UPDATE assignments SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Assignment{ID: "missing", Status: models.AssignmentStatusPending})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id = $1")).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
