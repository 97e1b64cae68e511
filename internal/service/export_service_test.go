package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

func TestExportAssignmentsCSV(t *testing.T) {
	s := seedPlanner(t)
	metrics := NewMetricsService()
	svc := NewExportService(NewSnapshotService(s.repos, nil, nil, 0, nil), metrics, nil)
	svc.now = fixedClock(plannerNow)

	file, err := svc.Assignments(context.Background(), demoUser, ExportRequest{TermID: s.fall.ID})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "assignments-20241001-120000.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Title,Course,Term,Due Date,Priority,Status,Overdue", lines[0])
	assert.Equal(t, "HW1,CS101,Fall 2024,2024-09-10T23:59:00Z,Low,PENDING,true", lines[1])
	assert.Equal(t, "HW2,,Fall 2024,2024-09-20T23:59:00Z,Low,COMPLETED,false", lines[2])
}

func TestExportAssignmentsPDF(t *testing.T) {
	s := seedPlanner(t)
	svc := NewExportService(NewSnapshotService(s.repos, nil, nil, 0, nil), nil, nil)

	file, err := svc.Assignments(context.Background(), demoUser, ExportRequest{Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestExportRejectsUnknownFormatAndTerm(t *testing.T) {
	s := seedPlanner(t)
	svc := NewExportService(NewSnapshotService(s.repos, nil, nil, 0, nil), nil, nil)
	ctx := context.Background()

	_, err := svc.Assignments(ctx, demoUser, ExportRequest{Format: "xlsx"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Assignments(ctx, demoUser, ExportRequest{TermID: "ghost"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
