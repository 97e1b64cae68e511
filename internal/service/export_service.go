package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/pkg/export"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportRequest selects the format and an optional term.
type ExportRequest struct {
	Format string
	TermID string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the caller's assignments as CSV or PDF.
type ExportService struct {
	snapshots snapshotLoader
	renderers map[string]tableRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(snapshots snapshotLoader, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		snapshots: snapshots,
		renderers: map[string]tableRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Assignments renders the assignment table.
func (s *ExportService) Assignments(ctx context.Context, user models.UserContext, req ExportRequest) (*ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of: csv, pdf")
	}

	snapshot, _, err := s.snapshots.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	view := newPlannerView(snapshot, now)
	termID := strings.TrimSpace(req.TermID)

	table := export.Table{
		Title:   "Assignments",
		Headers: []string{"Title", "Course", "Term", "Due Date", "Priority", "Status", "Overdue"},
		Rows:    [][]string{},
	}
	if termID != "" {
		term, ok := view.terms[termID]
		if !ok {
			return nil, notFound("Term")
		}
		table.Title = "Assignments - " + term.Name
	}
	for _, a := range snapshot.Assignments {
		if termID != "" && a.TermID != termID {
			continue
		}
		row := view.assignment(a)
		course := ""
		if row.CourseName != nil {
			course = *row.CourseName
		}
		table.Rows = append(table.Rows, []string{
			a.Title,
			course,
			row.TermName,
			a.DueDate.UTC().Format(time.RFC3339),
			priorityLabel(a.Priority),
			string(a.Status),
			strconv.FormatBool(row.IsOverdue),
		})
	}

	payload, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to render export")
	}
	s.metrics.RecordExport(format)
	return &ExportFile{
		Filename:    fmt.Sprintf("assignments-%s.%s", now.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

func priorityLabel(priority int) string {
	switch priority {
	case models.PriorityHigh:
		return "High"
	case models.PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}
