package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// AssignmentRequest is the payload for creating and replacing assignments.
type AssignmentRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	DueDate     string   `json:"dueDate" validate:"required"`
	Priority    LooseInt `json:"priority" swaggertype:"integer"`
	Status      string   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED OVERDUE"`
	CourseID    *string  `json:"courseId"`
	TermID      string   `json:"termId" validate:"required"`
}

// AssignmentService orchestrates assignment workflows.
type AssignmentService struct {
	repos     Repositories
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService creates an assignment service.
func NewAssignmentService(repos Repositories, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repos: repos, validator: validate, logger: logger}
}

// List returns the caller's assignments ordered by due date, each with its term and course.
func (s *AssignmentService) List(ctx context.Context, user models.UserContext) ([]models.AssignmentDetail, error) {
	assignments, err := s.repos.Assignments.List(ctx, user.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch assignments")
	}
	details, err := hydrateAssignments(ctx, s.repos, assignments)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch assignments")
	}
	return details, nil
}

// Get returns a single assignment.
func (s *AssignmentService) Get(ctx context.Context, user models.UserContext, id string) (*models.AssignmentDetail, error) {
	assignment, err := loadOwned(ctx, user, "Assignment", "Failed to fetch assignment", s.repos.Assignments.FindByID, assignmentOwner, id)
	if err != nil {
		return nil, err
	}
	details, err := hydrateAssignments(ctx, s.repos, []models.Assignment{*assignment})
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch assignment")
	}
	return &details[0], nil
}

// Create stores an assignment. Status defaults to PENDING.
func (s *AssignmentService) Create(ctx context.Context, user models.UserContext, req AssignmentRequest) (*models.AssignmentDetail, error) {
	assignment := &models.Assignment{UserID: user.UserID, Status: models.AssignmentStatusPending}
	detail, err := s.apply(ctx, user, assignment, req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Internal(err, "Failed to create assignment")
	}
	s.logger.Info("assignment created", zap.String("assignment_id", assignment.ID), zap.String("term_id", assignment.TermID))
	detail.Assignment = *assignment
	return detail, nil
}

// Update replaces the assignment fields. An omitted status keeps the stored one.
func (s *AssignmentService) Update(ctx context.Context, user models.UserContext, id string, req AssignmentRequest) (*models.AssignmentDetail, error) {
	assignment, err := loadOwned(ctx, user, "Assignment", "Failed to update assignment", s.repos.Assignments.FindByID, assignmentOwner, id)
	if err != nil {
		return nil, err
	}
	detail, err := s.apply(ctx, user, assignment, req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Assignments.Update(ctx, assignment); err != nil {
		return nil, mapWriteError(err, "Assignment", "Failed to update assignment")
	}
	detail.Assignment = *assignment
	return detail, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, user models.UserContext, id string) error {
	if _, err := loadOwned(ctx, user, "Assignment", "Failed to delete assignment", s.repos.Assignments.FindByID, assignmentOwner, id); err != nil {
		return err
	}
	if err := s.repos.Assignments.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Assignment", "Failed to delete assignment")
	}
	return nil
}

func (s *AssignmentService) apply(ctx context.Context, user models.UserContext, a *models.Assignment, req AssignmentRequest) (*models.AssignmentDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.TermID = strings.TrimSpace(req.TermID)
	req.Status = strings.TrimSpace(req.Status)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	due, err := parseDateField("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	term, err := requireTerm(ctx, s.repos.Terms, user, req.TermID)
	if err != nil {
		return nil, err
	}
	var course *models.Course
	if courseID := optionalString(req.CourseID); courseID != nil {
		course, err = loadOwned(ctx, user, "Course", "Failed to fetch course", s.repos.Courses.FindByID, courseOwner, *courseID)
		if err != nil {
			return nil, err
		}
		if course.TermID != term.ID {
			return nil, invalidField("courseId", "must belong to termId")
		}
	}

	a.Title = req.Title
	a.Description = optionalString(req.Description)
	a.DueDate = due
	a.Priority = priorityOrDefault(req.Priority)
	if req.Status != "" {
		a.Status = models.AssignmentStatus(req.Status)
	}
	a.TermID = term.ID
	a.CourseID = nil
	if course != nil {
		a.CourseID = &course.ID
	}
	return &models.AssignmentDetail{Term: term, Course: course}, nil
}

func priorityOrDefault(n LooseInt) int {
	if !n.Valid || n.Value < models.PriorityLow || n.Value > models.PriorityHigh {
		return models.PriorityLow
	}
	return n.Value
}

func hydrateAssignments(ctx context.Context, repos Repositories, assignments []models.Assignment) ([]models.AssignmentDetail, error) {
	details := make([]models.AssignmentDetail, len(assignments))
	if len(assignments) == 0 {
		return details, nil
	}
	termIDs := make([]string, 0, len(assignments))
	courseIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		termIDs = append(termIDs, a.TermID)
		if a.CourseID != nil {
			courseIDs = append(courseIDs, *a.CourseID)
		}
	}
	terms, err := repos.Terms.ListByIDs(ctx, uniqueIDs(termIDs))
	if err != nil {
		return nil, err
	}
	courses, err := repos.Courses.ListByIDs(ctx, uniqueIDs(courseIDs))
	if err != nil {
		return nil, err
	}
	termIndex := indexTerms(terms)
	courseIndex := indexCourses(courses)
	for i, a := range assignments {
		details[i] = models.AssignmentDetail{Assignment: a, Term: termIndex[a.TermID]}
		if a.CourseID != nil {
			details[i].Course = courseIndex[*a.CourseID]
		}
	}
	return details, nil
}
