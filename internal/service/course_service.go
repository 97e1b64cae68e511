package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// CourseRequest is the payload for creating and replacing courses.
type CourseRequest struct {
	Name        string   `json:"name" validate:"required"`
	Code        *string  `json:"code"`
	Instructor  *string  `json:"instructor"`
	Description *string  `json:"description"`
	Credits     LooseInt `json:"credits" swaggertype:"integer"`
	TermID      string   `json:"termId" validate:"required"`
}

// CourseService orchestrates course workflows.
type CourseService struct {
	repos     Repositories
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a course service.
func NewCourseService(repos Repositories, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repos: repos, validator: validate, logger: logger}
}

// List returns the caller's courses ordered by name, each with its term and assignments.
func (s *CourseService) List(ctx context.Context, user models.UserContext) ([]models.CourseDetail, error) {
	courses, err := s.repos.Courses.List(ctx, user.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch courses")
	}
	details, err := s.hydrate(ctx, courses)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch courses")
	}
	return details, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, user models.UserContext, id string) (*models.CourseDetail, error) {
	course, err := loadOwned(ctx, user, "Course", "Failed to fetch course", s.repos.Courses.FindByID, courseOwner, id)
	if err != nil {
		return nil, err
	}
	details, err := s.hydrate(ctx, []models.Course{*course})
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch course")
	}
	return &details[0], nil
}

// Create stores a course under one of the caller's terms.
func (s *CourseService) Create(ctx context.Context, user models.UserContext, req CourseRequest) (*models.CourseDetail, error) {
	course := &models.Course{UserID: user.UserID}
	term, err := s.apply(ctx, user, course, req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Courses.Create(ctx, course); err != nil {
		return nil, appErrors.Internal(err, "Failed to create course")
	}
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("term_id", course.TermID))
	return &models.CourseDetail{Course: *course, Term: term, Assignments: []models.Assignment{}}, nil
}

// Update replaces the course fields. Omitted optional fields are cleared.
func (s *CourseService) Update(ctx context.Context, user models.UserContext, id string, req CourseRequest) (*models.CourseDetail, error) {
	course, err := loadOwned(ctx, user, "Course", "Failed to update course", s.repos.Courses.FindByID, courseOwner, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.apply(ctx, user, course, req); err != nil {
		return nil, err
	}
	if err := s.repos.Courses.Update(ctx, course); err != nil {
		return nil, mapWriteError(err, "Course", "Failed to update course")
	}
	return s.Get(ctx, user, id)
}

// Delete removes a course and the assignments referencing it.
func (s *CourseService) Delete(ctx context.Context, user models.UserContext, id string) error {
	if _, err := loadOwned(ctx, user, "Course", "Failed to delete course", s.repos.Courses.FindByID, courseOwner, id); err != nil {
		return err
	}
	if err := s.repos.Courses.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Course", "Failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

func (s *CourseService) apply(ctx context.Context, user models.UserContext, course *models.Course, req CourseRequest) (*models.Term, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.TermID = strings.TrimSpace(req.TermID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	term, err := requireTerm(ctx, s.repos.Terms, user, req.TermID)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Code = optionalString(req.Code)
	course.Instructor = optionalString(req.Instructor)
	course.Description = optionalString(req.Description)
	course.Credits = req.Credits.Ptr()
	course.TermID = term.ID
	return term, nil
}

func (s *CourseService) hydrate(ctx context.Context, courses []models.Course) ([]models.CourseDetail, error) {
	details := make([]models.CourseDetail, len(courses))
	if len(courses) == 0 {
		return details, nil
	}
	courseIDs := make([]string, len(courses))
	termIDs := make([]string, len(courses))
	byID := make(map[string]*models.CourseDetail, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
		termIDs[i] = course.TermID
		details[i] = models.CourseDetail{Course: course, Assignments: []models.Assignment{}}
		byID[course.ID] = &details[i]
	}

	terms, err := s.repos.Terms.ListByIDs(ctx, uniqueIDs(termIDs))
	if err != nil {
		return nil, err
	}
	termIndex := indexTerms(terms)
	for i := range details {
		details[i].Term = termIndex[details[i].TermID]
	}

	assignments, err := s.repos.Assignments.ListByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.CourseID == nil {
			continue
		}
		if d, ok := byID[*a.CourseID]; ok {
			d.Assignments = append(d.Assignments, a)
		}
	}
	return details, nil
}
