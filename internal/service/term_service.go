package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// TermRequest is the payload for creating and replacing terms.
type TermRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type userEnsurer interface {
	Ensure(ctx context.Context, user models.UserContext) error
}

// TermService orchestrates term workflows.
type TermService struct {
	repos     Repositories
	users     userEnsurer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(repos Repositories, users userEnsurer, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if users == nil {
		users = NewUserService(repos.Users, logger)
	}
	return &TermService{repos: repos, users: users, validator: validate, logger: logger}
}

// List returns the caller's terms with their courses, assignments and events.
func (s *TermService) List(ctx context.Context, user models.UserContext) ([]models.TermDetail, error) {
	terms, err := s.repos.Terms.List(ctx, user.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch terms")
	}
	details, err := s.hydrate(ctx, terms)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch terms")
	}
	return details, nil
}

// Get returns a single term with its children.
func (s *TermService) Get(ctx context.Context, user models.UserContext, id string) (*models.TermDetail, error) {
	term, err := loadOwned(ctx, user, "Term", "Failed to fetch term", s.repos.Terms.FindByID, termOwner, id)
	if err != nil {
		return nil, err
	}
	details, err := s.hydrate(ctx, []models.Term{*term})
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch term")
	}
	return &details[0], nil
}

// Create stores a term for the caller, creating the user row on first use.
func (s *TermService) Create(ctx context.Context, user models.UserContext, req TermRequest) (*models.TermDetail, error) {
	term := &models.Term{UserID: user.UserID}
	if err := s.apply(term, req); err != nil {
		return nil, err
	}
	if err := s.users.Ensure(ctx, user); err != nil {
		return nil, err
	}
	if err := s.repos.Terms.Create(ctx, term); err != nil {
		return nil, appErrors.Internal(err, "Failed to create term")
	}
	s.logger.Info("term created", zap.String("term_id", term.ID), zap.String("user_id", user.UserID))
	return &models.TermDetail{Term: *term, Courses: []models.Course{}, Assignments: []models.Assignment{}, Events: []models.Event{}}, nil
}

// Update replaces the mutable fields of a term.
func (s *TermService) Update(ctx context.Context, user models.UserContext, id string, req TermRequest) (*models.TermDetail, error) {
	term, err := loadOwned(ctx, user, "Term", "Failed to update term", s.repos.Terms.FindByID, termOwner, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(term, req); err != nil {
		return nil, err
	}
	if err := s.repos.Terms.Update(ctx, term); err != nil {
		return nil, mapWriteError(err, "Term", "Failed to update term")
	}
	return s.Get(ctx, user, id)
}

// Delete removes a term together with its courses, assignments and events.
func (s *TermService) Delete(ctx context.Context, user models.UserContext, id string) error {
	if _, err := loadOwned(ctx, user, "Term", "Failed to delete term", s.repos.Terms.FindByID, termOwner, id); err != nil {
		return err
	}
	if err := s.repos.Terms.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Term", "Failed to delete term")
	}
	s.logger.Info("term deleted", zap.String("term_id", id))
	return nil
}

func (s *TermService) apply(term *models.Term, req TermRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	start, err := parseDateField("startDate", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDateField("endDate", req.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return invalidField("endDate", "must not be before startDate")
	}
	term.Name = req.Name
	term.StartDate = start
	term.EndDate = end
	return nil
}

func (s *TermService) hydrate(ctx context.Context, terms []models.Term) ([]models.TermDetail, error) {
	details := make([]models.TermDetail, len(terms))
	if len(terms) == 0 {
		return details, nil
	}
	ids := make([]string, len(terms))
	byID := make(map[string]*models.TermDetail, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
		details[i] = models.TermDetail{Term: term, Courses: []models.Course{}, Assignments: []models.Assignment{}, Events: []models.Event{}}
		byID[term.ID] = &details[i]
	}

	courses, err := s.repos.Courses.ListByTermIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, course := range courses {
		if d, ok := byID[course.TermID]; ok {
			d.Courses = append(d.Courses, course)
		}
	}
	assignments, err := s.repos.Assignments.ListByTermIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if d, ok := byID[a.TermID]; ok {
			d.Assignments = append(d.Assignments, a)
		}
	}
	events, err := s.repos.Events.ListByTermIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if d, ok := byID[e.TermID]; ok {
			d.Events = append(d.Events, e)
		}
	}
	return details, nil
}

// requireTerm checks that termID names a term the caller owns.
func requireTerm(ctx context.Context, repo termRepository, user models.UserContext, termID string) (*models.Term, error) {
	return loadOwned(ctx, user, "Term", "Failed to fetch term", repo.FindByID, termOwner, termID)
}
