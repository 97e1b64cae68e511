package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// EventRequest is the payload for creating and replacing events.
type EventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Location    *string `json:"location"`
	Type        string  `json:"type" validate:"omitempty,oneof=GENERAL EXAM PROJECT MEETING HOLIDAY"`
	TermID      string  `json:"termId" validate:"required"`
}

// EventService orchestrates calendar event workflows.
type EventService struct {
	repos     Repositories
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService creates an event service.
func NewEventService(repos Repositories, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repos: repos, validator: validate, logger: logger}
}

// List returns the caller's events ordered by start date, each with its term.
func (s *EventService) List(ctx context.Context, user models.UserContext) ([]models.EventDetail, error) {
	events, err := s.repos.Events.List(ctx, user.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch events")
	}
	details, err := hydrateEvents(ctx, s.repos, events)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch events")
	}
	return details, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, user models.UserContext, id string) (*models.EventDetail, error) {
	event, err := loadOwned(ctx, user, "Event", "Failed to fetch event", s.repos.Events.FindByID, eventOwner, id)
	if err != nil {
		return nil, err
	}
	details, err := hydrateEvents(ctx, s.repos, []models.Event{*event})
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to fetch event")
	}
	return &details[0], nil
}

// Create stores an event. Type defaults to GENERAL.
func (s *EventService) Create(ctx context.Context, user models.UserContext, req EventRequest) (*models.EventDetail, error) {
	event := &models.Event{UserID: user.UserID, Type: models.EventTypeGeneral}
	term, err := s.apply(ctx, user, event, req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Events.Create(ctx, event); err != nil {
		return nil, appErrors.Internal(err, "Failed to create event")
	}
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("term_id", event.TermID))
	return &models.EventDetail{Event: *event, Term: term}, nil
}

// Update replaces the event fields. An omitted type keeps the stored one.
func (s *EventService) Update(ctx context.Context, user models.UserContext, id string, req EventRequest) (*models.EventDetail, error) {
	event, err := loadOwned(ctx, user, "Event", "Failed to update event", s.repos.Events.FindByID, eventOwner, id)
	if err != nil {
		return nil, err
	}
	term, err := s.apply(ctx, user, event, req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Events.Update(ctx, event); err != nil {
		return nil, mapWriteError(err, "Event", "Failed to update event")
	}
	return &models.EventDetail{Event: *event, Term: term}, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, user models.UserContext, id string) error {
	if _, err := loadOwned(ctx, user, "Event", "Failed to delete event", s.repos.Events.FindByID, eventOwner, id); err != nil {
		return err
	}
	if err := s.repos.Events.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Event", "Failed to delete event")
	}
	return nil
}

func (s *EventService) apply(ctx context.Context, user models.UserContext, event *models.Event, req EventRequest) (*models.Term, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.TermID = strings.TrimSpace(req.TermID)
	req.Type = strings.TrimSpace(req.Type)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	start, err := parseDateField("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalidField("endDate", "must not be before startDate")
	}
	term, err := requireTerm(ctx, s.repos.Terms, user, req.TermID)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = optionalString(req.Description)
	event.StartDate = start
	event.EndDate = end
	event.Location = optionalString(req.Location)
	if req.Type != "" {
		event.Type = models.EventType(req.Type)
	}
	event.TermID = term.ID
	return term, nil
}

func hydrateEvents(ctx context.Context, repos Repositories, events []models.Event) ([]models.EventDetail, error) {
	details := make([]models.EventDetail, len(events))
	if len(events) == 0 {
		return details, nil
	}
	termIDs := make([]string, len(events))
	for i, e := range events {
		termIDs[i] = e.TermID
	}
	terms, err := repos.Terms.ListByIDs(ctx, uniqueIDs(termIDs))
	if err != nil {
		return nil, err
	}
	index := indexTerms(terms)
	for i, e := range events {
		details[i] = models.EventDetail{Event: e, Term: index[e.TermID]}
	}
	return details, nil
}
