package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/dto"
	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/timeline"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

const monthLayout = "2006-01"

// CalendarRequest selects the month and optional term.
type CalendarRequest struct {
	Month  string
	TermID string
}

// CalendarServiceConfig tunes the month view.
type CalendarServiceConfig struct {
	Timezone      string
	UpcomingLimit int
}

// CalendarService buckets assignments and events into the days of a month.
type CalendarService struct {
	snapshots snapshotLoader
	location  *time.Location
	limit     int
	logger    *zap.Logger
	now       func() time.Time
}

// NewCalendarService creates a calendar service. An unknown timezone falls back to UTC.
func NewCalendarService(snapshots snapshotLoader, cfg CalendarServiceConfig, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		if loaded, err := time.LoadLocation(cfg.Timezone); err == nil {
			loc = loaded
		} else {
			logger.Warn("unknown calendar timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		}
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 5
	}
	return &CalendarService{snapshots: snapshots, location: loc, limit: cfg.UpcomingLimit, logger: logger, now: time.Now}
}

// Month returns every day of the requested month with what is due or starting on it.
func (s *CalendarService) Month(ctx context.Context, user models.UserContext, req CalendarRequest) (*dto.CalendarResponse, bool, error) {
	now := s.now()
	first, err := s.monthStart(strings.TrimSpace(req.Month), now)
	if err != nil {
		return nil, false, err
	}

	snapshot, hit, err := s.snapshots.Load(ctx, user)
	if err != nil {
		return nil, false, err
	}
	view := newPlannerView(snapshot, now.UTC())

	termID := strings.TrimSpace(req.TermID)
	keepAssignment := func(a models.Assignment) bool { return termID == "" || a.TermID == termID }
	keepEvent := func(e models.Event) bool { return termID == "" || e.TermID == termID }

	resp := &dto.CalendarResponse{
		Month:               first.Format(monthLayout),
		Timezone:            s.location.String(),
		UpcomingAssignments: view.upcomingAssignments(keepAssignment, s.limit),
		UpcomingEvents:      view.upcomingEvents(keepEvent, s.limit),
	}
	if termID != "" {
		resp.TermID = &termID
	}

	index := make(map[string]int)
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		key := timeline.DayKey(day, s.location)
		index[key] = len(resp.Days)
		resp.Days = append(resp.Days, dto.CalendarDay{Date: key, Assignments: []dto.AssignmentView{}, Events: []dto.EventView{}})
	}

	for _, a := range snapshot.Assignments {
		if !keepAssignment(a) {
			continue
		}
		if i, ok := index[timeline.DayKey(a.DueDate, s.location)]; ok {
			resp.Days[i].Assignments = append(resp.Days[i].Assignments, view.assignment(a))
		}
	}
	for _, e := range snapshot.Events {
		if !keepEvent(e) {
			continue
		}
		if i, ok := index[timeline.DayKey(e.StartDate, s.location)]; ok {
			resp.Days[i].Events = append(resp.Days[i].Events, view.event(e))
		}
	}
	return resp, hit, nil
}

func (s *CalendarService) monthStart(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		local := now.In(s.location)
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.location), nil
	}
	parsed, err := time.ParseInLocation(monthLayout, raw, s.location)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "month must use the YYYY-MM format")
	}
	return parsed, nil
}
