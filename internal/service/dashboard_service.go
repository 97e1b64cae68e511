package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/dto"
	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/timeline"
)

type snapshotLoader interface {
	Load(ctx context.Context, user models.UserContext) (*dto.PlannerSnapshot, bool, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	UpcomingLimit int
}

// DashboardService composes the planner summary.
type DashboardService struct {
	snapshots snapshotLoader
	cfg       DashboardServiceConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(snapshots snapshotLoader, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{snapshots: snapshots, cfg: cfg, logger: logger, now: time.Now}
}

// Summary builds the dashboard. The bool reports whether the source data came from the cache.
func (s *DashboardService) Summary(ctx context.Context, user models.UserContext) (*dto.DashboardResponse, bool, error) {
	snapshot, hit, err := s.snapshots.Load(ctx, user)
	if err != nil {
		return nil, false, err
	}
	now := s.now().UTC()
	view := newPlannerView(snapshot, now)

	resp := &dto.DashboardResponse{
		GeneratedAt:         now,
		UpcomingAssignments: view.upcomingAssignments(func(models.Assignment) bool { return true }, s.cfg.UpcomingLimit),
		UpcomingEvents:      view.upcomingEvents(func(models.Event) bool { return true }, s.cfg.UpcomingLimit),
	}

	stats := &resp.Stats
	stats.TotalTerms = len(snapshot.Terms)
	stats.TotalCourses = len(snapshot.Courses)
	stats.TotalAssignments = len(snapshot.Assignments)
	for _, term := range snapshot.Terms {
		if term.Phase(now) != timeline.PhaseCurrent {
			continue
		}
		stats.CurrentTerms++
		// Terms arrive latest start first, so the first current one wins.
		if resp.CurrentTerm == nil {
			resp.CurrentTerm = &dto.TermView{Term: term, Phase: timeline.PhaseCurrent}
		}
	}
	for _, a := range snapshot.Assignments {
		if a.Status == models.AssignmentStatusCompleted {
			stats.CompletedAssignments++
		}
		if a.IsOverdue(now) {
			stats.OverdueAssignments++
		}
	}
	if stats.TotalAssignments > 0 {
		stats.CompletionRate = math.Round(float64(stats.CompletedAssignments) / float64(stats.TotalAssignments) * 100)
	}
	return resp, hit, nil
}
