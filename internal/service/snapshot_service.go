package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/dto"
	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

// SnapshotService loads every stored record of a user for the read-only views, going through the cache when enabled.
type SnapshotService struct {
	repos   Repositories
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewSnapshotService constructs a snapshot loader. cache and metrics may be nil.
func NewSnapshotService(repos Repositories, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{repos: repos, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Load returns the caller's snapshot and whether it came from the cache.
func (s *SnapshotService) Load(ctx context.Context, user models.UserContext) (*dto.PlannerSnapshot, bool, error) {
	if cached, hit := s.cache.Snapshot(ctx, user.UserID); hit {
		return cached, true, nil
	}

	generation := s.cache.Generation(user.UserID)
	snapshot, err := s.load(ctx, user.UserID)
	if err != nil {
		return nil, false, appErrors.Internal(err, "Failed to load planner data")
	}
	_ = s.cache.StoreSnapshot(ctx, user.UserID, generation, snapshot, s.ttl)
	return snapshot, false, nil
}

func (s *SnapshotService) load(ctx context.Context, userID string) (*dto.PlannerSnapshot, error) {
	snapshot := &dto.PlannerSnapshot{LoadedAt: time.Now().UTC()}
	var err error

	start := time.Now()
	if snapshot.Terms, err = s.repos.Terms.List(ctx, userID); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreQuery("terms", time.Since(start))

	start = time.Now()
	if snapshot.Courses, err = s.repos.Courses.List(ctx, userID); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreQuery("courses", time.Since(start))

	start = time.Now()
	if snapshot.Assignments, err = s.repos.Assignments.List(ctx, userID); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreQuery("assignments", time.Since(start))

	start = time.Now()
	if snapshot.Events, err = s.repos.Events.List(ctx, userID); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreQuery("events", time.Since(start))
	return snapshot, nil
}

// plannerView indexes a snapshot for building derived views at a fixed instant.
type plannerView struct {
	snapshot *dto.PlannerSnapshot
	terms    map[string]*models.Term
	courses  map[string]*models.Course
	now      time.Time
}

func newPlannerView(snapshot *dto.PlannerSnapshot, now time.Time) *plannerView {
	return &plannerView{
		snapshot: snapshot,
		terms:    indexTerms(snapshot.Terms),
		courses:  indexCourses(snapshot.Courses),
		now:      now,
	}
}

func (v *plannerView) assignment(a models.Assignment) dto.AssignmentView {
	view := dto.AssignmentView{Assignment: a, IsOverdue: a.IsOverdue(v.now)}
	if term, ok := v.terms[a.TermID]; ok {
		view.TermName = term.Name
	}
	if a.CourseID != nil {
		if course, ok := v.courses[*a.CourseID]; ok {
			name := course.Name
			view.CourseName = &name
		}
	}
	return view
}

func (v *plannerView) event(e models.Event) dto.EventView {
	view := dto.EventView{Event: e, Phase: e.Phase(v.now)}
	if term, ok := v.terms[e.TermID]; ok {
		view.TermName = term.Name
	}
	return view
}

// upcomingAssignments returns the first limit non-completed assignments. The snapshot is already due-date ordered.
func (v *plannerView) upcomingAssignments(keep func(models.Assignment) bool, limit int) []dto.AssignmentView {
	out := []dto.AssignmentView{}
	for _, a := range v.snapshot.Assignments {
		if limit > 0 && len(out) == limit {
			break
		}
		if a.Status == models.AssignmentStatusCompleted || !keep(a) {
			continue
		}
		out = append(out, v.assignment(a))
	}
	return out
}

// upcomingEvents returns the first limit events starting after now. The snapshot is already start-date ordered.
func (v *plannerView) upcomingEvents(keep func(models.Event) bool, limit int) []dto.EventView {
	out := []dto.EventView{}
	for _, e := range v.snapshot.Events {
		if limit > 0 && len(out) == limit {
			break
		}
		if !e.StartDate.After(v.now) || !keep(e) {
			continue
		}
		out = append(out, v.event(e))
	}
	return out
}
