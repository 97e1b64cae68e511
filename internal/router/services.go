package router

import (
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/config"
)

// NewServices wires the service layer over the given repositories. cacheRepo may be nil.
func NewServices(cfg *config.Config, repos service.Repositories, cacheRepo service.CacheRepository, logr *zap.Logger) Services {
	if logr == nil {
		logr = zap.NewNop()
	}
	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)
	snapshots := service.NewSnapshotService(repos, cache, metrics, cfg.Cache.TTL, logr)
	users := service.NewUserService(repos.Users, logr)

	return Services{
		Terms:       service.NewTermService(repos, users, validate, logr),
		Courses:     service.NewCourseService(repos, validate, logr),
		Assignments: service.NewAssignmentService(repos, validate, logr),
		Events:      service.NewEventService(repos, validate, logr),
		Dashboard:   service.NewDashboardService(snapshots, service.DashboardServiceConfig{UpcomingLimit: cfg.Dashboard.UpcomingLimit}, logr),
		Calendar: service.NewCalendarService(snapshots, service.CalendarServiceConfig{
			Timezone:      cfg.Calendar.Timezone,
			UpcomingLimit: cfg.Dashboard.UpcomingLimit,
		}, logr),
		Export:  service.NewExportService(snapshots, metrics, logr),
		Cache:   cache,
		Metrics: metrics,
	}
}
