// Package router assembles the HTTP surface of the planner.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academic-planner-api/api/swagger"
	"github.com/noah-isme/academic-planner-api/internal/handler"
	"github.com/noah-isme/academic-planner-api/internal/middleware"
	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/config"
	"github.com/noah-isme/academic-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academic-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academic-planner-api/pkg/middleware/requestid"
)

// Services carries everything the handlers call into.
type Services struct {
	Terms       *service.TermService
	Courses     *service.CourseService
	Assignments *service.AssignmentService
	Events      *service.EventService
	Dashboard   *service.DashboardService
	Calendar    *service.CalendarService
	Export      *service.ExportService
	Cache       *service.CacheService
	Metrics     *service.MetricsService
}

// New builds the gin engine with the middleware chain and every route.
func New(cfg *config.Config, svcs Services, store handler.Pinger, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.Metrics, "/metrics"))

	health := handler.NewHealthHandler(store, cfg.StoreDriver, svcs.Cache, svcs.Metrics, logr)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", health.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Identity(cfg.DemoUser))

	writes := func(resource string) gin.HandlerFunc {
		return middleware.InvalidateOnWrite(svcs.Cache, svcs.Metrics, resource, logr)
	}

	terms := handler.NewTermHandler(svcs.Terms, logr)
	termRoutes := api.Group("/terms", writes("terms"))
	termRoutes.GET("", terms.List)
	termRoutes.POST("", terms.Create)
	termRoutes.GET("/:id", terms.Get)
	termRoutes.PUT("/:id", terms.Update)
	termRoutes.DELETE("/:id", terms.Delete)

	courses := handler.NewCourseHandler(svcs.Courses, logr)
	courseRoutes := api.Group("/courses", writes("courses"))
	courseRoutes.GET("", courses.List)
	courseRoutes.POST("", courses.Create)
	courseRoutes.GET("/:id", courses.Get)
	courseRoutes.PUT("/:id", courses.Update)
	courseRoutes.DELETE("/:id", courses.Delete)

	assignments := handler.NewAssignmentHandler(svcs.Assignments, logr)
	exports := handler.NewExportHandler(svcs.Export, logr)
	assignmentRoutes := api.Group("/assignments", writes("assignments"))
	assignmentRoutes.GET("", assignments.List)
	assignmentRoutes.POST("", assignments.Create)
	assignmentRoutes.GET("/export", exports.Assignments)
	assignmentRoutes.GET("/:id", assignments.Get)
	assignmentRoutes.PUT("/:id", assignments.Update)
	assignmentRoutes.DELETE("/:id", assignments.Delete)

	events := handler.NewEventHandler(svcs.Events, logr)
	eventRoutes := api.Group("/events", writes("events"))
	eventRoutes.GET("", events.List)
	eventRoutes.POST("", events.Create)
	eventRoutes.GET("/:id", events.Get)
	eventRoutes.PUT("/:id", events.Update)
	eventRoutes.DELETE("/:id", events.Delete)

	dashboard := handler.NewDashboardHandler(svcs.Dashboard, svcs.Calendar, logr)
	api.GET("/dashboard", dashboard.Summary)
	api.GET("/calendar", dashboard.Calendar)

	return r
}
