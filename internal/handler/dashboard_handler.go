package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/dto"
	"github.com/noah-isme/academic-planner-api/internal/middleware"
	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, user models.UserContext) (*dto.DashboardResponse, bool, error)
}

type calendarService interface {
	Month(ctx context.Context, user models.UserContext, req service.CalendarRequest) (*dto.CalendarResponse, bool, error)
}

// DashboardHandler serves the aggregated planner views.
type DashboardHandler struct {
	dashboard dashboardService
	calendar  calendarService
	logger    *zap.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard dashboardService, calendar calendarService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, calendar: calendar, logger: loggerOrNop(logger)}
}

// Summary godoc
// @Summary Planner dashboard
// @Description Counters, current term and the next upcoming assignments and events
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "dashboard.summary")
	if !ok {
		return
	}
	resp, hit, err := h.dashboard.Summary(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, "dashboard.summary", "", err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, resp)
}

// Calendar godoc
// @Summary Month calendar
// @Description Assignments due and events starting on each day of the month
// @Tags Dashboard
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param termId query string false "Restrict to one term"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} response.ErrorBody
// @Router /calendar [get]
func (h *DashboardHandler) Calendar(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "calendar.month")
	if !ok {
		return
	}
	req := service.CalendarRequest{Month: c.Query("month"), TermID: c.Query("termId")}
	resp, hit, err := h.calendar.Month(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "calendar.month", req.TermID, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, resp)
}
