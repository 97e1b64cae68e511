package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/service"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
	"github.com/noah-isme/academic-planner-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, user models.UserContext) ([]models.EventDetail, error)
	Get(ctx context.Context, user models.UserContext, id string) (*models.EventDetail, error)
	Create(ctx context.Context, user models.UserContext, req service.EventRequest) (*models.EventDetail, error)
	Update(ctx context.Context, user models.UserContext, id string, req service.EventRequest) (*models.EventDetail, error)
	Delete(ctx context.Context, user models.UserContext, id string) error
}

// EventHandler exposes event endpoints.
type EventHandler struct {
	service eventService
	logger  *zap.Logger
}

// NewEventHandler constructs an event handler.
func NewEventHandler(svc eventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{service: svc, logger: loggerOrNop(logger)}
}

// List godoc
// @Summary List events
// @Description Events of the caller ordered by start date, each with its term
// @Tags Events
// @Produce json
// @Success 200 {array} models.EventDetail
// @Failure 500 {object} response.ErrorBody
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "event.list")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, "event.list", "", err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.EventDetail
// @Failure 404 {object} response.ErrorBody
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "event.get")
	if !ok {
		return
	}
	id := c.Param("id")
	item, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.logger, "event.get", id, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.EventRequest true "Event payload"
// @Success 201 {object} models.EventDetail
// @Failure 400 {object} response.ErrorBody
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "event.create")
	if !ok {
		return
	}
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "event.create", "", appErrors.Internal(err, "Failed to create event"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "event.create", "", err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.EventRequest true "Event payload"
// @Success 200 {object} models.EventDetail
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "event.update")
	if !ok {
		return
	}
	id := c.Param("id")
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "event.update", id, appErrors.Internal(err, "Failed to update event"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, h.logger, "event.update", id, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "event.delete")
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.logger, "event.delete", id, err)
		return
	}
	response.Message(c, "Event deleted successfully")
}
