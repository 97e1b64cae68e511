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

type assignmentService interface {
	List(ctx context.Context, user models.UserContext) ([]models.AssignmentDetail, error)
	Get(ctx context.Context, user models.UserContext, id string) (*models.AssignmentDetail, error)
	Create(ctx context.Context, user models.UserContext, req service.AssignmentRequest) (*models.AssignmentDetail, error)
	Update(ctx context.Context, user models.UserContext, id string, req service.AssignmentRequest) (*models.AssignmentDetail, error)
	Delete(ctx context.Context, user models.UserContext, id string) error
}

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	service assignmentService
	logger  *zap.Logger
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc assignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{service: svc, logger: loggerOrNop(logger)}
}

// List godoc
// @Summary List assignments
// @Description Assignments of the caller ordered by due date, each with its term and course
// @Tags Assignments
// @Produce json
// @Success 200 {array} models.AssignmentDetail
// @Failure 500 {object} response.ErrorBody
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.list")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, "assignment.list", "", err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.AssignmentDetail
// @Failure 404 {object} response.ErrorBody
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.get")
	if !ok {
		return
	}
	id := c.Param("id")
	item, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.logger, "assignment.get", id, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 201 {object} models.AssignmentDetail
// @Failure 400 {object} response.ErrorBody
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.create")
	if !ok {
		return
	}
	var req service.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "assignment.create", "", appErrors.Internal(err, "Failed to create assignment"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "assignment.create", "", err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 200 {object} models.AssignmentDetail
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.update")
	if !ok {
		return
	}
	id := c.Param("id")
	var req service.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "assignment.update", id, appErrors.Internal(err, "Failed to update assignment"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, h.logger, "assignment.update", id, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.delete")
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.logger, "assignment.delete", id, err)
		return
	}
	response.Message(c, "Assignment deleted successfully")
}
