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

type termService interface {
	List(ctx context.Context, user models.UserContext) ([]models.TermDetail, error)
	Get(ctx context.Context, user models.UserContext, id string) (*models.TermDetail, error)
	Create(ctx context.Context, user models.UserContext, req service.TermRequest) (*models.TermDetail, error)
	Update(ctx context.Context, user models.UserContext, id string, req service.TermRequest) (*models.TermDetail, error)
	Delete(ctx context.Context, user models.UserContext, id string) error
}

// TermHandler exposes term endpoints.
type TermHandler struct {
	service termService
	logger  *zap.Logger
}

// NewTermHandler constructs a term handler.
func NewTermHandler(svc termService, logger *zap.Logger) *TermHandler {
	return &TermHandler{service: svc, logger: loggerOrNop(logger)}
}

// List godoc
// @Summary List terms
// @Description Terms of the caller, latest start first, with nested courses, assignments and events
// @Tags Terms
// @Produce json
// @Success 200 {array} models.TermDetail
// @Failure 500 {object} response.ErrorBody
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "term.list")
	if !ok {
		return
	}
	terms, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, "term.list", "", err)
		return
	}
	response.OK(c, terms)
}

// Get godoc
// @Summary Get term
// @Tags Terms
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} models.TermDetail
// @Failure 404 {object} response.ErrorBody
// @Router /terms/{id} [get]
func (h *TermHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "term.get")
	if !ok {
		return
	}
	id := c.Param("id")
	term, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.logger, "term.get", id, err)
		return
	}
	response.OK(c, term)
}

// Create godoc
// @Summary Create term
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body service.TermRequest true "Term payload"
// @Success 201 {object} models.TermDetail
// @Failure 400 {object} response.ErrorBody
// @Router /terms [post]
func (h *TermHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "term.create")
	if !ok {
		return
	}
	var req service.TermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "term.create", "", appErrors.Internal(err, "Failed to create term"))
		return
	}
	term, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "term.create", "", err)
		return
	}
	response.Created(c, term)
}

// Update godoc
// @Summary Update term
// @Tags Terms
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param payload body service.TermRequest true "Term payload"
// @Success 200 {object} models.TermDetail
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /terms/{id} [put]
func (h *TermHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "term.update")
	if !ok {
		return
	}
	id := c.Param("id")
	var req service.TermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "term.update", id, appErrors.Internal(err, "Failed to update term"))
		return
	}
	term, err := h.service.Update(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, h.logger, "term.update", id, err)
		return
	}
	response.OK(c, term)
}

// Delete godoc
// @Summary Delete term
// @Description Removes the term with all of its courses, assignments and events
// @Tags Terms
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /terms/{id} [delete]
func (h *TermHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "term.delete")
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.logger, "term.delete", id, err)
		return
	}
	response.Message(c, "Term deleted successfully")
}
