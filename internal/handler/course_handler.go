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

type courseService interface {
	List(ctx context.Context, user models.UserContext) ([]models.CourseDetail, error)
	Get(ctx context.Context, user models.UserContext, id string) (*models.CourseDetail, error)
	Create(ctx context.Context, user models.UserContext, req service.CourseRequest) (*models.CourseDetail, error)
	Update(ctx context.Context, user models.UserContext, id string, req service.CourseRequest) (*models.CourseDetail, error)
	Delete(ctx context.Context, user models.UserContext, id string) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	service courseService
	logger  *zap.Logger
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(svc courseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{service: svc, logger: loggerOrNop(logger)}
}

// List godoc
// @Summary List courses
// @Description Courses of the caller ordered by name, each with its term and assignments
// @Tags Courses
// @Produce json
// @Success 200 {array} models.CourseDetail
// @Failure 500 {object} response.ErrorBody
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "course.list")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, "course.list", "", err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseDetail
// @Failure 404 {object} response.ErrorBody
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "course.get")
	if !ok {
		return
	}
	id := c.Param("id")
	item, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.logger, "course.get", id, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CourseRequest true "Course payload"
// @Success 201 {object} models.CourseDetail
// @Failure 400 {object} response.ErrorBody
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "course.create")
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "course.create", "", appErrors.Internal(err, "Failed to create course"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "course.create", "", err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.CourseRequest true "Course payload"
// @Success 200 {object} models.CourseDetail
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "course.update")
	if !ok {
		return
	}
	id := c.Param("id")
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "course.update", id, appErrors.Internal(err, "Failed to update course"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, h.logger, "course.update", id, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete course
// @Description Removes the course and every assignment that references it
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "course.delete")
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.logger, "course.delete", id, err)
		return
	}
	response.Message(c, "Course deleted successfully")
}
