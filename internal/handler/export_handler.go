package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/response"
)

type exportService interface {
	Assignments(ctx context.Context, user models.UserContext, req service.ExportRequest) (*service.ExportFile, error)
}

// ExportHandler streams planner downloads.
type ExportHandler struct {
	service exportService
	logger  *zap.Logger
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{service: svc, logger: loggerOrNop(logger)}
}

// Assignments godoc
// @Summary Export assignments
// @Tags Assignments
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param termId query string false "Restrict to one term"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /assignments/export [get]
func (h *ExportHandler) Assignments(c *gin.Context) {
	user, ok := currentUser(c, h.logger, "assignment.export")
	if !ok {
		return
	}
	req := service.ExportRequest{Format: c.Query("format"), TermID: c.Query("termId")}
	file, err := h.service.Assignments(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, h.logger, "assignment.export", req.TermID, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Payload)
}
