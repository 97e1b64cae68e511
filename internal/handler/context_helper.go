package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/middleware"
	"github.com/noah-isme/academic-planner-api/internal/models"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
	"github.com/noah-isme/academic-planner-api/pkg/middleware/requestid"
	"github.com/noah-isme/academic-planner-api/pkg/response"
)

var errMissingIdentity = appErrors.New(appErrors.ErrInternal.Code, http.StatusInternalServerError, "Missing caller identity")

// currentUser returns the caller identity or writes a failure response.
func currentUser(c *gin.Context, logger *zap.Logger, op string) (models.UserContext, bool) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		respondError(c, logger, op, "", errMissingIdentity)
		return models.UserContext{}, false
	}
	return user, true
}

// respondError logs the failure with its operation and entity id, then renders it.
func respondError(c *gin.Context, logger *zap.Logger, op, id string, err error) {
	appErr := appErrors.FromError(err)
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", appErr.Status),
		zap.String("request_id", requestid.Value(c)),
	}
	if id != "" {
		fields = append(fields, zap.String("id", id))
	}
	if appErr.Status >= 500 {
		logger.Error(appErr.Message, append(fields, zap.Error(err))...)
	} else {
		logger.Warn(appErr.Message, fields...)
	}
	response.Error(c, appErr)
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
