package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type cacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

type mutationRecorder interface {
	RecordMutation(resource, method string)
}

// InvalidateOnWrite drops the caller's cached snapshot after every successful mutating request.
func InvalidateOnWrite(cache cacheInvalidator, metrics mutationRecorder, resource string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if !isMutation(c.Request.Method) || c.Writer.Status() >= 400 {
			return
		}
		if metrics != nil {
			metrics.RecordMutation(resource, c.Request.Method)
		}
		user, ok := UserFromContext(c)
		if !ok || cache == nil {
			return
		}
		if err := cache.InvalidateUser(c.Request.Context(), user.UserID); err != nil {
			logger.Warn("snapshot invalidation failed",
				zap.String("resource", resource),
				zap.String("user_id", user.UserID),
				zap.Error(err),
			)
		}
	}
}
