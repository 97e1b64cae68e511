package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/pkg/config"
)

// ContextUserKey is the gin context key storing the caller identity.
const ContextUserKey = "currentUser"

// Identity attaches the configured planner user to every request.
func Identity(user config.DemoUserConfig) gin.HandlerFunc {
	identity := models.UserContext{UserID: user.ID, Email: user.Email, Name: user.Name}
	return func(c *gin.Context) {
		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// UserFromContext returns the identity stored by Identity.
func UserFromContext(c *gin.Context) (models.UserContext, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.UserContext{}, false
	}
	user, ok := value.(models.UserContext)
	return user, ok && user.UserID != ""
}
