package middleware

import (
	"go-hrm/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can answer role/resource/action.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize must run after AuthMiddleware.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWithAppError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			zap.L().Error("rbac enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWithAppError(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWithAppError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
