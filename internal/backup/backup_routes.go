package backup

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	backups := r.Group("/backups")
	backups.Use(auth)
	{
		backups.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "backup", "write"),
			handler.Export,
		)
		backups.POST("/restore",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "backup", "write"),
			handler.Restore,
		)
	}
}
