package activitylog

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	logs := r.Group("/activity-logs")
	logs.Use(auth)
	logs.GET("", middleware.RBACAuthorize(rbacService, "activity_log", "read"), handler.List)
}
