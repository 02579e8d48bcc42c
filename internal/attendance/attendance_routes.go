package attendance

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	attendances := r.Group("/attendances")
	attendances.Use(auth)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), handler.GetAll)
		attendances.GET("/summary", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReport), handler.MonthlySummary)
		attendances.PUT("", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionWrite), handler.Upsert)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionWrite), handler.Delete)

		attendances.POST("/clock-in", middleware.RateLimitByUser(1, 3), middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionClock), handler.ClockIn)
		attendances.POST("/clock-out", middleware.RateLimitByUser(1, 3), middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionClock), handler.ClockOut)
	}
}
