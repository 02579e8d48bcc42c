package payroll

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(auth)
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)

		createChain := []gin.HandlerFunc{middleware.RateLimitByUser(1, 5)}
		if rdb != nil {
			createChain = append(createChain, middleware.Idempotency(rdb))
		}
		createChain = append(createChain, middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.Create)
		payrolls.POST("", createChain...)

		payrolls.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.Update)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.Delete)
		payrolls.POST("/:id/adjustments", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.AddAdjustment)
		payrolls.DELETE("/adjustments/:adjustmentId", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.RemoveAdjustment)
		payrolls.POST("/:id/recalculate", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.Recalculate)
	}
}
