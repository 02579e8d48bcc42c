package statistics

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
	stats := r.Group("/statistics")
	stats.Use(auth, middleware.RBACAuthorize(rbacService, rbac.ResourceStatistics, rbac.ActionRead))
	{
		stats.GET("/employees/departments", handler.ByDepartment)
		stats.GET("/employees/positions", handler.ByPosition)
		stats.GET("/employees/genders", handler.ByGender)
		stats.GET("/payroll/years", handler.PayrollYears)
		stats.GET("/payroll/monthly", handler.SalaryByMonth)
		stats.GET("/payroll/quarterly", handler.SalaryByQuarter)
	}
}
