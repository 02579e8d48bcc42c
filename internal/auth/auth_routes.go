package auth

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. optionalAuth attaches the actor when a token
// is present so an ADMIN can register privileged accounts.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth, optionalAuth gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		group.POST("/register", middleware.RateLimitByIP(0.1, 3), optionalAuth, handler.Register)
		group.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
