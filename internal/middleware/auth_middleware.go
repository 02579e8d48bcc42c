package middleware

import (
	"errors"
	"fmt"
	"strings"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const accessTokenCookie = "access_token"

// AuthMiddleware rejects requests without a valid HS256 bearer token and
// attaches the token's actor to the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortWithAppError(c, apperror.ErrUnauthorized)
			return
		}

		actor, err := parseActor(tokenString, secret)
		if err != nil {
			abortWithAppError(c, err)
			return
		}

		attachActor(c, actor)
		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if actor, err := parseActor(tokenString, secret); err == nil {
				attachActor(c, actor)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		abortWithAppError(c, autherrors.ErrForbidden)
	}
}

func extractToken(c *gin.Context) string {
	if tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return strings.TrimSpace(tokenString)
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func parseActor(tokenString, secret string) (contextutil.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return contextutil.Actor{}, autherrors.ErrTokenExpired
		}
		return contextutil.Actor{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return contextutil.Actor{}, autherrors.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return contextutil.Actor{}, autherrors.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	employeeID, _ := claims["employee_id"].(string)

	return contextutil.Actor{
		UserID:     userID,
		Email:      email,
		Name:       name,
		Role:       role,
		EmployeeID: employeeID,
	}, nil
}

func attachActor(c *gin.Context, actor contextutil.Actor) {
	c.Set("user_id", actor.UserID)
	c.Set("email", actor.Email)
	c.Set("name", actor.Name)
	c.Set("role", actor.Role)
	c.Set("employee_id", actor.EmployeeID)

	ctx := contextutil.WithActor(c.Request.Context(), actor)
	reqLogger := contextutil.GetLogger(ctx, nil).With(zap.String("user_id", actor.UserID))
	ctx = contextutil.WithLogger(ctx, reqLogger)
	c.Request = c.Request.WithContext(ctx)
}

func abortWithAppError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
