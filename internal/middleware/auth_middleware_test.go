package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": "u-1",
		"email":   "hr@example.com",
		"name":    "HR",
		"role":    "HR",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func newAuthRouter(mw gin.HandlerFunc) (*gin.Engine, *contextutil.Actor) {
	gin.SetMode(gin.TestMode)
	seen := &contextutil.Actor{}
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		*seen = contextutil.GetActor(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, seen
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		cookie   string
		wantCode int
		wantBody string
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "bearer token", header: "Bearer " + signToken(t, secret, validClaims()), wantCode: http.StatusNoContent},
		{name: "cookie token", cookie: signToken(t, secret, validClaims()), wantCode: http.StatusNoContent},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", validClaims()), wantCode: http.StatusUnauthorized, wantBody: "Invalid token"},
		{
			name: "expired",
			header: "Bearer " + signToken(t, secret, jwt.MapClaims{
				"user_id": "u-1",
				"exp":     time.Now().Add(-time.Minute).Unix(),
			}),
			wantCode: http.StatusUnauthorized,
			wantBody: "Token has expired",
		},
		{
			name:     "missing user id",
			header:   "Bearer " + signToken(t, secret, jwt.MapClaims{"role": "HR"}),
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid token",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, seen := newAuthRouter(middleware.AuthMiddleware(secret))
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tc.cookie})
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
			if tc.wantCode == http.StatusNoContent {
				assert.Equal(t, contextutil.Actor{UserID: "u-1", Email: "hr@example.com", Name: "HR", Role: "HR"}, *seen)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous passes", func(t *testing.T) {
		r, seen := newAuthRouter(middleware.OptionalAuth(secret))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, contextutil.SystemActorName, seen.DisplayName())
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		r, seen := newAuthRouter(middleware.OptionalAuth(secret))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, seen.UserID)
	})

	t.Run("valid token attaches actor", func(t *testing.T) {
		r, seen := newAuthRouter(middleware.OptionalAuth(secret))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, validClaims()))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "HR", seen.Role)
	})
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) { c.Set("role", c.GetHeader("X-Role")) },
		middleware.RoleMiddleware("ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	for role, want := range map[string]int{"ADMIN": http.StatusOK, "HR": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Role", role)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, role)
	}
}

func TestAuthMiddleware_CarriesLinkedEmployee(t *testing.T) {
	claims := validClaims()
	claims["role"] = "EMPLOYEE"
	claims["employee_id"] = "e-42"
	r, seen := newAuthRouter(middleware.AuthMiddleware(secret))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, claims))

	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "e-42", seen.EmployeeID)
	assert.True(t, seen.HasRole("employee"))
	assert.False(t, seen.HasRole("ADMIN", "HR"))
}
