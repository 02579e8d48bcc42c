package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/auth"
	autherrors "go-hrm/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	LoginFn    func(ctx context.Context, email, password string) (auth.LoginResponse, error)
	RegisterFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	MeFn       func(ctx context.Context) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return f.RegisterFn(ctx, req)
}

func (f *fakeAuthService) Me(ctx context.Context) (auth.AuthResponse, error) {
	return f.MeFn(ctx)
}

func newAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := auth.NewHandler(svc)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.GET("/auth/me", h.Me)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, email, password string) (auth.LoginResponse, error) {
				assert.Equal(t, "a@example.com", email)
				return auth.LoginResponse{AccessToken: "tok", TokenType: "Bearer"}, nil
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")

		newAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(context.Context, string, string) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")

		newAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"nope","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")

		newAuthRouter(&fakeAuthService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &fakeAuthService{
		RegisterFn: func(context.Context, auth.RegisterRequest) (auth.AuthResponse, error) {
			return auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"a@example.com","name":"A","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")

	newAuthRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
