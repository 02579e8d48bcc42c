package rbac_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBACService struct {
	EnforceFn     func(role, resource, action string) (bool, error)
	PermissionsFn func(role string) ([]rbac.PermissionResponse, error)
}

func (f *fakeRBACService) Enforce(role, resource, action string) (bool, error) {
	return f.EnforceFn(role, resource, action)
}

func (f *fakeRBACService) Permissions(role string) ([]rbac.PermissionResponse, error) {
	return f.PermissionsFn(role)
}

func (f *fakeRBACService) LoadPolicies([]rbac.Policy, map[string]string) error { return nil }

func newRBACRouter(svc rbac.Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		ctx := contextutil.WithActor(c.Request.Context(), contextutil.Actor{UserID: "u-1", Role: role})
		c.Request = c.Request.WithContext(ctx)
	}
	rbac.RegisterRoutes(r.Group(""), rbac.NewHandler(svc), auth)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	svc := &fakeRBACService{EnforceFn: func(role, resource, action string) (bool, error) {
		return role == rbac.RoleHR && resource == "employee" && action == "read", nil
	}}
	r := newRBACRouter(svc, rbac.RoleHR)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":" employee ","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)
}

func TestHandler_Enforce_Validation(t *testing.T) {
	r := newRBACRouter(&fakeRBACService{}, rbac.RoleHR)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"action":"read"}`))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Resource is required")
}

func TestHandler_MyPermissions(t *testing.T) {
	t.Run("lists role grants", func(t *testing.T) {
		svc := &fakeRBACService{PermissionsFn: func(role string) ([]rbac.PermissionResponse, error) {
			assert.Equal(t, rbac.RoleEmployee, role)
			return []rbac.PermissionResponse{{Resource: "employee", Action: "read"}}, nil
		}}
		w := httptest.NewRecorder()

		newRBACRouter(svc, rbac.RoleEmployee).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"EMPLOYEE"`)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeRBACService{PermissionsFn: func(string) ([]rbac.PermissionResponse, error) {
			return nil, errors.New("boom")
		}}
		w := httptest.NewRecorder()

		newRBACRouter(svc, rbac.RoleEmployee).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
