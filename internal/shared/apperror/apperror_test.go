package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hrm/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsIgnoresCause(t *testing.T) {
	sentinel := apperror.New(apperror.CodeIOError, "backup file not found", http.StatusNotFound)
	wrapped := fmt.Errorf("restore: %w", sentinel.WithErr(errors.New("open x.json: no such file")))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, apperror.ErrNotFound)
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, httpErr.Status)
		assert.Equal(t, apperror.CodeForbidden, httpErr.Code)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("wrapped cause goes to details", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrInternal.WithErr(errors.New("disk full")))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "disk full", httpErr.Details)
	})

	t.Run("plain error is internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "Internal server error", httpErr.Message)
	})
}

func TestMapValidationError_UsesWireFieldNames(t *testing.T) {
	apperror.Init()

	type query struct {
		PageSize int `form:"page_size" binding:"required"`
	}
	type body struct {
		EmployeeID string `json:"employee_id" binding:"required"`
	}

	err := apperror.MapValidationError(binding.Validator.ValidateStruct(query{}))
	assert.EqualError(t, err, "Page Size is required")

	err = apperror.MapValidationError(binding.Validator.ValidateStruct(body{}))
	assert.EqualError(t, err, "Employee Id is required")
}
