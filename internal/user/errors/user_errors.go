package usererrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of ADMIN, HR, EMPLOYEE",
		http.StatusBadRequest,
	)

	ErrInvalidCurrentPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrCannotModifySelf = apperror.New(
		apperror.CodeInvalidState,
		"Administrators cannot change their own role or status",
		http.StatusUnprocessableEntity,
	)
)
