package statisticserrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var ErrInvalidYear = apperror.New(
	apperror.CodeInvalidInput,
	"year must be between 1900 and 9999",
	http.StatusBadRequest,
)
