package department

import (
	"errors"

	departmenterrors "go-hrm/internal/department/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if database.IsUniqueViolation(err, "uq_department_name") {
		return departmenterrors.ErrDepartmentAlreadyExists
	}
	if database.IsForeignKeyViolation(err) {
		return departmenterrors.ErrDepartmentInUse
	}
	return err
}
