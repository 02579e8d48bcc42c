package employee

import (
	"errors"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/database"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if database.IsForeignKeyViolation(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		if pgErr.TableName == "employees" {
			return employeeerrors.ErrDepartmentNotFound
		}
		return employeeerrors.ErrEmployeeInUse
	}

	return err
}
